package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	MembershipRegular  = "Regular"
	MembershipLifetime = "Lifetime"
	MembershipPatron   = "Patron"
)

// Member 社区会员资料，可以没有登录账号（管理员后台录入）
type Member struct {
	Model
	UserID           *uint           `gorm:"uniqueIndex" json:"userId"`
	User             *User           `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	FirstName        string          `gorm:"type:varchar(100);not null;index" json:"firstName"`
	LastName         string          `gorm:"type:varchar(100)" json:"lastName"`
	FatherName       string          `gorm:"type:varchar(100)" json:"fatherName"`
	NativePlace      string          `gorm:"type:varchar(100);index" json:"nativePlace"`
	DateOfBirth      *datatypes.Date `json:"dateOfBirth"`
	Gender           string          `gorm:"type:varchar(10)" json:"gender"`
	Address          string          `gorm:"type:text" json:"address"`
	Locality         string          `gorm:"type:varchar(100)" json:"locality"`
	City             string          `gorm:"type:varchar(100);index" json:"city"`
	Pincode          string          `gorm:"type:varchar(10)" json:"pincode"`
	PhonePrimary     string          `gorm:"type:varchar(20)" json:"phonePrimary"`
	PhoneSecondary   string          `gorm:"type:varchar(20)" json:"phoneSecondary"`
	Email            string          `gorm:"type:varchar(191)" json:"email"`
	BusinessName     string          `gorm:"type:varchar(150)" json:"businessName"`
	BusinessCategory string          `gorm:"type:varchar(100);index" json:"businessCategory"`
	Gotra            string          `gorm:"type:varchar(100)" json:"gotra"`
	MembershipType   string          `gorm:"type:varchar(20);not null" json:"membershipType"`
	Status           string          `gorm:"type:varchar(20);not null" json:"status"`
	JoinedDate       time.Time       `json:"joinedDate"`
	// 公开名录只展示 IsApproved && IsActive 的会员
	IsApproved      bool   `gorm:"not null;index" json:"isApproved"`
	IsActive        bool   `gorm:"not null;index" json:"isActive"`
	ProfileImageURL string `gorm:"type:varchar(255)" json:"profileImageUrl"`

	CommitteeMembers []CommitteeMember `gorm:"foreignKey:MemberID" json:"committeeMembers,omitempty"`
}

// FullName 名和姓之间用空格连接
func (m *Member) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
