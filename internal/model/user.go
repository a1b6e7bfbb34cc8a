package model

import "time"

const (
	RoleSuperAdmin     = "Super Admin"
	RoleCommitteeAdmin = "Committee Admin"
	RoleMember         = "Member"
)

const (
	UserStatusActive   = "Active"
	UserStatusInactive = "Inactive"
)

type User struct {
	Model
	Name                    string     `gorm:"type:varchar(100);not null" json:"name"`
	Email                   string     `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	Password                string     `gorm:"type:varchar(255);not null" json:"-"`
	Phone                   string     `gorm:"type:varchar(20)" json:"phone"`
	Role                    string     `gorm:"type:varchar(32);not null" json:"role"`
	Status                  string     `gorm:"type:varchar(20);not null" json:"status"`
	IsEmailVerified         bool       `gorm:"not null" json:"isEmailVerified"`
	VerificationToken       *string    `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	VerificationTokenExpiry *time.Time `json:"-"`
	// 一个用户最多对应一个会员资料
	Member *Member `gorm:"foreignKey:UserID" json:"member,omitempty"`
}

// MemberID 返回关联会员的 ID，未预加载或没有会员资料时为 nil
func (u *User) MemberID() *uint {
	if u.Member == nil {
		return nil
	}
	id := u.Member.ID
	return &id
}
