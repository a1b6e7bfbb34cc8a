package model

import (
	"time"

	"gorm.io/datatypes"
)

// Poster 首页轮播图
type Poster struct {
	Model
	Title        string `gorm:"type:varchar(200);not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	ImageURL     string `gorm:"type:varchar(255);not null" json:"imageUrl"`
	LinkURL      string `gorm:"type:varchar(255)" json:"linkUrl"`
	DisplayOrder int    `gorm:"not null;index" json:"displayOrder"`
	IsActive     bool   `gorm:"not null;index" json:"isActive"`
}

// Download 可下载的静态文件
type Download struct {
	Model
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	FilePath    string    `gorm:"type:varchar(255);not null" json:"filePath"`
	FileType    string    `gorm:"type:varchar(50)" json:"fileType"`
	UploadDate  time.Time `gorm:"index" json:"uploadDate"`
}

// MatrimonialProfile 每个会员最多一份，修改后需重新审核
type MatrimonialProfile struct {
	Model
	MemberID     uint            `gorm:"not null;uniqueIndex" json:"memberId"`
	Member       *Member         `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
	FullName     string          `gorm:"type:varchar(150);not null" json:"fullName"`
	Gender       string          `gorm:"type:varchar(10);not null" json:"gender"`
	DateOfBirth  *datatypes.Date `json:"dateOfBirth"`
	Education    string          `gorm:"type:varchar(150)" json:"education"`
	Occupation   string          `gorm:"type:varchar(150)" json:"occupation"`
	Gotra        string          `gorm:"type:varchar(100)" json:"gotra"`
	City         string          `gorm:"type:varchar(100)" json:"city"`
	About        string          `gorm:"type:text" json:"about"`
	ContactPhone string          `gorm:"type:varchar(20)" json:"contactPhone"`
	PhotoURL     string          `gorm:"type:varchar(255)" json:"photoUrl"`
	IsApproved   bool            `gorm:"not null;index" json:"isApproved"`
	IsActive     bool            `gorm:"not null" json:"isActive"`
}
