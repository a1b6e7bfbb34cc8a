package model

type Committee struct {
	Model
	Name              string `gorm:"type:varchar(150);not null" json:"name"`
	Description       string `gorm:"type:text" json:"description"`
	SessionYear       string `gorm:"type:varchar(20);not null" json:"sessionYear"`
	CommitteeImageURL string `gorm:"type:varchar(255)" json:"committeeImageUrl"`
	PosterImageURL    string `gorm:"type:varchar(255)" json:"posterImageUrl"`
	IsActive          bool   `gorm:"not null;index" json:"isActive"`
	DisplayOrder      int    `gorm:"not null;index" json:"displayOrder"`

	Members []CommitteeMember `gorm:"foreignKey:CommitteeID;constraint:OnDelete:CASCADE" json:"committeeMembers,omitempty"`
	Count   *CommitteeCount   `gorm:"-" json:"_count,omitempty"`
}

type CommitteeCount struct {
	CommitteeMembers int64 `json:"committeeMembers"`
}

// CommitteeMember 委员会与会员的关联，Designation 如 "President"
type CommitteeMember struct {
	Model
	CommitteeID uint       `gorm:"not null;index" json:"committeeId"`
	MemberID    uint       `gorm:"not null;index" json:"memberId"`
	Designation string     `gorm:"type:varchar(100);not null" json:"designation"`
	Committee   *Committee `gorm:"foreignKey:CommitteeID" json:"committee,omitempty"`
	Member      *Member    `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
}
