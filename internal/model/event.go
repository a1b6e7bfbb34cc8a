package model

import "time"

type Event struct {
	Model
	Title         string     `gorm:"type:varchar(200);not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Venue         string     `gorm:"type:varchar(255)" json:"venue"`
	StartDatetime time.Time  `gorm:"not null;index" json:"startDatetime"`
	EndDatetime   *time.Time `json:"endDatetime"`
	ImageURL      string     `gorm:"type:varchar(255)" json:"imageUrl"`

	Albums []GalleryAlbum `gorm:"foreignKey:EventID;constraint:OnDelete:SET NULL" json:"albums,omitempty"`
}
