package model

type GalleryAlbum struct {
	Model
	Name          string `gorm:"type:varchar(200);not null" json:"name"`
	Description   string `gorm:"type:text" json:"description"`
	CoverImageURL string `gorm:"type:varchar(255)" json:"coverImageUrl"`
	EventID       *uint  `gorm:"index" json:"eventId"`
	Event         *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`

	Photos []Photo     `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	Count  *AlbumCount `gorm:"-" json:"_count,omitempty"`
}

type AlbumCount struct {
	Photos int64 `json:"photos"`
}

type Photo struct {
	Model
	AlbumID      uint   `gorm:"not null;index" json:"albumId"`
	ImageURL     string `gorm:"type:varchar(255);not null" json:"imageUrl"`
	Caption      string `gorm:"type:varchar(255)" json:"caption"`
	DisplayOrder int    `gorm:"not null" json:"displayOrder"`
}
