package model

import "time"

// NewsArticle PublishedAt 为空表示草稿
type NewsArticle struct {
	Model
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string     `gorm:"type:varchar(191);uniqueIndex;not null" json:"slug"`
	Content     string     `gorm:"type:longtext;not null" json:"content"`
	ImageURL    string     `gorm:"type:varchar(255)" json:"imageUrl"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
	AuthorID    *uint      `gorm:"index" json:"authorId"`
	Author      *User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author,omitempty"`
}

func (n *NewsArticle) IsPublished() bool {
	return n.PublishedAt != nil
}
