package news

import (
	"context"

	"community-portal/internal/global/database"
	"community-portal/internal/model"

	"gorm.io/gorm"
)

// Published publishedAt 非空即为已发布
func Published(db *gorm.DB) *gorm.DB {
	return db.Where("published_at IS NOT NULL")
}

func latestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("published_at DESC").Order("id DESC")
}

func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("Author", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name")
	})
}

// Latest 最新发布的文章，limit <= 0 表示不限制
func Latest(ctx context.Context, limit int) ([]model.NewsArticle, error) {
	articles := []model.NewsArticle{}
	query := database.DB.WithContext(ctx).Scopes(Published, latestFirst, withAuthor)
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&articles).Error
	return articles, err
}

// PublishedPage v1 接口的分页查询
func PublishedPage(ctx context.Context, offset, limit int) ([]model.NewsArticle, int64, error) {
	var total int64
	if err := database.DB.WithContext(ctx).Model(&model.NewsArticle{}).Scopes(Published).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	articles := []model.NewsArticle{}
	err := database.DB.WithContext(ctx).Scopes(Published, latestFirst).
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, total, err
}

// FindPublished 按 id 查询已发布文章，草稿视为不存在
func FindPublished(ctx context.Context, id uint) (*model.NewsArticle, error) {
	var article model.NewsArticle
	if err := database.DB.WithContext(ctx).Scopes(Published, withAuthor).First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}
