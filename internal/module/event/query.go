package event

import (
	"context"
	"time"

	"community-portal/internal/global/database"
	"community-portal/internal/model"

	"gorm.io/gorm"
)

// Upcoming 开始时间不早于 now 的活动，按开始时间升序，limit <= 0 表示不限制
func Upcoming(ctx context.Context, now time.Time, limit int) ([]model.Event, error) {
	events := []model.Event{}
	query := database.DB.WithContext(ctx).
		Where("start_datetime >= ?", now).
		Order("start_datetime").Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&events).Error
	return events, err
}

// UpcomingPage v1 接口的分页查询
func UpcomingPage(ctx context.Context, now time.Time, offset, limit int) ([]model.Event, int64, error) {
	var total int64
	base := database.DB.WithContext(ctx).Model(&model.Event{}).
		Where("start_datetime >= ?", now).
		Session(&gorm.Session{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	events := []model.Event{}
	err := base.Order("start_datetime").Order("id").Offset(offset).Limit(limit).Find(&events).Error
	return events, total, err
}

// Past 已开始的活动，最近的在前
func Past(ctx context.Context, now time.Time) ([]model.Event, error) {
	events := []model.Event{}
	err := database.DB.WithContext(ctx).
		Where("start_datetime < ?", now).
		Order("start_datetime DESC").Order("id DESC").
		Find(&events).Error
	return events, err
}

func withAlbums(db *gorm.DB) *gorm.DB {
	return db.Preload("Albums", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("id DESC")
	})
}
