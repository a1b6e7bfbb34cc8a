package dashboard

import (
	"time"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/model"
	"community-portal/internal/module/event"
	"community-portal/internal/module/news"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const upcomingLimit = 5

type Stats struct {
	TotalMembers               int64         `json:"totalMembers"`
	TotalEvents                int64         `json:"totalEvents"`
	TotalNews                  int64         `json:"totalNews"`
	TotalGalleryAlbums         int64         `json:"totalGalleryAlbums"`
	PendingMatrimonialProfiles int64         `json:"pendingMatrimonialProfiles"`
	UpcomingEvents             []model.Event `json:"upcomingEvents"`
}

func GetStats(c *gin.Context) {
	ctx := c.Request.Context()
	db := database.DB.WithContext(ctx)

	var stats Stats
	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalMembers, db.Model(&model.Member{}).Where("is_active = ?", true)},
		{&stats.TotalEvents, db.Model(&model.Event{})},
		{&stats.TotalNews, db.Model(&model.NewsArticle{}).Scopes(news.Published)},
		{&stats.TotalGalleryAlbums, db.Model(&model.GalleryAlbum{})},
		{&stats.PendingMatrimonialProfiles, db.Model(&model.MatrimonialProfile{}).Where("is_approved = ?", false)},
	}
	for _, q := range counts {
		if err := q.query.Count(q.dst).Error; err != nil {
			log.Error("统计查询失败", "error", err)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
	}

	upcoming, err := event.Upcoming(ctx, time.Now(), upcomingLimit)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	stats.UpcomingEvents = upcoming
	response.Success(c, stats)
}
