package home

import (
	"time"

	"community-portal/internal/global/response"
	"community-portal/internal/model"
	"community-portal/internal/module/committee"
	"community-portal/internal/module/event"
	"community-portal/internal/module/gallery"
	"community-portal/internal/module/news"
	"community-portal/internal/module/poster"

	"github.com/gin-gonic/gin"
)

const (
	newsLimit   = 3
	eventsLimit = 3
	albumsLimit = 4
)

// Page 首页聚合数据，一次请求返回全部板块
type Page struct {
	Posters        []model.Poster       `json:"posters"`
	Committees     []model.Committee    `json:"committees"`
	LatestNews     []model.NewsArticle  `json:"latestNews"`
	UpcomingEvents []model.Event        `json:"upcomingEvents"`
	Albums         []model.GalleryAlbum `json:"albums"`
}

func GetHome(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		page Page
		err  error
	)
	if page.Posters, err = poster.ListActive(ctx); err != nil {
		fail(c, "海报", err)
		return
	}
	if page.Committees, err = committee.ListActive(ctx, true); err != nil {
		fail(c, "委员会", err)
		return
	}
	if page.LatestNews, err = news.Latest(ctx, newsLimit); err != nil {
		fail(c, "新闻", err)
		return
	}
	if page.UpcomingEvents, err = event.Upcoming(ctx, time.Now(), eventsLimit); err != nil {
		fail(c, "活动", err)
		return
	}
	if page.Albums, err = gallery.ListAlbums(ctx, albumsLimit); err != nil {
		fail(c, "相册", err)
		return
	}
	response.Success(c, page)
}

func fail(c *gin.Context, section string, err error) {
	log.Error("首页数据加载失败", "section", section, "error", err)
	response.Fail(c, response.ErrDatabase.WithOrigin(err))
}
