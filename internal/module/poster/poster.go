package poster

import (
	"context"
	"strings"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ordered(db *gorm.DB) *gorm.DB {
	return db.Order("display_order").Order("id")
}

// ListActive 首页轮播使用的启用海报
func ListActive(ctx context.Context) ([]model.Poster, error) {
	posters := []model.Poster{}
	err := database.DB.WithContext(ctx).Scopes(ordered).Where("is_active = ?", true).Find(&posters).Error
	return posters, err
}

type PosterReq struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"imageUrl"`
	LinkURL      *string `json:"linkUrl"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

func (req *PosterReq) apply(p *model.Poster) string {
	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.LinkURL != nil {
		p.LinkURL = strings.TrimSpace(*req.LinkURL)
	}
	if req.DisplayOrder != nil {
		if *req.DisplayOrder < 0 {
			return "Display order must be a non-negative number"
		}
		p.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if p.Title == "" || p.ImageURL == "" {
		return "Title and image URL are required"
	}
	return ""
}

func notFound(c *gin.Context) {
	response.Fail(c, response.ErrNotFound.WithTips("Poster not found"))
}

func ListPosters(c *gin.Context) {
	posters := []model.Poster{}
	if err := database.DB.WithContext(c.Request.Context()).Scopes(ordered).Find(&posters).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, posters)
}

func CreatePoster(c *gin.Context) {
	var req PosterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	poster := model.Poster{IsActive: true}
	if msg := req.apply(&poster); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}
	if err := database.DB.WithContext(c.Request.Context()).Create(&poster).Error; err != nil {
		log.Error("创建海报失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Created(c, poster)
}

func find(c *gin.Context) (*model.Poster, bool) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		notFound(c)
		return nil, false
	}
	var poster model.Poster
	err := database.DB.WithContext(c.Request.Context()).First(&poster, id).Error
	if database.IsNotFound(err) {
		notFound(c)
		return nil, false
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	return &poster, true
}

func GetPoster(c *gin.Context) {
	if poster, ok := find(c); ok {
		response.Success(c, poster)
	}
}

func UpdatePoster(c *gin.Context) {
	var req PosterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	poster, ok := find(c)
	if !ok {
		return
	}
	if msg := req.apply(poster); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}
	if err := database.DB.WithContext(c.Request.Context()).Save(poster).Error; err != nil {
		log.Error("更新海报失败", "error", err, "poster_id", poster.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, poster)
}

func DeletePoster(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		notFound(c)
		return
	}
	result := database.DB.WithContext(c.Request.Context()).Delete(&model.Poster{}, id)
	if result.Error != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		notFound(c)
		return
	}
	response.Deleted(c, "Poster")
}

func ListActivePosters(c *gin.Context) {
	posters, err := ListActive(c.Request.Context())
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, posters)
}
