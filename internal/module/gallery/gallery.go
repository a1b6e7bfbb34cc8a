package gallery

import (
	"strings"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AlbumReq EventID 为 0 表示取消关联活动
type AlbumReq struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	CoverImageURL *string `json:"coverImageUrl"`
	EventID       *uint   `json:"eventId"`
}

func (req *AlbumReq) apply(a *model.GalleryAlbum) string {
	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.CoverImageURL != nil {
		a.CoverImageURL = *req.CoverImageURL
	}
	if req.EventID != nil {
		if *req.EventID == 0 {
			a.EventID = nil
		} else {
			id := *req.EventID
			a.EventID = &id
		}
		a.Event = nil
	}
	if a.Name == "" {
		return "Album name is required"
	}
	return ""
}

func albumNotFound(c *gin.Context) {
	response.Fail(c, response.ErrNotFound.WithTips("Album not found"))
}

// checkEvent 关联的活动必须存在
func checkEvent(c *gin.Context, a *model.GalleryAlbum) bool {
	if a.EventID == nil {
		return true
	}
	err := database.DB.WithContext(c.Request.Context()).First(&model.Event{}, *a.EventID).Error
	if database.IsNotFound(err) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Event not found"))
		return false
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return false
	}
	return true
}

func ListAlbumsAdmin(c *gin.Context) {
	albums, err := ListAlbums(c.Request.Context(), 0)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, albums)
}

func CreateAlbum(c *gin.Context) {
	var req AlbumReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	var album model.GalleryAlbum
	if msg := req.apply(&album); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}
	if !checkEvent(c, &album) {
		return
	}
	if err := database.DB.WithContext(c.Request.Context()).Create(&album).Error; err != nil {
		log.Error("创建相册失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	album.Count = &model.AlbumCount{}
	log.Info("创建相册", "album_id", album.ID)
	response.Created(c, album)
}

func getAlbum(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		albumNotFound(c)
		return
	}
	album, err := FindAlbum(c.Request.Context(), id)
	if database.IsNotFound(err) {
		albumNotFound(c)
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, album)
}

func GetAlbum(c *gin.Context) {
	getAlbum(c)
}

func UpdateAlbum(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		albumNotFound(c)
		return
	}
	var req AlbumReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var album model.GalleryAlbum
	err := db.First(&album, id).Error
	if database.IsNotFound(err) {
		albumNotFound(c)
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if msg := req.apply(&album); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}
	if !checkEvent(c, &album) {
		return
	}
	if err := db.Save(&album).Error; err != nil {
		log.Error("更新相册失败", "error", err, "album_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, album)
}

// DeleteAlbum 照片随相册一起删除
func DeleteAlbum(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		albumNotFound(c)
		return
	}
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.GalleryAlbum{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("album_id = ?", id).Delete(&model.Photo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.GalleryAlbum{}, id).Error
	})
	if database.IsNotFound(err) {
		albumNotFound(c)
		return
	}
	if err != nil {
		log.Error("删除相册失败", "error", err, "album_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("删除相册", "album_id", id)
	response.Deleted(c, "Album")
}

type PhotoReq struct {
	ImageURL     string `json:"imageUrl" binding:"required"`
	Caption      string `json:"caption" binding:"max=255"`
	DisplayOrder int    `json:"displayOrder" binding:"min=0"`
}

func AddPhoto(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		albumNotFound(c)
		return
	}
	var req PhotoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips(tools.BindErrorMessage(err)))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	if err := db.First(&model.GalleryAlbum{}, id).Error; err != nil {
		if database.IsNotFound(err) {
			albumNotFound(c)
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	photo := model.Photo{
		AlbumID:      id,
		ImageURL:     strings.TrimSpace(req.ImageURL),
		Caption:      strings.TrimSpace(req.Caption),
		DisplayOrder: req.DisplayOrder,
	}
	if err := db.Create(&photo).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Created(c, photo)
}

func DeletePhoto(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		response.Fail(c, response.ErrNotFound.WithTips("Photo not found"))
		return
	}
	result := database.DB.WithContext(c.Request.Context()).Delete(&model.Photo{}, id)
	if result.Error != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("Photo not found"))
		return
	}
	response.Deleted(c, "Photo")
}

func ListPublicAlbums(c *gin.Context) {
	ListAlbumsAdmin(c)
}

func GetPublicAlbum(c *gin.Context) {
	getAlbum(c)
}
