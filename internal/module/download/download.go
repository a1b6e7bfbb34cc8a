package download

import (
	"path"
	"strings"
	"time"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
)

type DownloadReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	FilePath    *string `json:"filePath"`
	FileType    *string `json:"fileType"`
}

func (req *DownloadReq) apply(d *model.Download) string {
	if req.Title != nil {
		d.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.FilePath != nil {
		d.FilePath = strings.TrimSpace(*req.FilePath)
	}
	if req.FileType != nil {
		d.FileType = strings.TrimSpace(*req.FileType)
	}
	if d.Title == "" || d.FilePath == "" {
		return "Title and file path are required"
	}
	// 未指定类型时取扩展名，如 pdf
	if d.FileType == "" {
		d.FileType = strings.TrimPrefix(strings.ToLower(path.Ext(d.FilePath)), ".")
	}
	return ""
}

func notFound(c *gin.Context) {
	response.Fail(c, response.ErrNotFound.WithTips("Download not found"))
}

func list(c *gin.Context) {
	downloads := []model.Download{}
	err := database.DB.WithContext(c.Request.Context()).
		Order("upload_date DESC").Order("id DESC").
		Find(&downloads).Error
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, downloads)
}

func ListDownloads(c *gin.Context) {
	list(c)
}

func ListPublicDownloads(c *gin.Context) {
	list(c)
}

func CreateDownload(c *gin.Context) {
	var req DownloadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	download := model.Download{UploadDate: time.Now()}
	if msg := req.apply(&download); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}
	if err := database.DB.WithContext(c.Request.Context()).Create(&download).Error; err != nil {
		log.Error("创建下载文件失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Created(c, download)
}

func UpdateDownload(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		notFound(c)
		return
	}
	var req DownloadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var download model.Download
	err := db.First(&download, id).Error
	if database.IsNotFound(err) {
		notFound(c)
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if msg := req.apply(&download); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}
	if err := db.Save(&download).Error; err != nil {
		log.Error("更新下载文件失败", "error", err, "download_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, download)
}

func DeleteDownload(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		notFound(c)
		return
	}
	result := database.DB.WithContext(c.Request.Context()).Delete(&model.Download{}, id)
	if result.Error != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		notFound(c)
		return
	}
	response.Deleted(c, "Download")
}
