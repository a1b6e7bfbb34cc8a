package upload

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"community-portal/internal/global/metrics"
	"community-portal/internal/global/pictureBed"
	"community-portal/internal/global/response"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
)

// maxBodySize 整个 multipart 请求体上限，单个文件仍以 pictureBed.MaxImageSize 为准
const maxBodySize = 10 << 20

type UploadResp struct {
	Success      bool   `json:"success"`
	ImageURL     string `json:"imageUrl"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
}

func reject(c *gin.Context, msg string) {
	metrics.UploadsTotal.WithLabelValues("rejected").Inc()
	response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
}

// UploadImage 上传单张图片，校验失败时不写入任何文件
func UploadImage(c *gin.Context) {
	if c.Request.ContentLength > maxBodySize {
		reject(c, pictureBed.ErrTooLarge.Error())
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			reject(c, pictureBed.ErrTooLarge.Error())
			return
		}
		reject(c, "No file uploaded")
		return
	}

	file, err := fh.Open()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	defer file.Close()

	contentType := fh.Header.Get("Content-Type")
	head, err := pictureBed.ValidateImage(contentType, fh.Size, file)
	if errors.Is(err, pictureBed.ErrTooLarge) || errors.Is(err, pictureBed.ErrInvalidType) {
		reject(c, err.Error())
		return
	}
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	filename, err := pictureBed.GenerateFilename(fh.Filename, contentType)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	url, err := storage.SaveImage(c.Request.Context(), filename, contentType, io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		log.Error("保存图片失败", "error", err, "filename", filename)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err).WithTips("Failed to upload file"))
		return
	}

	metrics.UploadsTotal.WithLabelValues("success").Inc()
	log.Info("图片上传成功", "filename", filename, "size", fh.Size)
	response.Success(c, UploadResp{
		Success:      true,
		ImageURL:     url,
		Filename:     filename,
		OriginalName: fh.Filename,
		Size:         fh.Size,
		Type:         contentType,
	})
}

func DeleteImage(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Filename is required"))
		return
	}
	if !tools.SafeFilename(filename) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Invalid filename"))
		return
	}

	err := storage.DeleteImage(c.Request.Context(), filename)
	if errors.Is(err, pictureBed.ErrNotExist) {
		response.Fail(c, response.ErrNotFound.WithTips("File not found"))
		return
	}
	if err != nil {
		log.Error("删除图片失败", "error", err, "filename", filename)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err).WithTips("Failed to delete file"))
		return
	}
	log.Info("删除图片", "filename", filename)
	response.Success(c, gin.H{"success": true, "message": "File deleted successfully"})
}

type PresignReq struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// PresignUpload 仅 S3 存储可用，前端拿到 URL 后直接上传
func PresignUpload(c *gin.Context) {
	var req PresignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips(tools.BindErrorMessage(err)))
		return
	}

	resp, err := storage.GeneratePresignedUploadURL(c.Request.Context(), pictureBed.PresignedUploadRequest{
		Filename:    req.Filename,
		ContentType: req.ContentType,
	})
	switch {
	case errors.Is(err, pictureBed.ErrS3Disabled):
		response.Fail(c, response.ErrInvalidRequest.WithTips("Presigned uploads require S3 storage"))
		return
	case errors.Is(err, pictureBed.ErrInvalidType):
		response.Fail(c, response.ErrInvalidRequest.WithTips(err.Error()))
		return
	case err != nil:
		log.Error("生成预签名 URL 失败", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	response.Success(c, resp)
}
