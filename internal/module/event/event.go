package event

import (
	"strings"
	"time"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EventReq 时间字段接受 RFC3339 或 datetime-local 格式，更新时 nil 表示不修改
type EventReq struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Venue         *string `json:"venue"`
	StartDatetime *string `json:"startDatetime"`
	EndDatetime   *string `json:"endDatetime"`
	ImageURL      *string `json:"imageUrl"`
}

func (req *EventReq) apply(e *model.Event) string {
	if req.Title != nil {
		e.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Venue != nil {
		e.Venue = strings.TrimSpace(*req.Venue)
	}
	if req.ImageURL != nil {
		e.ImageURL = *req.ImageURL
	}
	if req.StartDatetime != nil {
		t, ok := tools.ParseTime(*req.StartDatetime)
		if !ok {
			return "Invalid start date"
		}
		e.StartDatetime = t
	}
	if req.EndDatetime != nil {
		if strings.TrimSpace(*req.EndDatetime) == "" {
			e.EndDatetime = nil
		} else {
			t, ok := tools.ParseTime(*req.EndDatetime)
			if !ok {
				return "Invalid end date"
			}
			e.EndDatetime = &t
		}
	}

	if e.Title == "" || e.StartDatetime.IsZero() {
		return "Title and start date are required"
	}
	if e.EndDatetime != nil && e.EndDatetime.Before(e.StartDatetime) {
		return "End date must be after start date"
	}
	return ""
}

func notFound(c *gin.Context) {
	response.Fail(c, response.ErrNotFound.WithTips("Event not found"))
}

// ListEvents 后台列表，最新的在前
func ListEvents(c *gin.Context) {
	events := []model.Event{}
	if err := database.DB.WithContext(c.Request.Context()).
		Order("start_datetime DESC").Order("id DESC").
		Find(&events).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, events)
}

func CreateEvent(c *gin.Context) {
	var req EventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	var e model.Event
	if msg := req.apply(&e); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}
	if err := database.DB.WithContext(c.Request.Context()).Create(&e).Error; err != nil {
		log.Error("创建活动失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("创建活动", "event_id", e.ID, "title", e.Title)
	response.Created(c, e)
}

func find(c *gin.Context, scopes ...func(*gorm.DB) *gorm.DB) (*model.Event, bool) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		notFound(c)
		return nil, false
	}
	var e model.Event
	err := database.DB.WithContext(c.Request.Context()).Scopes(scopes...).First(&e, id).Error
	if database.IsNotFound(err) {
		notFound(c)
		return nil, false
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	return &e, true
}

func GetEvent(c *gin.Context) {
	if e, ok := find(c, withAlbums); ok {
		response.Success(c, e)
	}
}

func UpdateEvent(c *gin.Context) {
	var req EventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	e, ok := find(c)
	if !ok {
		return
	}
	if msg := req.apply(e); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}
	if err := database.DB.WithContext(c.Request.Context()).Save(e).Error; err != nil {
		log.Error("更新活动失败", "error", err, "event_id", e.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, e)
}

// DeleteEvent 关联相册保留，只解除与活动的关联
func DeleteEvent(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		notFound(c)
		return
	}
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.Event{}, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.GalleryAlbum{}).Where("event_id = ?", id).
			Update("event_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Event{}, id).Error
	})
	if database.IsNotFound(err) {
		notFound(c)
		return
	}
	if err != nil {
		log.Error("删除活动失败", "error", err, "event_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("删除活动", "event_id", id)
	response.Deleted(c, "Event")
}

// ListPublicEvents 分为即将开始和已结束两组
func ListPublicEvents(c *gin.Context) {
	now := time.Now()
	upcoming, err := Upcoming(c.Request.Context(), now, 0)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	past, err := Past(c.Request.Context(), now)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"upcoming": upcoming, "past": past})
}

func GetPublicEvent(c *gin.Context) {
	if e, ok := find(c, withAlbums); ok {
		response.Success(c, e)
	}
}
