package matrimonial

import (
	"strconv"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
)

func ListProfiles(c *gin.Context) {
	query := database.DB.WithContext(c.Request.Context()).Preload("Member", memberSummary)
	if v := c.Query("isApproved"); v != "" {
		approved, err := strconv.ParseBool(v)
		if err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithTips("isApproved must be true or false"))
			return
		}
		query = query.Where("is_approved = ?", approved)
	}

	profiles := []model.MatrimonialProfile{}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&profiles).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, profiles)
}

type ApproveReq struct {
	IsApproved *bool `json:"isApproved" binding:"required"`
}

func ApproveProfile(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		response.Fail(c, response.ErrNotFound.WithTips("Matrimonial profile not found"))
		return
	}
	var req ApproveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("isApproved is required"))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var profile model.MatrimonialProfile
	err := db.First(&profile, id).Error
	if database.IsNotFound(err) {
		response.Fail(c, response.ErrNotFound.WithTips("Matrimonial profile not found"))
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := db.Model(&profile).Update("is_approved", *req.IsApproved).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	profile.IsApproved = *req.IsApproved
	log.Info("审核婚恋资料", "profile_id", id, "approved", *req.IsApproved)
	response.Success(c, profile)
}

func DeleteProfile(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		response.Fail(c, response.ErrNotFound.WithTips("Matrimonial profile not found"))
		return
	}
	result := database.DB.WithContext(c.Request.Context()).Delete(&model.MatrimonialProfile{}, id)
	if result.Error != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("Matrimonial profile not found"))
		return
	}
	response.Deleted(c, "Matrimonial profile")
}
