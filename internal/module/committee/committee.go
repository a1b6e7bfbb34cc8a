package committee

import (
	"strings"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CommitteeReq 创建和更新共用，更新时 nil 字段保持不变
type CommitteeReq struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	SessionYear       *string `json:"sessionYear"`
	CommitteeImageURL *string `json:"committeeImageUrl"`
	PosterImageURL    *string `json:"posterImageUrl"`
	IsActive          *bool   `json:"isActive"`
	DisplayOrder      *int    `json:"displayOrder"`
}

func (req *CommitteeReq) apply(c *model.Committee) string {
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.SessionYear != nil {
		c.SessionYear = strings.TrimSpace(*req.SessionYear)
	}
	if req.CommitteeImageURL != nil {
		c.CommitteeImageURL = *req.CommitteeImageURL
	}
	if req.PosterImageURL != nil {
		c.PosterImageURL = *req.PosterImageURL
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		if *req.DisplayOrder < 0 {
			return "Display order must be a non-negative number"
		}
		c.DisplayOrder = *req.DisplayOrder
	}
	if c.Name == "" || c.SessionYear == "" {
		return "Name and session year are required"
	}
	return ""
}

func notFound(c *gin.Context) {
	response.Fail(c, response.ErrNotFound.WithTips("Committee not found"))
}

// ListCommittees 后台列表，包含所有委员会
func ListCommittees(c *gin.Context) {
	committees := []model.Committee{}
	if err := database.DB.WithContext(c.Request.Context()).Scopes(ordered).Find(&committees).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := attachCounts(c.Request.Context(), committees); err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, committees)
}

func CreateCommittee(c *gin.Context) {
	var req CommitteeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	committee := model.Committee{IsActive: true}
	if msg := req.apply(&committee); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}
	if err := database.DB.WithContext(c.Request.Context()).Create(&committee).Error; err != nil {
		log.Error("创建委员会失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	committee.Count = &model.CommitteeCount{}

	log.Info("创建委员会", "committee_id", committee.ID, "name", committee.Name)
	response.Created(c, committee)
}

func GetCommittee(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		notFound(c)
		return
	}
	committee, err := Find(c.Request.Context(), id)
	if database.IsNotFound(err) {
		notFound(c)
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, committee)
}

// UpdateCommittee 部分更新
func UpdateCommittee(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		notFound(c)
		return
	}
	var req CommitteeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var committee model.Committee
	err := db.First(&committee, id).Error
	if database.IsNotFound(err) {
		notFound(c)
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if msg := req.apply(&committee); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}
	if err := db.Save(&committee).Error; err != nil {
		log.Error("更新委员会失败", "error", err, "committee_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, committee)
}

// DeleteCommittee 同时删除其成员关系
func DeleteCommittee(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		notFound(c)
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.Committee{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("committee_id = ?", id).Delete(&model.CommitteeMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Committee{}, id).Error
	})
	if database.IsNotFound(err) {
		notFound(c)
		return
	}
	if err != nil {
		log.Error("删除委员会失败", "error", err, "committee_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("删除委员会", "committee_id", id)
	response.Deleted(c, "Committee")
}

type AddMemberReq struct {
	MemberID    uint   `json:"memberId" binding:"required"`
	Designation string `json:"designation" binding:"required"`
}

// AddMember 为委员会添加成员，同一会员可以在一个委员会中担任多个职务
func AddMember(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		notFound(c)
		return
	}
	var req AddMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips(tools.BindErrorMessage(err)))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	if err := db.First(&model.Committee{}, id).Error; err != nil {
		if database.IsNotFound(err) {
			notFound(c)
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	var member model.Member
	if err := db.First(&member, req.MemberID).Error; err != nil {
		if database.IsNotFound(err) {
			response.Fail(c, response.ErrInvalidRequest.WithTips("Member not found"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	cm := model.CommitteeMember{
		CommitteeID: id,
		MemberID:    member.ID,
		Designation: strings.TrimSpace(req.Designation),
	}
	if err := db.Create(&cm).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	cm.Member = &member
	response.Created(c, cm)
}

func RemoveMember(c *gin.Context) {
	id, ok1 := tools.ParamUint(c, "id")
	cmID, ok2 := tools.ParamUint(c, "cmId")
	if !ok1 || !ok2 {
		response.Fail(c, response.ErrNotFound.WithTips("Committee member not found"))
		return
	}

	result := database.DB.WithContext(c.Request.Context()).
		Where("id = ? AND committee_id = ?", cmID, id).
		Delete(&model.CommitteeMember{})
	if result.Error != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("Committee member not found"))
		return
	}
	response.Deleted(c, "Committee member")
}
