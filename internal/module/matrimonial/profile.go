package matrimonial

import (
	"strings"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/global/session"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var genders = map[string]struct{}{"Male": {}, "Female": {}}

type ProfileReq struct {
	FullName     *string `json:"fullName"`
	Gender       *string `json:"gender"`
	DateOfBirth  *string `json:"dateOfBirth"`
	Education    *string `json:"education"`
	Occupation   *string `json:"occupation"`
	Gotra        *string `json:"gotra"`
	City         *string `json:"city"`
	About        *string `json:"about"`
	ContactPhone *string `json:"contactPhone"`
	PhotoURL     *string `json:"photoUrl"`
}

func (req *ProfileReq) apply(p *model.MatrimonialProfile) string {
	for dst, src := range map[*string]*string{
		&p.FullName:     req.FullName,
		&p.Gender:       req.Gender,
		&p.Education:    req.Education,
		&p.Occupation:   req.Occupation,
		&p.Gotra:        req.Gotra,
		&p.City:         req.City,
		&p.About:        req.About,
		&p.ContactPhone: req.ContactPhone,
		&p.PhotoURL:     req.PhotoURL,
	} {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	if req.DateOfBirth != nil {
		if strings.TrimSpace(*req.DateOfBirth) == "" {
			p.DateOfBirth = nil
		} else {
			t, ok := tools.ParseTime(*req.DateOfBirth)
			if !ok {
				return "Invalid date of birth"
			}
			d := datatypes.Date(t)
			p.DateOfBirth = &d
		}
	}
	if p.FullName == "" || p.Gender == "" {
		return "Full name and gender are required"
	}
	if _, ok := genders[p.Gender]; !ok {
		return "Gender must be Male or Female"
	}
	return ""
}

func memberSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name", "city", "native_place", "profile_image_url")
}

// ownMember 当前登录用户的会员资料，没有时写入 404
func ownMember(c *gin.Context) (*model.Member, bool) {
	sess, _ := session.FromContext(c)
	var member model.Member
	err := database.DB.WithContext(c.Request.Context()).Where("user_id = ?", sess.UserID).First(&member).Error
	if database.IsNotFound(err) {
		response.Fail(c, response.ErrNotFound.WithTips("Member profile not found"))
		return nil, false
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	return &member, true
}

func GetOwnProfile(c *gin.Context) {
	member, ok := ownMember(c)
	if !ok {
		return
	}
	var profile model.MatrimonialProfile
	err := database.DB.WithContext(c.Request.Context()).Where("member_id = ?", member.ID).First(&profile).Error
	if database.IsNotFound(err) {
		response.Fail(c, response.ErrNotFound.WithTips("Matrimonial profile not found"))
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, profile)
}

// SaveOwnProfile 创建或更新自己的资料，每次修改都要重新审核
func SaveOwnProfile(c *gin.Context) {
	var req ProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	member, ok := ownMember(c)
	if !ok {
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var profile model.MatrimonialProfile
	created := false
	err := db.Where("member_id = ?", member.ID).First(&profile).Error
	switch {
	case database.IsNotFound(err):
		profile = model.MatrimonialProfile{MemberID: member.ID, IsActive: true}
		created = true
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if msg := req.apply(&profile); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}
	profile.IsApproved = false
	if err := db.Save(&profile).Error; err != nil {
		if database.IsDuplicateKey(err) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("Matrimonial profile already exists"))
			return
		}
		log.Error("保存婚恋资料失败", "error", err, "member_id", member.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("婚恋资料待审核", "profile_id", profile.ID, "member_id", member.ID)
	if created {
		response.Created(c, profile)
		return
	}
	response.Success(c, profile)
}

// ListApproved 登录会员可见的已审核资料
func ListApproved(c *gin.Context) {
	profiles := []model.MatrimonialProfile{}
	err := database.DB.WithContext(c.Request.Context()).
		Preload("Member", memberSummary).
		Where("is_approved = ? AND is_active = ?", true, true).
		Order("updated_at DESC").Order("id DESC").
		Find(&profiles).Error
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, profiles)
}
