package member

import (
	"strconv"
	"strings"
	"time"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MemberReq 创建和更新共用，指针字段为 nil 表示不修改
type MemberReq struct {
	FirstName        *string `json:"firstName"`
	LastName         *string `json:"lastName"`
	FatherName       *string `json:"fatherName"`
	NativePlace      *string `json:"nativePlace"`
	DateOfBirth      *string `json:"dateOfBirth"`
	Gender           *string `json:"gender"`
	Address          *string `json:"address"`
	Locality         *string `json:"locality"`
	City             *string `json:"city"`
	Pincode          *string `json:"pincode"`
	PhonePrimary     *string `json:"phonePrimary"`
	PhoneSecondary   *string `json:"phoneSecondary"`
	Email            *string `json:"email"`
	BusinessName     *string `json:"businessName"`
	BusinessCategory *string `json:"businessCategory"`
	Gotra            *string `json:"gotra"`
	MembershipType   *string `json:"membershipType"`
	Status           *string `json:"status"`
	IsApproved       *bool   `json:"isApproved"`
	IsActive         *bool   `json:"isActive"`
	ProfileImageURL  *string `json:"profileImageUrl"`
}

func validMembership(t string) bool {
	switch t {
	case model.MembershipRegular, model.MembershipLifetime, model.MembershipPatron:
		return true
	}
	return false
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// apply 将请求中的非空字段写入 m，返回面向用户的校验错误
func (req *MemberReq) apply(m *model.Member) string {
	setString(&m.FirstName, req.FirstName)
	setString(&m.LastName, req.LastName)
	setString(&m.FatherName, req.FatherName)
	setString(&m.NativePlace, req.NativePlace)
	setString(&m.Gender, req.Gender)
	setString(&m.Address, req.Address)
	setString(&m.Locality, req.Locality)
	setString(&m.City, req.City)
	setString(&m.Pincode, req.Pincode)
	setString(&m.PhonePrimary, req.PhonePrimary)
	setString(&m.PhoneSecondary, req.PhoneSecondary)
	setString(&m.Email, req.Email)
	setString(&m.BusinessName, req.BusinessName)
	setString(&m.BusinessCategory, req.BusinessCategory)
	setString(&m.Gotra, req.Gotra)
	setString(&m.Status, req.Status)
	setString(&m.ProfileImageURL, req.ProfileImageURL)
	if req.MembershipType != nil {
		if !validMembership(*req.MembershipType) {
			return "Invalid membership type"
		}
		m.MembershipType = *req.MembershipType
	}
	if req.DateOfBirth != nil {
		if strings.TrimSpace(*req.DateOfBirth) == "" {
			m.DateOfBirth = nil
		} else {
			t, ok := tools.ParseTime(*req.DateOfBirth)
			if !ok {
				return "Invalid date of birth"
			}
			d := datatypes.Date(t)
			m.DateOfBirth = &d
		}
	}
	if req.IsApproved != nil {
		m.IsApproved = *req.IsApproved
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if m.FirstName == "" {
		return "First name is required"
	}
	return ""
}

// ListMembers 管理后台会员列表，有效会员在前
func ListMembers(c *gin.Context) {
	query := database.DB.WithContext(c.Request.Context()).Model(&model.Member{}).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "role", "status", "is_email_verified")
		})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR phone_primary LIKE ? OR business_name LIKE ?",
			like, like, like, like, like)
	}
	if v := c.Query("isApproved"); v != "" {
		approved, err := strconv.ParseBool(v)
		if err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithTips("isApproved must be true or false"))
			return
		}
		query = query.Where("is_approved = ?", approved)
	}
	if v := c.Query("membershipType"); v != "" {
		query = query.Where("membership_type = ?", v)
	}

	var members []model.Member
	if err := query.Order("is_active DESC").Order("first_name").Order("last_name").Order("id").
		Find(&members).Error; err != nil {
		log.Error("查询会员列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, members)
}

func GetMember(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		response.Fail(c, response.ErrNotFound.WithTips("Member not found"))
		return
	}

	var member model.Member
	err := database.DB.WithContext(c.Request.Context()).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "phone", "role", "status", "is_email_verified")
		}).
		Preload("CommitteeMembers.Committee").
		First(&member, id).Error
	if database.IsNotFound(err) {
		response.Fail(c, response.ErrNotFound.WithTips("Member not found"))
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, member)
}

// CreateMember 管理员录入的会员默认已审核，不关联登录账号
func CreateMember(c *gin.Context) {
	var req MemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	member := model.Member{
		MembershipType: model.MembershipRegular,
		Status:         model.UserStatusActive,
		JoinedDate:     time.Now(),
		IsApproved:     true,
		IsActive:       true,
	}
	if msg := req.apply(&member); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}

	if err := database.DB.WithContext(c.Request.Context()).Create(&member).Error; err != nil {
		log.Error("创建会员失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("创建会员", "member_id", member.ID)
	response.Created(c, member)
}

// UpdateMember 部分更新，未出现的字段保持不变
func UpdateMember(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		response.Fail(c, response.ErrNotFound.WithTips("Member not found"))
		return
	}
	var req MemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var member model.Member
	err := db.First(&member, id).Error
	if database.IsNotFound(err) {
		response.Fail(c, response.ErrNotFound.WithTips("Member not found"))
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if msg := req.apply(&member); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}
	if err := db.Save(&member).Error; err != nil {
		log.Error("更新会员失败", "error", err, "member_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, member)
}

// DeleteMember 同时删除委员会任职和婚恋资料
func DeleteMember(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		response.Fail(c, response.ErrNotFound.WithTips("Member not found"))
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.Member{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&model.CommitteeMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&model.MatrimonialProfile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Member{}, id).Error
	})
	if database.IsNotFound(err) {
		response.Fail(c, response.ErrNotFound.WithTips("Member not found"))
		return
	}
	if err != nil {
		log.Error("删除会员失败", "error", err, "member_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("删除会员", "member_id", id)
	response.Deleted(c, "Member")
}
