package member

import (
	"strings"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Visible 公开名录的查询条件
func Visible(db *gorm.DB) *gorm.DB {
	return db.Where("is_approved = ? AND is_active = ?", true, true)
}

func publicOrder(db *gorm.DB) *gorm.DB {
	return db.Order("first_name").Order("last_name").Order("id")
}

// ListPublicMembers 公开会员名录，支持按姓名或商号搜索以及城市、籍贯、行业、会员类型筛选
func ListPublicMembers(c *gin.Context) {
	query := database.DB.WithContext(c.Request.Context()).Model(&model.Member{}).Scopes(Visible)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR business_name LIKE ?", like, like, like)
	}
	for param, column := range map[string]string{
		"city":             "city",
		"nativePlace":      "native_place",
		"businessCategory": "business_category",
		"membershipType":   "membership_type",
	} {
		if v := strings.TrimSpace(c.Query(param)); v != "" {
			query = query.Where(column+" = ?", v)
		}
	}

	var members []model.Member
	if err := query.Scopes(publicOrder).Find(&members).Error; err != nil {
		log.Error("查询会员名录失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, members)
}

// ListByMembership 按会员类型列出公开会员，如终身会员、赞助会员
func ListByMembership(membershipType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var members []model.Member
		if err := database.DB.WithContext(c.Request.Context()).
			Scopes(Visible, publicOrder).
			Where("membership_type = ?", membershipType).
			Find(&members).Error; err != nil {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		response.Success(c, members)
	}
}

type Filters struct {
	Cities             []string `json:"cities"`
	NativePlaces       []string `json:"nativePlaces"`
	BusinessCategories []string `json:"businessCategories"`
	MembershipTypes    []string `json:"membershipTypes"`
}

// ListFilters 公开会员中出现过的筛选项
func ListFilters(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())
	distinct := func(column string) ([]string, error) {
		out := []string{}
		err := db.Model(&model.Member{}).Scopes(Visible).
			Where(column+" <> ''").
			Distinct(column).Order(column).
			Pluck(column, &out).Error
		return out, err
	}

	var f Filters
	for _, target := range []struct {
		dst    *[]string
		column string
	}{
		{&f.Cities, "city"},
		{&f.NativePlaces, "native_place"},
		{&f.BusinessCategories, "business_category"},
		{&f.MembershipTypes, "membership_type"},
	} {
		values, err := distinct(target.column)
		if err != nil {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		*target.dst = values
	}
	response.Success(c, f)
}
