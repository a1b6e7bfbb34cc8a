package member

import (
	"fmt"
	"time"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
)

// MemberRow 导出 Excel 的一行
type MemberRow struct {
	ID               uint      `excel:"ID"`
	FirstName        string    `excel:"First Name"`
	LastName         string    `excel:"Last Name"`
	FatherName       string    `excel:"Father Name"`
	Gender           string    `excel:"Gender"`
	DateOfBirth      string    `excel:"Date of Birth"`
	PhonePrimary     string    `excel:"Phone"`
	PhoneSecondary   string    `excel:"Alternate Phone"`
	Email            string    `excel:"Email"`
	Address          string    `excel:"Address"`
	Locality         string    `excel:"Locality"`
	City             string    `excel:"City"`
	Pincode          string    `excel:"Pincode"`
	NativePlace      string    `excel:"Native Place"`
	Gotra            string    `excel:"Gotra"`
	BusinessName     string    `excel:"Business Name"`
	BusinessCategory string    `excel:"Business Category"`
	MembershipType   string    `excel:"Membership Type"`
	Approved         string    `excel:"Approved"`
	Active           string    `excel:"Active"`
	JoinedDate       time.Time `excel:"Joined Date"`
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func toRow(m *model.Member) MemberRow {
	row := MemberRow{
		ID:               m.ID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		FatherName:       m.FatherName,
		Gender:           m.Gender,
		PhonePrimary:     m.PhonePrimary,
		PhoneSecondary:   m.PhoneSecondary,
		Email:            m.Email,
		Address:          m.Address,
		Locality:         m.Locality,
		City:             m.City,
		Pincode:          m.Pincode,
		NativePlace:      m.NativePlace,
		Gotra:            m.Gotra,
		BusinessName:     m.BusinessName,
		BusinessCategory: m.BusinessCategory,
		MembershipType:   m.MembershipType,
		Approved:         yesNo(m.IsApproved),
		Active:           yesNo(m.IsActive),
		JoinedDate:       m.JoinedDate,
	}
	if m.DateOfBirth != nil {
		row.DateOfBirth = time.Time(*m.DateOfBirth).Format("2006-01-02")
	}
	return row
}

// ExportMembers 导出全部会员为 xlsx
func ExportMembers(c *gin.Context) {
	var members []model.Member
	if err := database.DB.WithContext(c.Request.Context()).
		Order("first_name").Order("last_name").Order("id").
		Find(&members).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	rows := make([]MemberRow, 0, len(members))
	for i := range members {
		rows = append(rows, toRow(&members[i]))
	}

	filename := fmt.Sprintf("members_%s.xlsx", time.Now().Format("20060102"))
	if err := tools.WriteExcel(c, filename, "Members", rows); err != nil {
		log.Error("导出会员失败", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	log.Info("导出会员", "count", len(rows))
}
