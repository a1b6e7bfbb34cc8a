package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"community-portal/config"
	"community-portal/internal/model"
	"community-portal/tools"

	"gorm.io/gorm"
)

const welcomeSlug = "welcome-to-the-community-portal"

// Seed 初始化管理员、示例会员、委员会、新闻和活动，可重复执行
func Seed(ctx context.Context, db *gorm.DB, cfg config.Seed) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("seed 需要配置管理员邮箱和密码")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin, err := seedUser(tx, model.User{
			Name:            "System Administrator",
			Email:           cfg.AdminEmail,
			Password:        tools.PasswordEncrypt(cfg.AdminPassword),
			Role:            model.RoleSuperAdmin,
			Status:          model.UserStatusActive,
			IsEmailVerified: true,
		}, model.Member{
			FirstName:        "System",
			LastName:         "Administrator",
			BusinessName:     "Administrator",
			BusinessCategory: "System Administration",
			MembershipType:   model.MembershipPatron,
		})
		if err != nil {
			return err
		}

		if cfg.SampleMemberPasswd != "" {
			if _, err := seedUser(tx, model.User{
				Name:            "Sample Member",
				Email:           "member@example.com",
				Password:        tools.PasswordEncrypt(cfg.SampleMemberPasswd),
				Role:            model.RoleMember,
				Status:          model.UserStatusActive,
				IsEmailVerified: true,
			}, model.Member{
				FirstName:        "Sample",
				LastName:         "Member",
				FatherName:       "Sample Father",
				NativePlace:      "Bilaspur",
				City:             "Bilaspur",
				Locality:         "Railway Colony",
				Pincode:          "495001",
				Email:            "member@example.com",
				BusinessName:     "Sample Enterprises",
				BusinessCategory: "Trading",
				MembershipType:   model.MembershipLifetime,
			}); err != nil {
				return err
			}
		}

		for i, c := range []model.Committee{
			{Name: "Executive Committee", Description: "Main governing body of the association", SessionYear: "2024-2025"},
			{Name: "Cultural Committee", Description: "Organizes cultural events and programs", SessionYear: "2024-2025"},
		} {
			c.IsActive = true
			c.DisplayOrder = i
			if err := tx.Where(model.Committee{Name: c.Name, SessionYear: c.SessionYear}).
				FirstOrCreate(&c).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		article := model.NewsArticle{
			Title:       "Welcome to the Community Portal",
			Slug:        welcomeSlug,
			Content:     "<p>We are excited to launch our new community portal. Members can now register online, view events, read news and connect with the community digitally.</p>",
			PublishedAt: &now,
			AuthorID:    &admin.ID,
		}
		if err := tx.Where(model.NewsArticle{Slug: welcomeSlug}).FirstOrCreate(&article).Error; err != nil {
			return err
		}

		year := now.Year()
		for _, e := range []model.Event{
			{
				Title:         fmt.Sprintf("Agrasen Jayanti Celebration %d", year),
				Description:   "Annual celebration with cultural programs and a community gathering.",
				Venue:         "Agrasen Bhawan",
				StartDatetime: time.Date(year, time.September, 17, 18, 0, 0, 0, time.Local),
			},
			{
				Title:         fmt.Sprintf("Annual General Meeting %d", year),
				Description:   "All members are invited to discuss community development and upcoming initiatives.",
				Venue:         "Community Hall",
				StartDatetime: time.Date(year, time.December, 15, 17, 0, 0, 0, time.Local),
			},
		} {
			end := e.StartDatetime.Add(3 * time.Hour)
			e.EndDatetime = &end
			if err := tx.Where(model.Event{Title: e.Title}).FirstOrCreate(&e).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// seedUser 用户已存在时只补齐缺失的会员资料，不覆盖密码
func seedUser(tx *gorm.DB, user model.User, member model.Member) (*model.User, error) {
	var existing model.User
	err := tx.Where("email = ?", user.Email).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(&user).Error; err != nil {
			return nil, err
		}
		existing = user
	case err != nil:
		return nil, err
	}

	var count int64
	if err := tx.Model(&model.Member{}).Where("user_id = ?", existing.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		member.UserID = &existing.ID
		member.Status = model.UserStatusActive
		member.JoinedDate = time.Now()
		member.IsApproved = true
		member.IsActive = true
		if err := tx.Create(&member).Error; err != nil {
			return nil, err
		}
	}
	return &existing, nil
}
