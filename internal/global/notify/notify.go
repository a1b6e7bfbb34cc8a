package notify

import (
	"context"
	"log/slog"

	"community-portal/config"
	"community-portal/internal/global/httpclient"
	"community-portal/internal/global/logger"
)

// Mailer 发送账号相关邮件
type Mailer interface {
	SendVerification(ctx context.Context, toEmail, name, link string) error
}

// AdminNotifier 通知管理员有待处理事项
type AdminNotifier interface {
	MemberRegistered(ctx context.Context, event MemberRegisteredEvent) error
}

// MemberRegisteredEvent 新会员注册，等待审核
type MemberRegisteredEvent struct {
	MemberID uint   `json:"memberId"`
	UserID   uint   `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

var (
	Mail  Mailer        = noop{}
	Admin AdminNotifier = noop{}
)

var log *slog.Logger

// Init 根据配置启用邮件和 webhook，未配置的通道保持空实现
func Init() {
	log = logger.New("Notify")
	cfg := config.Get()

	if cfg.Email.SMTPHost != "" && cfg.Email.FromEmail != "" {
		Mail = NewEmailNotifier(cfg.Email, log)
	}
	if cfg.Notify.WebhookURL != "" {
		Admin = NewWebhookNotifier(httpclient.Client, cfg.Notify.WebhookURL, log)
	}
}

type noop struct{}

func (noop) SendVerification(context.Context, string, string, string) error { return nil }

func (noop) MemberRegistered(context.Context, MemberRegisteredEvent) error { return nil }
