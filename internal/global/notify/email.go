package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"community-portal/config"

	"gopkg.in/gomail.v2"
)

// EmailNotifier 通过 SMTP 发送邮件
type EmailNotifier struct {
	cfg    config.Email
	logger *slog.Logger
	dialer *gomail.Dialer
}

func NewEmailNotifier(cfg config.Email, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{
		cfg:    cfg,
		logger: logger,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
	}
}

// SendVerification 发送邮箱验证链接，链接 24 小时内有效
func (n *EmailNotifier) SendVerification(ctx context.Context, toEmail, name, link string) error {
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.FromEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Verify your email address")
	m.SetBody("text/html", verificationBody(name, link))
	m.AddAlternative("text/plain", fmt.Sprintf("Hello %s,\n\nPlease verify your email address by opening the link below (valid for 24 hours):\n%s\n", name, link))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	n.logger.Info("验证邮件已发送", slog.String("to", toEmail))
	return nil
}

func verificationBody(name, link string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Welcome, %s</h2>
    <p>Thank you for registering. Please confirm your email address:</p>
    <p><a href="%s" style="display:inline-block;padding:12px 20px;background:#b45309;color:#fff;text-decoration:none;border-radius:6px;">Verify email</a></p>
    <p>This link is valid for 24 hours. Your membership will be reviewed by an administrator.</p>
  </div>
</body>
</html>`, html.EscapeString(name), html.EscapeString(link))
}
