package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// WebhookNotifier 将管理员事件 POST 到配置的 webhook 地址
type WebhookNotifier struct {
	client *resty.Client
	url    string
	logger *slog.Logger
}

func NewWebhookNotifier(client *resty.Client, url string, logger *slog.Logger) *WebhookNotifier {
	return &WebhookNotifier{client: client, url: url, logger: logger}
}

type webhookPayload struct {
	Event      string    `json:"event"`
	Text       string    `json:"text"`
	Data       any       `json:"data"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (n *WebhookNotifier) MemberRegistered(ctx context.Context, event MemberRegisteredEvent) error {
	return n.post(ctx, webhookPayload{
		Event:      "member.registered",
		Text:       fmt.Sprintf("New member registration pending approval: %s <%s>", event.Name, event.Email),
		Data:       event,
		OccurredAt: time.Now(),
	})
}

func (n *WebhookNotifier) post(ctx context.Context, payload webhookPayload) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook responded %d", resp.StatusCode())
	}
	n.logger.Info("管理员通知已发送", slog.String("event", payload.Event))
	return nil
}
