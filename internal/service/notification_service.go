package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bloglist/internal/config"
	"github.com/spec-kit/bloglist/internal/events"
)

const webhookTimeout = 5 * time.Second

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{logger: logger, cfg: cfg}
}

// EventTypes lists the events Handle understands.
func (n *NotificationService) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventUserCreated,
		events.EventBlogCreated,
		events.EventBlogUpdated,
		events.EventBlogDeleted,
	}
}

// Handle emits the notification for one event. Blog events are also posted to the
// configured webhook, if any.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventUserCreated:
		n.logger.Info("UserCreated", zap.String("user_id", event.SubjectID), zap.Any("payload", event.Payload))
		return nil
	case events.EventBlogCreated:
		n.logger.Info("BlogCreated", zap.String("blog_id", event.SubjectID), zap.String("actor", event.Actor.UserID), zap.Any("payload", event.Payload))
	case events.EventBlogUpdated:
		n.logger.Info("BlogUpdated", zap.String("blog_id", event.SubjectID), zap.Any("payload", event.Payload))
	case events.EventBlogDeleted:
		n.logger.Info("BlogDeleted", zap.String("blog_id", event.SubjectID), zap.String("actor", event.Actor.UserID))
	default:
		n.logger.Debug("ignoring event", zap.String("event_type", string(event.Type)))
		return nil
	}
	return n.postWebhook(ctx, event)
}

// postWebhook sends event as JSON to the webhook URL. Any non-2xx answer is an error.
func (n *NotificationService) postWebhook(ctx context.Context, event events.Event) error {
	url := strings.TrimSpace(n.cfg.WebhookURL)
	if url == "" {
		return nil
	}

	timeout := webhookTimeout
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return fmt.Errorf("webhook %s: %w", event.Type, context.DeadlineExceeded)
		}
		if left < timeout {
			timeout = left
		}
	}

	agent := fiber.Post(url).JSON(event).Timeout(timeout)
	if err := agent.Parse(); err != nil {
		return fmt.Errorf("webhook %s: %w", event.Type, err)
	}
	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("webhook %s: %w", event.Type, errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return fmt.Errorf("webhook %s: unexpected status %d", event.Type, code)
	}

	n.logger.Debug("webhook delivered",
		zap.String("url", url),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
	return nil
}
