// Package notify hands desktop notifications to an external notification
// daemon. A notification is written as a small INI file and the daemon is
// told the file's path over TCP.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
)

// DefaultTimeout is how long the daemon shows a notification.
const DefaultTimeout = 5 * time.Second

type Notification struct {
	Title   string
	Message string
	Urgency domain.Urgency
	Icon    string
	Timeout time.Duration
}

// Notifier delivers a notification.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// LogNotifier logs notifications instead of delivering them. It is used
// when no daemon is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Send(ctx context.Context, n Notification) error {
	l.logger.InfoContext(ctx, "notification",
		"title", n.Title,
		"message", n.Message,
		"urgency", string(n.withDefaults().Urgency),
	)
	return nil
}

func (n Notification) withDefaults() Notification {
	if n.Urgency == "" {
		n.Urgency = domain.UrgencyNormal
	}
	if n.Timeout <= 0 {
		n.Timeout = DefaultTimeout
	}
	return n
}
