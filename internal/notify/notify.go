// Package notify delivers share notifications outside the request path.
package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Notification tells one recipient that a document was shared with them.
type Notification struct {
	Recipient  string    `json:"recipient"`
	Link       string    `json:"link"`
	DocumentID string    `json:"document_id"`
	FileName   string    `json:"file_name"`
	SharedBy   string    `json:"shared_by"`
	SharedAt   time.Time `json:"shared_at"`
}

// Notifier delivers a single notification. Implementations may be retried.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the log instead of delivering them.
// It is the default backend when no outbox is configured.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Send(_ context.Context, n Notification) error {
	l.log.Info("share_notification",
		zap.String("recipient", n.Recipient),
		zap.String("document_id", n.DocumentID),
		zap.String("file_name", n.FileName),
		zap.String("shared_by", n.SharedBy),
		zap.String("link", n.Link),
	)
	return nil
}
