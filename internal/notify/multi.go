// Package notify fans notification events out to every registered sink.
package notify

import (
	"context"
	"log/slog"

	"github.com/streamhub/streamhub/internal/video"
)

var (
	_ video.PublishNotifier = (*MultiPublishNotifier)(nil)
	_ video.DeleteNotifier  = (*MultiDeleteNotifier)(nil)
)

// MultiPublishNotifier fans out publish notifications to all registered notifiers.
type MultiPublishNotifier struct {
	notifiers []video.PublishNotifier
}

// NewMultiPublishNotifier creates a notifier that delegates to all provided publish notifiers.
func NewMultiPublishNotifier(notifiers ...video.PublishNotifier) *MultiPublishNotifier {
	return &MultiPublishNotifier{notifiers: notifiers}
}

func (m *MultiPublishNotifier) VideoPublished(ctx context.Context, title, watchURL string) error {
	for _, n := range m.notifiers {
		if err := n.VideoPublished(ctx, title, watchURL); err != nil {
			slog.Error("multi-notifier: publish notification failed", "error", err)
		}
	}
	return nil
}

// MultiDeleteNotifier fans out delete notifications to all registered notifiers.
type MultiDeleteNotifier struct {
	notifiers []video.DeleteNotifier
}

// NewMultiDeleteNotifier creates a notifier that delegates to all provided delete notifiers.
func NewMultiDeleteNotifier(notifiers ...video.DeleteNotifier) *MultiDeleteNotifier {
	return &MultiDeleteNotifier{notifiers: notifiers}
}

func (m *MultiDeleteNotifier) VideoDeleted(ctx context.Context, title string) error {
	for _, n := range m.notifiers {
		if err := n.VideoDeleted(ctx, title); err != nil {
			slog.Error("multi-notifier: delete notification failed", "error", err)
		}
	}
	return nil
}
