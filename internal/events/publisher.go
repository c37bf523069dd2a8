package events

import (
	"context"

	"github.com/laabobo/live-relay/internal/domain"
)

// Publisher pushes interaction events onto the downstream feed. The
// relay never blocks user-visible work on the feed; publish failures are
// logged by callers and otherwise ignored.
type Publisher interface {
	Publish(ctx context.Context, event *domain.Event) error
	Close() error
}

// NopPublisher discards every event. Used when no feed is configured so
// the relay stays fully self-contained.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event *domain.Event) error { return nil }
func (NopPublisher) Close() error                                           { return nil }
