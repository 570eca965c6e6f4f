// Package notifications provides the push channel that keeps admin consoles'
// pending queues current: a Redis-backed change signal fanned out as full
// snapshots by the SnapshotHub.
package notifications

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// PendingChangedChannel carries the change signal for the pending queue.
// The payload is irrelevant; receipt means "re-read and rebroadcast".
const PendingChangedChannel = "moderation:pending:changed"

// Notifier provides helpers to publish moderation events into Redis channels.
type Notifier struct {
	rdb *redis.Client
}

func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishPendingChanged signals every process that the pending queue changed.
func (n *Notifier) PublishPendingChanged(ctx context.Context) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, PendingChangedChannel, "changed").Err()
}

// StartPendingSubscriber subscribes to the pending-changed channel and calls
// onChange for each signal. The subscription ends when ctx is cancelled.
func (n *Notifier) StartPendingSubscriber(ctx context.Context, onChange func()) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, PendingChangedChannel)
	ch := sub.Channel()

	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				onChange()
			}
		}
	}()

	return nil
}
