package notifications

import (
	"context"
	"errors"
	"sync"

	"newsdesk/internal/middleware"
	"newsdesk/internal/models"

	"github.com/google/uuid"
)

// Max concurrent snapshot subscribers.
const maxSubscribers = 256

// SnapshotLoader reads the current full pending set from the store.
type SnapshotLoader func(ctx context.Context) ([]models.Submission, error)

// Subscription is one consumer's handle on the pending-queue snapshot feed.
// C delivers the full current pending set on every change; consumers replace
// their working set on each receive. Close unsubscribes deterministically.
type Subscription struct {
	id  string
	C   chan []models.Submission
	hub *SnapshotHub
}

// Close detaches the subscription from the hub. Safe to call once.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s.id)
}

// SnapshotHub fans full pending-queue snapshots out to subscribers. It is fed
// by local change notifications and by the Redis pending-changed channel, so
// every replica rebroadcasts regardless of which one performed the mutation.
type SnapshotHub struct {
	mu     sync.RWMutex
	subs   map[string]*Subscription
	loader SnapshotLoader
	closed bool
}

// NewSnapshotHub creates a hub that loads snapshots with the given loader.
func NewSnapshotHub(loader SnapshotLoader) *SnapshotHub {
	return &SnapshotHub{
		subs:   make(map[string]*Subscription),
		loader: loader,
	}
}

// Name returns a human-readable identifier for this hub.
func (h *SnapshotHub) Name() string { return "snapshot hub" }

// Subscribe registers a new snapshot consumer.
func (h *SnapshotHub) Subscribe() (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, errors.New("hub is shut down")
	}
	if len(h.subs) >= maxSubscribers {
		return nil, errors.New("subscriber limit reached")
	}

	sub := &Subscription{
		id:  uuid.NewString(),
		C:   make(chan []models.Submission, 1),
		hub: h,
	}
	h.subs[sub.id] = sub
	middleware.SnapshotSubscribers.Inc()
	return sub, nil
}

func (h *SnapshotHub) unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(sub.C)
		middleware.SnapshotSubscribers.Dec()
	}
}

// Broadcast delivers the snapshot to every subscriber. A slow subscriber's
// stale snapshot is replaced rather than queued: only the latest set matters.
func (h *SnapshotHub) Broadcast(snapshot []models.Submission) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		select {
		case sub.C <- snapshot:
		default:
			// Drop the stale snapshot, then deliver the fresh one.
			select {
			case <-sub.C:
			default:
			}
			select {
			case sub.C <- snapshot:
			default:
			}
		}
	}
	middleware.SnapshotBroadcasts.Inc()
}

// NotifyChanged re-reads the pending set and broadcasts it. Duplicate or
// overlapping invocations are harmless: subscribers replace their working set.
func (h *SnapshotHub) NotifyChanged(ctx context.Context) {
	snapshot, err := h.loader(ctx)
	if err != nil {
		middleware.Logger.Error("snapshot load failed", "error", err.Error())
		return
	}
	h.Broadcast(snapshot)
}

// StartWiring connects the Notifier to this hub: every Redis pending-changed
// signal triggers a reload and rebroadcast.
func (h *SnapshotHub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartPendingSubscriber(ctx, func() {
		h.NotifyChanged(ctx)
	})
}

// Shutdown closes all subscriptions.
func (h *SnapshotHub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.C)
		middleware.SnapshotSubscribers.Dec()
	}
	return nil
}
