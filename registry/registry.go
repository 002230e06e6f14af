// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"log/slog"
	"sync"

	"github.com/danielhkuo/shadow-poll/models"
)

// updateBuffer is the per-subscription channel capacity. A subscriber
// that falls this many snapshots behind is treated as gone and dropped.
const updateBuffer = 16

// Subscription is one live sink for a poll's update events. Obtain one
// from Registry.Subscribe and release it with Registry.Unsubscribe.
type Subscription struct {
	pollID string
	ch     chan models.Poll
}

// Updates returns the channel that broadcast snapshots arrive on. The
// channel is closed when the subscription is removed from the registry,
// whether by Unsubscribe or by a failed delivery.
func (s *Subscription) Updates() <-chan models.Poll {
	return s.ch
}

// PollID returns the poll this subscription is attached to.
func (s *Subscription) PollID() string {
	return s.pollID
}

// Registry is the process-wide map of poll ID to live subscriptions.
// All access to the per-poll sets goes through Subscribe, Unsubscribe
// and Broadcast; the sets are never handed out.
type Registry struct {
	mu    sync.Mutex
	sinks map[string]map[*Subscription]struct{}
}

func New() *Registry {
	return &Registry{
		sinks: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe registers a new sink for pollID. The per-poll set is
// created lazily on first subscription.
func (r *Registry) Subscribe(pollID string) *Subscription {
	sub := &Subscription{
		pollID: pollID,
		ch:     make(chan models.Poll, updateBuffer),
	}

	r.mu.Lock()
	set, ok := r.sinks[pollID]
	if !ok {
		set = make(map[*Subscription]struct{})
		r.sinks[pollID] = set
	}
	set[sub] = struct{}{}
	n := len(set)
	r.mu.Unlock()

	slog.Info("stream subscribed", "poll_id", pollID, "subscribers", n)
	return sub
}

// Unsubscribe removes a sink and closes its channel. Calling it more
// than once, or after the registry already dropped the sink, is a no-op.
func (r *Registry) Unsubscribe(sub *Subscription) {
	r.mu.Lock()
	n, removed := r.removeLocked(sub)
	r.mu.Unlock()

	if removed {
		slog.Info("stream unsubscribed", "poll_id", sub.pollID, "subscribers", n)
	}
}

// Broadcast delivers snapshot to every sink currently subscribed to
// pollID. Delivery is at-most-once and fire-and-forget: a sink whose
// buffer is full is dropped without blocking delivery to the others,
// and there is no backlog for sinks that connect later. Broadcasting to
// a poll with no subscribers is a no-op.
func (r *Registry) Broadcast(pollID string, snapshot models.Poll) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.sinks[pollID]
	if !ok {
		return
	}

	for sub := range set {
		select {
		case sub.ch <- snapshot:
		default:
			// Sink not draining: the client is gone or hopelessly
			// behind. Drop it rather than stall the broadcast.
			r.removeLocked(sub)
			slog.Warn("dropped unresponsive stream subscriber", "poll_id", pollID)
		}
	}
}

// Subscribers returns the number of live sinks for pollID.
func (r *Registry) Subscribers(pollID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sinks[pollID])
}

// removeLocked deletes sub from its set, closes its channel, and prunes
// the set if it became empty. Returns the remaining sink count and
// whether sub was actually present. Caller must hold r.mu.
func (r *Registry) removeLocked(sub *Subscription) (int, bool) {
	set, ok := r.sinks[sub.pollID]
	if !ok {
		return 0, false
	}
	if _, ok := set[sub]; !ok {
		return len(set), false
	}
	delete(set, sub)
	close(sub.ch)
	n := len(set)
	if n == 0 {
		delete(r.sinks, sub.pollID)
	}
	return n, true
}
