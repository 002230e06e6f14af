// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry implements the in-memory fan-out of poll updates to
live stream subscribers.

# Model

One Registry per process. It maps poll IDs to sets of Subscriptions,
guarded by a single mutex. Per-poll sets are created lazily on first
subscribe and removed as soon as they empty, so idle polls cost nothing.

	reg := registry.New()
	sub := reg.Subscribe(pollID)
	defer reg.Unsubscribe(sub)

	for snapshot := range sub.Updates() {
		// write snapshot to the client
	}

# Delivery Semantics

Broadcast is best-effort, at-most-once, fire-and-forget:

  - every currently-subscribed sink gets one non-blocking send;
  - a sink whose buffer is full is dropped (its channel closed) without
    affecting delivery to the remaining sinks;
  - nothing is queued for sinks that subscribe afterwards - a client
    that connects late fetches current state once instead (the stream
    handler pushes an initial snapshot on open).

Per-sink ordering follows broadcast order for a poll; there is no
ordering guarantee across different polls. That is acceptable because
every event carries a full snapshot, never a delta.

# Scope

The registry is single-process by design. Fanning out across multiple
serving processes would need an external pub/sub layer and is out of
scope here.
*/
package registry
