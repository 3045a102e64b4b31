// internal/notifier/channel_registry.go
// In-memory registry of reply channels, addressed by (event_id, kind),
// mirroring the Python thread_registry: a waiter registers the channel it's
// waiting on so a late-arriving reply can find it without the sender knowing
// which goroutine owns it.

package notifier

import "sync"

// ChannelKey addresses one waiter: an event plus a payload kind
// (e.g. "ritual_prompt", "result_confirm_card").
type ChannelKey struct {
	EventID string
	Kind    string
}

// ChannelRegistry tracks reply channels for outstanding prompts. It holds no
// authoritative state of its own. It starts empty on process start and
// nothing repopulates it from the Store.
type ChannelRegistry struct {
	mu       sync.Mutex
	channels map[ChannelKey]chan interface{}
}

// NewChannelRegistry creates an empty registry.
func NewChannelRegistry() *ChannelRegistry {
	return &ChannelRegistry{channels: make(map[ChannelKey]chan interface{})}
}

// Register installs a reply channel for a key, replacing any prior waiter
// (a resumed coordinator always supersedes a stale one).
func (r *ChannelRegistry) Register(key ChannelKey) chan interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan interface{}, 1)
	r.channels[key] = ch
	return ch
}

// Deliver routes a reply to its waiter, if one is registered. Returns false
// if nothing is waiting (the reply is dropped — the HTTP handler that
// produced it should treat this as "no longer pending").
func (r *ChannelRegistry) Deliver(key ChannelKey, payload interface{}) bool {
	r.mu.Lock()
	ch, ok := r.channels[key]
	r.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case ch <- payload:
		return true
	default:
		return false
	}
}

// Remove deregisters a key once its coordinator is done with it.
func (r *ChannelRegistry) Remove(key ChannelKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.channels, key)
}
