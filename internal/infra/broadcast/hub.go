package broadcast

import "sync"

// Event names pushed to the dashboard.
const (
	EventCallProcessed  = "call_processed"
	EventEmailProcessed = "email_processed"
	EventLeadUpdated    = "lead_updated"
)

type Event struct {
	Name    string `json:"event"`
	Topic   string `json:"topic,omitempty"`
	Payload any    `json:"data"`
}

type Broadcaster interface {
	Publish(topic string, event Event)
}

// Subscriber receives events on C. Delivery is best-effort, at most once:
// a subscriber that cannot keep up loses events instead of blocking the
// publisher, and there is no replay for late joiners.
type Subscriber struct {
	C      chan Event
	topics map[string]struct{}
}

// Topics returns the lead topics this subscriber registered interest in.
func (s *Subscriber) Topics() []string {
	out := make([]string, 0, len(s.topics))
	for t := range s.topics {
		out = append(out, t)
	}
	return out
}

type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

func (h *Hub) Subscribe(topics ...string) *Subscriber {
	sub := &Subscriber{
		C:      make(chan Event, 16),
		topics: make(map[string]struct{}),
	}
	for _, t := range topics {
		sub.topics[t] = struct{}{}
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.C)
	}
	h.mu.Unlock()
}

// Publish fans the event out to every connected subscriber. Registered
// topics are deliberately not used to filter delivery: the dashboard
// refreshes on every event, so everyone gets everything. The topic still
// travels with the event should per-lead scoping ever be wanted.
func (h *Hub) Publish(topic string, event Event) {
	event.Topic = topic

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case sub.C <- event:
		default:
			// Slow consumer, drop.
		}
	}
}
