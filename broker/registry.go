package broker

import "sync"

// Registry maps event types to subscribers and subscribers to delivery
// endpoints. Registration is rare, dispatch reads are hot, so reads take a
// snapshot under an RWMutex.
type Registry struct {
	mu          sync.RWMutex
	subscribers map[string][]string // event type -> subscriber ids, registration order
	endpoints   map[string]string   // subscriber id -> endpoint
}

// Subscription binds a subscriber id to its delivery endpoint for one event
// type.
type Subscription struct {
	SubscriberID string
	Endpoint     string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		subscribers: make(map[string][]string),
		endpoints:   make(map[string]string),
	}
}

// Subscribe registers subscriberID for eventType at endpoint. A duplicate
// (eventType, subscriberID) pair is a no-op apart from refreshing the
// endpoint.
func (r *Registry) Subscribe(eventType, subscriberID, endpoint string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := false
	for _, id := range r.subscribers[eventType] {
		if id == subscriberID {
			found = true
			break
		}
	}
	if !found {
		r.subscribers[eventType] = append(r.subscribers[eventType], subscriberID)
	}
	r.endpoints[subscriberID] = endpoint
}

// SubscribersFor returns the subscriptions for eventType in registration
// order. The returned slice is a snapshot; concurrent Subscribe calls do not
// mutate it.
func (r *Registry) SubscribersFor(eventType string) []Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.subscribers[eventType]
	subs := make([]Subscription, 0, len(ids))
	for _, id := range ids {
		subs = append(subs, Subscription{SubscriberID: id, Endpoint: r.endpoints[id]})
	}
	return subs
}
