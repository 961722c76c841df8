package broker

import (
	"sync"

	"photostudio/models"
)

// QueueStore holds one FIFO queue per event type. A message leaves its queue
// exactly once, when a dispatch attempt pops it; it is never requeued.
type QueueStore struct {
	mu     sync.Mutex
	queues map[string][]models.Message
}

// NewQueueStore returns an empty store.
func NewQueueStore() *QueueStore {
	return &QueueStore{queues: make(map[string][]models.Message)}
}

// Enqueue appends msg to the queue for its event type and returns the new
// queue depth. It always succeeds.
func (s *QueueStore) Enqueue(msg models.Message) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queues[msg.EventType] = append(s.queues[msg.EventType], msg)
	return len(s.queues[msg.EventType])
}

// DequeueNext removes and returns the head of the queue for eventType. The
// removal is atomic: two concurrent dispatch attempts can never observe the
// same message.
func (s *QueueStore) DequeueNext(eventType string) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.queues[eventType]
	if len(q) == 0 {
		return models.Message{}, false
	}
	head := q[0]
	s.queues[eventType] = q[1:]
	return head, true
}

// NonEmptyTypes snapshots the event types that currently have pending
// messages.
func (s *QueueStore) NonEmptyTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var types []string
	for t, q := range s.queues {
		if len(q) > 0 {
			types = append(types, t)
		}
	}
	return types
}

// Depths returns the current depth of every known queue.
func (s *QueueStore) Depths() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	depths := make(map[string]int, len(s.queues))
	for t, q := range s.queues {
		depths[t] = len(q)
	}
	return depths
}

// Peek copies up to limit pending messages per event type, for the
// introspection endpoint. Read-only, no side effects.
func (s *QueueStore) Peek(limit int) map[string][]models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]models.Message, len(s.queues))
	for t, q := range s.queues {
		n := len(q)
		if n > limit {
			n = limit
		}
		out[t] = append([]models.Message(nil), q[:n]...)
	}
	return out
}
