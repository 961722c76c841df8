package broker

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photostudio/models"
)

func msg(eventType, id string) models.Message {
	return models.Message{MessageID: id, EventType: eventType}
}

func TestQueueStoreFIFO(t *testing.T) {
	s := NewQueueStore()

	assert.Equal(t, 1, s.Enqueue(msg("booking.created", "m1")))
	assert.Equal(t, 2, s.Enqueue(msg("booking.created", "m2")))
	assert.Equal(t, 3, s.Enqueue(msg("booking.created", "m3")))

	for _, want := range []string{"m1", "m2", "m3"} {
		got, ok := s.DequeueNext("booking.created")
		require.True(t, ok)
		assert.Equal(t, want, got.MessageID)
	}

	_, ok := s.DequeueNext("booking.created")
	assert.False(t, ok)
}

func TestQueueStoreIsolatesEventTypes(t *testing.T) {
	s := NewQueueStore()
	s.Enqueue(msg("booking.created", "b1"))
	s.Enqueue(msg("payment.succeeded", "p1"))

	got, ok := s.DequeueNext("payment.succeeded")
	require.True(t, ok)
	assert.Equal(t, "p1", got.MessageID)

	depths := s.Depths()
	assert.Equal(t, 1, depths["booking.created"])
	assert.Equal(t, 0, depths["payment.succeeded"])
}

func TestQueueStoreConcurrentDequeueIsAtomic(t *testing.T) {
	s := NewQueueStore()
	const n = 200
	for i := 0; i < n; i++ {
		s.Enqueue(msg("booking.created", fmt.Sprintf("m%d", i)))
	}

	var mu sync.Mutex
	seen := make(map[string]int)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				m, ok := s.DequeueNext("booking.created")
				if !ok {
					return
				}
				mu.Lock()
				seen[m.MessageID]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Every message popped exactly once.
	assert.Len(t, seen, n)
	for id, count := range seen {
		assert.Equalf(t, 1, count, "message %s popped %d times", id, count)
	}
}

func TestQueueStorePeekDoesNotConsume(t *testing.T) {
	s := NewQueueStore()
	s.Enqueue(msg("booking.created", "m1"))
	s.Enqueue(msg("booking.created", "m2"))
	s.Enqueue(msg("booking.created", "m3"))

	peeked := s.Peek(2)
	require.Len(t, peeked["booking.created"], 2)
	assert.Equal(t, "m1", peeked["booking.created"][0].MessageID)

	assert.Equal(t, 3, s.Depths()["booking.created"])
}

func TestQueueStoreNonEmptyTypes(t *testing.T) {
	s := NewQueueStore()
	assert.Empty(t, s.NonEmptyTypes())

	s.Enqueue(msg("booking.created", "m1"))
	s.Enqueue(msg("payment.failed", "m2"))
	s.DequeueNext("payment.failed")

	types := s.NonEmptyTypes()
	assert.Equal(t, []string{"booking.created"}, types)
}
