// Package bridge connects the chat-event goroutine and the control loop through a pair
// of one-directional FIFO queues. The bridge never interprets envelope payloads; producers
// and consumers agree on Kind out of band.
//
// Capacity 0 means unbounded, which matches the expected low message rates but grows
// memory without limit if a producer outruns the consumer. A positive capacity drops the
// newest envelope once full and counts the drop, so operators can alert on it.
package bridge

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Envelope is an opaque payload carried across the bridge.
type Envelope struct {
	ID   string
	Kind string
	Body string
	At   time.Time
}

// NewEnvelope stamps a payload with an id and the current time.
func NewEnvelope(kind, body string) Envelope {
	return Envelope{ID: uuid.NewString(), Kind: kind, Body: body, At: time.Now().UTC()}
}

// Queue is a thread-safe FIFO with an optional capacity bound.
type Queue struct {
	name     string
	capacity int

	mu      sync.Mutex
	items   []Envelope
	dropped uint64
}

func newQueue(name string, capacity int) *Queue {
	return &Queue{name: name, capacity: capacity}
}

// Push appends an envelope. It returns false when a bounded queue is full,
// in which case the envelope is dropped and counted.
func (q *Queue) Push(e Envelope) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.capacity > 0 && len(q.items) >= q.capacity {
		q.dropped++
		slog.Warn("bridge queue full; dropping envelope",
			slog.String("queue", q.name), slog.String("kind", e.Kind), slog.Uint64("dropped_total", q.dropped))
		return false
	}
	q.items = append(q.items, e)
	return true
}

// Drain removes and returns all currently queued envelopes in FIFO order.
// It returns nil when the queue is empty.
func (q *Queue) Drain() []Envelope {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued envelopes.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Dropped reports how many envelopes have been rejected by the capacity bound.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Bridge is the queue pair. FromBot carries notifications out of the chat-event
// goroutine; ToBot carries control instructions in. FIFO holds within a queue only;
// there is no ordering between the two.
type Bridge struct {
	ToBot   *Queue
	FromBot *Queue
}

// New builds a bridge whose queues share a capacity bound (0 = unbounded).
func New(capacity int) *Bridge {
	return &Bridge{
		ToBot:   newQueue("to_bot", capacity),
		FromBot: newQueue("from_bot", capacity),
	}
}
