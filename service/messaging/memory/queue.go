// Package memory provides a buffered in-memory messaging.Queue. It backs
// the scheduler's lifecycle event stream; events are observational, so the
// queue favours never blocking the publisher over durability and drops the
// oldest message when full.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viant/yieldly/service/messaging"
)

// Config for the memory queue implementation.
type Config struct {
	// QueueBuffer caps buffered messages; beyond it the oldest is dropped.
	QueueBuffer int
}

// DefaultConfig returns a standard configuration for the memory queue.
func DefaultConfig() Config {
	return Config{QueueBuffer: 256}
}

// Message implements messaging.Message for the in-memory queue.
type Message[T any] struct {
	id        string
	payload   T
	createdAt time.Time
	mu        sync.Mutex
	acked     bool
}

// T returns the message payload.
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message; acknowledging twice is an error.
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.acked {
		return fmt.Errorf("message %v already acknowledged", m.id)
	}
	m.acked = true
	return nil
}

// Queue implements an in-memory messaging.Queue.
type Queue[T any] struct {
	mu       sync.Mutex
	messages chan *Message[T]
	dropped  int
}

// NewQueue creates a new in-memory queue.
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{messages: make(chan *Message[T], config.QueueBuffer)}
}

// Publish adds a new item to the queue, evicting the oldest buffered
// message when the buffer is full.
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := &Message[T]{
		id:        uuid.New().String(),
		payload:   *t,
		createdAt: time.Now(),
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		select {
		case q.messages <- msg:
			return nil
		default:
			select {
			case <-q.messages:
				q.dropped++
			default:
			}
		}
	}
}

// Consume retrieves a single item from the queue.
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size returns the current number of buffered messages.
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// Dropped returns how many messages were evicted due to a full buffer.
func (q *Queue[T]) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
