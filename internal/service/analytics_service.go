package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"matchwell/internal/model"
)

// EventSink batches analytics events and flushes them to a Redis
// stream. It is an explicit object with its own lifecycle — create,
// flush, close — so tests can run independent sinks without shared
// state. Enqueue never blocks the caller; delivery is best-effort and
// a failed flush requeues nothing louder than a log line.
type EventSink struct {
	client *redis.Client
	stream string
	log    *zap.Logger

	mu    sync.Mutex
	queue []model.Event

	flushEvery time.Duration
	maxQueue   int
	done       chan struct{}
	closeOnce  sync.Once
}

// NewEventSink creates a sink flushing to the given stream and starts
// its background flush loop.
func NewEventSink(client *redis.Client, stream string, log *zap.Logger) *EventSink {
	s := &EventSink{
		client:     client,
		stream:     stream,
		log:        log,
		flushEvery: 5 * time.Second,
		maxQueue:   256,
		done:       make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *EventSink) run() {
	ticker := time.NewTicker(s.flushEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := s.Flush(ctx); err != nil {
				s.log.Warn("analytics flush failed", zap.Error(err))
			}
			cancel()
		case <-s.done:
			return
		}
	}
}

// Enqueue queues an event, assigning ID and timestamp when missing.
// When the queue is full the oldest event is dropped.
func (s *EventSink) Enqueue(e model.Event) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.TS.IsZero() {
		e.TS = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) >= s.maxQueue {
		s.queue = s.queue[1:]
	}
	s.queue = append(s.queue, e)
}

// Pending reports the number of queued, unflushed events.
func (s *EventSink) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Flush drains the queue into the Redis stream. On error the batch is
// put back for the next attempt.
func (s *EventSink) Flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.queue
	s.queue = nil
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	for i, e := range batch {
		data, err := json.Marshal(e)
		if err != nil {
			s.log.Warn("dropping unmarshalable event", zap.String("event", e.Name), zap.Error(err))
			continue
		}
		err = s.client.XAdd(ctx, &redis.XAddArgs{
			Stream: s.stream,
			Values: map[string]interface{}{"event": string(data)},
		}).Err()
		if err != nil {
			s.mu.Lock()
			s.queue = append(batch[i:], s.queue...)
			s.mu.Unlock()
			return err
		}
	}
	return nil
}

// Close flushes what it can and stops the background loop. Safe to
// call more than once.
func (s *EventSink) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.Flush(ctx); err != nil {
			s.log.Warn("final analytics flush failed", zap.Error(err))
		}
	})
}
