package assets

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/product-catalog/pkg/lifecycle"
)

// TaskFunc is the body of a queued task. A returned error is reported
// under the operation the task was enqueued with.
type TaskFunc func(ctx context.Context) error

type task struct {
	id uuid.UUID
	op Operation
	fn TaskFunc
}

// QueueConfig sizes the background queue.
type QueueConfig struct {
	Workers     int
	QueueSize   int
	TaskTimeout time.Duration
}

// Queue runs tasks on a fixed set of workers. Tasks sharing an id are
// routed to the same worker and run in submission order.
type Queue struct {
	shards   []chan task
	timeout  time.Duration
	reporter Reporter
	logger   *slog.Logger

	mu      sync.RWMutex
	closed  bool
	started bool
	group   errgroup.Group
}

// NewQueue creates a stopped queue. Workers run once Start or Run is called.
func NewQueue(cfg QueueConfig, reporter Reporter, logger *slog.Logger) *Queue {
	workers := max(cfg.Workers, 1)

	shards := make([]chan task, workers)
	for i := range shards {
		shards[i] = make(chan task, cfg.QueueSize)
	}

	return &Queue{
		shards:   shards,
		timeout:  cfg.TaskTimeout,
		reporter: reporter,
		logger:   logger.With("system", "asset-queue"),
	}
}

// Start launches the workers and drains the queue when the coordinator
// shuts down. Closing waits for every channel in after, so producers such
// as the HTTP server finish before the queue stops accepting tasks.
func (q *Queue) Start(lc *lifecycle.Coordinator, after ...<-chan struct{}) error {
	q.logger.Info("starting asset queue", "workers", len(q.shards), "queue_size", cap(q.shards[0]))
	q.Run()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		for _, ch := range after {
			<-ch
		}
		q.logger.Info("draining asset queue")
		if err := q.Close(); err != nil {
			q.logger.Error("asset queue drain failed", "error", err)
			return
		}
		q.logger.Info("asset queue drained")
	})

	return nil
}

// Run launches the workers. Calling it more than once has no effect.
func (q *Queue) Run() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started {
		return
	}
	q.started = true

	for _, ch := range q.shards {
		q.group.Go(func() error {
			for t := range ch {
				q.execute(t)
			}
			return nil
		})
	}
}

// Enqueue submits fn for id. It blocks until the task is accepted, ctx ends
// or the queue is closed.
func (q *Queue) Enqueue(ctx context.Context, id uuid.UUID, op Operation, fn TaskFunc) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.shards[q.shard(id)] <- task{id: id, op: op, fn: fn}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryEnqueue submits fn without waiting. It returns ErrQueueFull when the
// worker for id has no free slot.
func (q *Queue) TryEnqueue(id uuid.UUID, op Operation, fn TaskFunc) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.shards[q.shard(id)] <- task{id: id, op: op, fn: fn}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting tasks and waits for pending ones to finish.
func (q *Queue) Close() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		for _, ch := range q.shards {
			close(ch)
		}
	}
	started := q.started
	q.mu.Unlock()

	if !started {
		return nil
	}
	return q.group.Wait()
}

func (q *Queue) shard(id uuid.UUID) int {
	h := fnv.New32a()
	h.Write(id[:])
	return int(h.Sum32() % uint32(len(q.shards)))
}

func (q *Queue) execute(t task) {
	ctx := context.Background()
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			q.reporter.Report(t.op, t.id, fmt.Errorf("task panic: %v", r))
		}
	}()

	if err := t.fn(ctx); err != nil {
		q.reporter.Report(t.op, t.id, err)
	}
}
