// Package usage records finished exchanges to the usage ledger off the
// request path.
package usage

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"zai-proxy/internal/model"
	"zai-proxy/internal/repository"
)

var (
	defaultNumWorkers uint = 2
	defaultQueueSize  uint = 256
	writeTimeout           = 5 * time.Second
)

// Recorder accepts finished exchanges. Record never blocks.
type Recorder interface {
	Record(rec model.UsageRecord) bool
}

// Nop discards every record. It is used when the ledger is disabled.
type Nop struct{}

func (Nop) Record(model.UsageRecord) bool { return false }

type Config struct {
	Repository repository.UsageRepository
	NumWorkers uint
	QueueSize  uint
}

// Pool writes records through a fixed set of workers.
type Pool struct {
	repo  repository.UsageRepository
	queue chan model.UsageRecord
	wg    sync.WaitGroup
	once  sync.Once

	// mu guards closed; Record holds the read lock while sending.
	mu     sync.RWMutex
	closed bool
}

func NewPool(c Config) (*Pool, error) {
	if c.Repository == nil {
		return nil, fmt.Errorf("usage pool requires a repository")
	}
	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}
	if c.QueueSize == 0 {
		c.QueueSize = defaultQueueSize
	}
	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	p := &Pool{
		repo:  c.Repository,
		queue: make(chan model.UsageRecord, c.QueueSize),
	}
	p.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go p.worker(i)
	}
	return p, nil
}

// Record enqueues rec. It returns false and drops the record when the
// queue is full or the pool has been closed.
func (p *Pool) Record(rec model.UsageRecord) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		slog.Warn("Usage pool closed, record dropped", "id", rec.ID, "model", rec.Model)
		return false
	}

	select {
	case p.queue <- rec:
		slog.Debug("Usage record queued", "id", rec.ID, "model", rec.Model, "outcome", rec.Outcome)
		return true
	default:
		slog.Warn("Usage queue full, record dropped", "id", rec.ID, "model", rec.Model)
		return false
	}
}

// Close stops accepting records and waits for queued ones to be written.
// Call it after the HTTP server has shut down.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()

		p.wg.Wait()
	})
}

func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	slog.Debug("Usage worker started", "worker_id", id)

	for rec := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := p.repo.InsertRecord(ctx, &rec); err != nil {
			slog.Error("Failed to store usage record", "id", rec.ID, "error", err)
		}
		cancel()
	}

	slog.Debug("Usage worker stopped", "worker_id", id)
}
