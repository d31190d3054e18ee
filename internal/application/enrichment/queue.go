// Package enrichment runs best-effort follow-up work for newly imported
// appraisals. Nothing here reports back to the importer: a failed or dropped
// enrichment is logged and forgotten.
package enrichment

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultWorkers   = 2
	DefaultQueueSize = 1000
	DefaultTimeout   = 10 * time.Second
)

type Geocoder interface {
	GeocodeAppraisal(ctx context.Context, appraisalID string) error
}

type Config struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

type Queue struct {
	geocoder Geocoder
	cfg      Config
	log      logrus.FieldLogger

	mu      sync.RWMutex
	jobs    chan string
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewQueue(geocoder Geocoder, cfg Config, log logrus.FieldLogger) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Queue{
		geocoder: geocoder,
		cfg:      cfg,
		log:      log.WithField("component", "enrichment"),
		jobs:     make(chan string, cfg.QueueSize),
	}
}

// Start launches the workers. They run until Stop is called or ctx ends.
func (q *Queue) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	q.mu.Lock()
	q.cancel = cancel
	q.mu.Unlock()

	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.run(ctx, i)
	}
}

// Enqueue never blocks. It returns false when the queue is full or stopped.
func (q *Queue) Enqueue(appraisalID string) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.stopped {
		return false
	}
	select {
	case q.jobs <- appraisalID:
		return true
	default:
		return false
	}
}

// Stop refuses new work, lets the workers drain what is queued and waits for them.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()

	q.mu.Lock()
	if q.cancel != nil {
		q.cancel()
	}
	q.mu.Unlock()
}

func (q *Queue) run(ctx context.Context, worker int) {
	defer q.wg.Done()
	log := q.log.WithField("worker", worker)

	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-q.jobs:
			if !ok {
				return
			}
			q.process(ctx, id, log)
		}
	}
}

func (q *Queue) process(ctx context.Context, appraisalID string, log logrus.FieldLogger) {
	callCtx, cancel := context.WithTimeout(ctx, q.cfg.Timeout)
	defer cancel()

	if err := q.geocoder.GeocodeAppraisal(callCtx, appraisalID); err != nil {
		log.WithField("appraisal_id", appraisalID).WithError(err).Warn("appraisal enrichment failed")
		return
	}
	log.WithField("appraisal_id", appraisalID).Debug("appraisal enriched")
}
