package pipeline

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"monpro-diagnostic/internal/common/logger"
	"monpro-diagnostic/internal/common/metrics"
	"monpro-diagnostic/internal/common/observability"
	"monpro-diagnostic/internal/models"
)

var (
	ErrQueueFull = errors.New("QUEUE_FULL")
	ErrStopped   = errors.New("PIPELINE_STOPPED")
)

// CardGenerator turns an accepted submission into a battlecard.
type CardGenerator interface {
	Generate(ctx context.Context, sub *models.Submission) *models.Battlecard
}

// Deliverer fans a battlecard out to the configured sinks.
type Deliverer interface {
	Deliver(ctx context.Context, card *models.Battlecard)
}

type Config struct {
	Workers    int
	QueueSize  int
	DrainGrace time.Duration
}

// Pipeline is the background half of the submission endpoint: a
// bounded queue drained by a worker pool. The HTTP handler enqueues
// and returns; generation and delivery never touch the request path.
type Pipeline struct {
	config    Config
	generator CardGenerator
	deliverer Deliverer
	obs       *observability.Observability
	logger    logger.Logger

	queue   chan *models.Submission
	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
}

func New(cfg Config, gen CardGenerator, del Deliverer, obs *observability.Observability, log logger.Logger) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.DrainGrace <= 0 {
		cfg.DrainGrace = 30 * time.Second
	}
	return &Pipeline{
		config:    cfg,
		generator: gen,
		deliverer: del,
		obs:       obs,
		logger:    log.WithFields(map[string]interface{}{"component": "pipeline"}),
		queue:     make(chan *models.Submission, cfg.QueueSize),
	}
}

// Start launches the worker pool.
func (p *Pipeline) Start() {
	for i := 0; i < p.config.Workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.logger.Info("pipeline started", map[string]interface{}{
		"workers":   p.config.Workers,
		"queueSize": p.config.QueueSize,
	})
}

// Enqueue hands a submission to the background workers. It never
// blocks the caller: a full queue is reported as an error and the
// submission is dropped.
func (p *Pipeline) Enqueue(sub *models.Submission) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrStopped
	}

	select {
	case p.queue <- sub:
		p.mu.Unlock()
		metrics.PipelineQueueDepth.Set(float64(len(p.queue)))
		return nil
	default:
		p.mu.Unlock()
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for in-flight work, up to the
// configured drain grace.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("pipeline drained", nil)
	case <-time.After(p.config.DrainGrace):
		p.logger.Warn("pipeline drain grace exceeded, abandoning in-flight work", map[string]interface{}{
			"grace": p.config.DrainGrace.String(),
		})
	}
}

func (p *Pipeline) worker(id int) {
	defer p.wg.Done()
	for sub := range p.queue {
		metrics.PipelineQueueDepth.Set(float64(len(p.queue)))
		p.process(id, sub)
	}
}

func (p *Pipeline) process(workerID int, sub *models.Submission) {
	start := time.Now()
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker panic recovered", map[string]interface{}{
				"worker": workerID,
				"panic":  r,
				"stack":  string(debug.Stack()),
			})
			if p.obs != nil {
				p.obs.RecordJobProcessed(ctx, "panic")
			}
		}
	}()

	card := p.generator.Generate(ctx, sub)
	p.deliverer.Deliver(ctx, card)

	if p.obs != nil {
		p.obs.RecordJobProcessed(ctx, "completed")
		p.obs.RecordJobDuration(ctx, time.Since(start))
	}
	p.logger.Info("submission processed", map[string]interface{}{
		"worker": workerID,
		"leadId": card.LeadID,
		"took":   time.Since(start).String(),
	})
}
