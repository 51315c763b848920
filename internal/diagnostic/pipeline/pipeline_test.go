package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monpro-diagnostic/internal/common/logger"
	"monpro-diagnostic/internal/models"
)

type stubGenerator struct {
	delay     time.Duration
	panicNext atomic.Bool
	calls     int32
}

func (g *stubGenerator) Generate(_ context.Context, sub *models.Submission) *models.Battlecard {
	atomic.AddInt32(&g.calls, 1)
	if g.panicNext.Load() {
		panic("generator blew up")
	}
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	return &models.Battlecard{
		LeadID: "LEAD_test_" + sub.Email,
		Region: sub.Region,
		Path:   sub.Path,
		Email:  sub.Email,
	}
}

type stubDeliverer struct {
	mu    sync.Mutex
	cards []*models.Battlecard
}

func (d *stubDeliverer) Deliver(_ context.Context, card *models.Battlecard) {
	d.mu.Lock()
	d.cards = append(d.cards, card)
	d.mu.Unlock()
}

func (d *stubDeliverer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cards)
}

func submission(email string) *models.Submission {
	return &models.Submission{
		Region: models.RegionEurope,
		Path:   models.PathScaler,
		Email:  email,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestPipeline_ProcessesSubmissions(t *testing.T) {
	gen := &stubGenerator{}
	del := &stubDeliverer{}
	p := New(Config{Workers: 2, QueueSize: 8}, gen, del, nil, logger.NewTestLogger(t))
	p.Start()
	defer p.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, p.Enqueue(submission("a@example.com")))
	}

	waitFor(t, func() bool { return del.count() == 5 })
	assert.EqualValues(t, 5, atomic.LoadInt32(&gen.calls))
}

func TestPipeline_QueueFull(t *testing.T) {
	gen := &stubGenerator{delay: 200 * time.Millisecond}
	del := &stubDeliverer{}
	p := New(Config{Workers: 1, QueueSize: 1}, gen, del, nil, logger.NewTestLogger(t))
	p.Start()
	defer p.Stop()

	// First fills the worker, second fills the queue; there is no
	// room for a third before the worker finishes.
	require.NoError(t, p.Enqueue(submission("1@example.com")))
	waitFor(t, func() bool { return atomic.LoadInt32(&gen.calls) == 1 })
	require.NoError(t, p.Enqueue(submission("2@example.com")))

	err := p.Enqueue(submission("3@example.com"))
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestPipeline_StopDrainsQueue(t *testing.T) {
	gen := &stubGenerator{delay: 20 * time.Millisecond}
	del := &stubDeliverer{}
	p := New(Config{Workers: 2, QueueSize: 16, DrainGrace: 5 * time.Second}, gen, del, nil, logger.NewTestLogger(t))
	p.Start()

	for i := 0; i < 10; i++ {
		require.NoError(t, p.Enqueue(submission("a@example.com")))
	}
	p.Stop()

	assert.Equal(t, 10, del.count())
}

func TestPipeline_EnqueueAfterStop(t *testing.T) {
	p := New(Config{Workers: 1, QueueSize: 4}, &stubGenerator{}, &stubDeliverer{}, nil, logger.NewTestLogger(t))
	p.Start()
	p.Stop()

	err := p.Enqueue(submission("late@example.com"))
	assert.ErrorIs(t, err, ErrStopped)
}

func TestPipeline_PanicDoesNotKillWorker(t *testing.T) {
	gen := &stubGenerator{}
	gen.panicNext.Store(true)
	del := &stubDeliverer{}
	p := New(Config{Workers: 1, QueueSize: 8}, gen, del, nil, logger.NewTestLogger(t))
	p.Start()
	defer p.Stop()

	require.NoError(t, p.Enqueue(submission("boom@example.com")))
	waitFor(t, func() bool { return atomic.LoadInt32(&gen.calls) == 1 })

	// The same worker must still drain later submissions.
	gen.panicNext.Store(false)
	require.NoError(t, p.Enqueue(submission("ok@example.com")))
	waitFor(t, func() bool { return del.count() == 1 })
}

func TestPipeline_StopIsIdempotent(t *testing.T) {
	p := New(Config{Workers: 1, QueueSize: 4}, &stubGenerator{}, &stubDeliverer{}, nil, logger.NewTestLogger(t))
	p.Start()
	p.Stop()
	p.Stop() // must not panic on double close
}
