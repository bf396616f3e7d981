// SPDX-License-Identifier: EPL-2.0

package myri

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Ezardy/MyriAudioFiltered/batch"
	"github.com/Ezardy/MyriAudioFiltered/config"
	"github.com/Ezardy/MyriAudioFiltered/cull"
	"github.com/Ezardy/MyriAudioFiltered/internal/parallel"
	"github.com/Ezardy/MyriAudioFiltered/lifecycle"
	"github.com/Ezardy/MyriAudioFiltered/sampler"
	"github.com/Ezardy/MyriAudioFiltered/scene"
	"github.com/Ezardy/MyriAudioFiltered/snapshot"
)

// Scheduler runs fn over [0, n) in batches of at most batchSize and returns
// once all of them are done. Batches may run concurrently.
type Scheduler interface {
	For(n, batchSize int, fn func(batch, start, end int))
}

type Option func(*Pipeline)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithScheduler replaces the default worker pool.
func WithScheduler(s Scheduler) Option {
	return func(p *Pipeline) {
		if s != nil {
			p.sched = s
		}
	}
}

// WithWorkers bounds the default worker pool. n <= 0 uses GOMAXPROCS and
// n == 1 runs every stage on the ticking goroutine.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n == 1 {
			p.sched = parallel.Serial{}
			return
		}
		p.sched = parallel.NewPool(n)
	}
}

// TickResult describes one tick.
type TickResult struct {
	// Skipped is set when there was no listener or no emitter with a
	// source. No buffer was produced and the clock did not advance.
	Skipped bool
	Clock   lifecycle.Clock
	// Buffer is the published buffer. It belongs to the render side and is
	// recycled once retired.
	Buffer *lifecycle.Buffer
	// Pairs is the number of audible listener and emitter pairs.
	Pairs int
	// Entries is the number of pairs left after batching.
	Entries int
	// Finished holds the indices of one-shot emitters that have played out.
	Finished []int
	// Retired holds the ids of buffers recycled this tick.
	Retired []int
}

// Pipeline is ticked from a single goroutine at a time.
type Pipeline struct {
	format  config.Format
	logger  *slog.Logger
	sched   Scheduler
	lc      *lifecycle.Lifecycle
	handoff *lifecycle.Handoff

	mtx    sync.Mutex
	closed bool
}

func New(format config.Format, opts ...Option) (*Pipeline, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		format:  format,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		sched:   parallel.NewPool(0),
		handoff: &lifecycle.Handoff{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.lc = lifecycle.New(lifecycle.WithLogger(p.logger))
	return p, nil
}

func (p *Pipeline) Format() config.Format { return p.format }

// Handoff is where published buffers are taken by the render thread.
func (p *Pipeline) Handoff() *lifecycle.Handoff { return p.handoff }

// Progress is where the render thread reports how far it has played.
func (p *Pipeline) Progress() *lifecycle.Progress { return p.lc.Progress() }

// Stats may be called from any goroutine.
func (p *Pipeline) Stats() lifecycle.Stats { return p.lc.Stats() }

// Tick mixes one frame. ctx is only checked before the tick starts: once
// running, a tick always publishes its buffer.
func (p *Pipeline) Tick(ctx context.Context, settings config.Settings, listeners []*scene.Listener, emitters []*scene.Emitter) (*TickResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tick not started: %w", err)
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if !snapshot.Present(listeners, emitters) {
		return &TickResult{Skipped: true, Clock: p.lc.Clock()}, nil
	}

	settings = settings.Sanitize()
	clock := p.lc.BeginTick(settings)
	frame := snapshot.Capture(clock, p.format, listeners, emitters)

	streams := cull.Run(frame, p.sched)
	b := batch.Merge(frame, streams)

	buf := p.lc.Acquire(settings, p.format.SamplesPerFrame, frame.Layouts())
	sampler.Run(frame, b, buf, p.sched)
	frame.Release()

	p.lc.Publish(buf, p.handoff, settings)
	retired := p.lc.Retire()

	pairs := 0
	for _, s := range streams {
		pairs += len(s)
	}
	p.logger.Debug("tick",
		"bufferID", clock.BufferID,
		"audioFrame", clock.AudioFrame,
		"pairs", pairs,
		"entries", len(b.Entries),
	)

	return &TickResult{
		Clock:    clock,
		Buffer:   buf,
		Pairs:    pairs,
		Entries:  len(b.Entries),
		Finished: frame.Finished,
		Retired:  retired,
	}, nil
}

// Close drops every buffer. The render thread must have stopped reading
// them.
func (p *Pipeline) Close() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.lc.Shutdown()
	return nil
}
