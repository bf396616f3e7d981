// SPDX-License-Identifier: EPL-2.0

package lifecycle

import (
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/Ezardy/MyriAudioFiltered/config"
)

// Clock is the timeline snapshot taken at the start of a tick.
type Clock struct {
	// AudioFrame is the first frame of the buffer produced this tick.
	AudioFrame int
	// BufferID is the id of the buffer produced this tick.
	BufferID int
	// LastPlayedAudioFrame is the newest frame the render thread finished;
	// -1 before anything played.
	LastPlayedAudioFrame int
	// LastConsumedBufferID is the newest buffer known to be consumed.
	LastConsumedBufferID int
	// Starved is set when the render thread outran production.
	Starved bool
}

// Stats is a point-in-time copy of the lifecycle counters.
type Stats struct {
	Ticks     int64
	Published int64
	Dropped   int64
	Retired   int64
	Starved   int64
	InFlight  int
}

type historyEntry struct {
	bufferID int
	end      int
}

type Option func(*Lifecycle)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lifecycle) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithProgress shares an existing Progress with the render side.
func WithProgress(p *Progress) Option {
	return func(l *Lifecycle) {
		if p != nil {
			l.progress = p
		}
	}
}

// Lifecycle is driven by the single goroutine that runs ticks.
type Lifecycle struct {
	logger   *slog.Logger
	progress *Progress
	warn     *rate.Limiter

	nextBufferID   int
	lastAudioFrame int
	producedEnd    int
	lastConsumed   int
	ticked         bool
	clock          Clock

	history  []historyEntry
	inFlight []*Buffer
	free     []*Buffer

	ticks, published, dropped, retired, starved, inFlightN atomic.Int64
}

func New(opts ...Option) *Lifecycle {
	l := &Lifecycle{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		progress: &Progress{},
		warn:     rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Progress is the value the render thread reports into.
func (l *Lifecycle) Progress() *Progress { return l.progress }

// Clock returns the snapshot taken by the last BeginTick.
func (l *Lifecycle) Clock() Clock { return l.clock }

// BeginTick reads the render progress once and advances the counters.
func (l *Lifecycle) BeginTick(settings config.Settings) Clock {
	settings = settings.Sanitize()
	reportedID, consumed := l.progress.Load()

	lastConsumed := max(l.lastConsumed, reportedID)
	played := 0
	for played < len(l.history) && l.history[played].end <= consumed {
		lastConsumed = max(lastConsumed, l.history[played].bufferID)
		played++
	}
	l.history = l.history[:copy(l.history, l.history[played:])]
	l.lastConsumed = lastConsumed

	starved := l.ticked && consumed >= l.producedEnd
	frame := consumed
	if l.ticked {
		frame = l.lastAudioFrame + settings.AudioFramesPerUpdate
		if frame < consumed {
			starved = true
			frame = consumed
		}
		frame = min(frame, consumed+settings.SafetyAudioFrames)
	}

	l.clock = Clock{
		AudioFrame:           frame,
		BufferID:             l.nextBufferID,
		LastPlayedAudioFrame: consumed - 1,
		LastConsumedBufferID: lastConsumed,
		Starved:              starved,
	}
	l.nextBufferID++
	l.lastAudioFrame = frame
	l.ticked = true
	l.ticks.Add(1)

	if starved {
		l.starved.Add(1)
		if settings.LogWarningIfBuffersAreStarved && l.warn.Allow() {
			l.logger.Warn("audio buffers starved",
				"audioFrame", frame,
				"consumedFrames", consumed,
				"bufferID", l.clock.BufferID,
			)
		}
	}
	return l.clock
}

// Acquire returns a zeroed buffer for the current tick, reusing retired
// storage when it is large enough.
func (l *Lifecycle) Acquire(settings config.Settings, samplesPerFrame int, layouts []Layout) *Buffer {
	frames := settings.FramesPerBuffer()
	samplesPerChannel := frames * samplesPerFrame

	var b *Buffer
	if n := len(l.free); n > 0 {
		b = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		b = &Buffer{}
	}

	var total int
	b.Regions, total = layoutRegions(b.Regions, layouts, samplesPerChannel)
	if cap(b.Samples) < total {
		b.Samples = make([]float32, total)
	} else {
		b.Samples = b.Samples[:total]
		clear(b.Samples)
	}

	b.ID = l.clock.BufferID
	b.StartFrame = l.clock.AudioFrame
	b.Frames = frames
	b.SamplesPerFrame = samplesPerFrame
	return b
}

// Publish hands b to the render side and records its frame window.
func (l *Lifecycle) Publish(b *Buffer, h *Handoff, settings config.Settings) {
	settings = settings.Sanitize()
	l.inFlight = append(l.inFlight, b)
	l.history = append(l.history, historyEntry{
		bufferID: b.ID,
		end:      b.StartFrame + settings.AudioFramesPerUpdate,
	})
	l.producedEnd = b.StartFrame + b.Frames
	l.published.Add(1)
	l.inFlightN.Store(int64(len(l.inFlight)))

	if h.Publish(b) {
		l.dropped.Add(1)
		l.logger.Debug("render thread skipped a buffer", "bufferID", b.ID)
	}
}

// Retire frees every in-flight buffer older than the last consumed one, as
// read at the start of the tick, and returns their ids.
func (l *Lifecycle) Retire() []int {
	var ids []int
	var bytes uint64
	kept := l.inFlight[:0]
	for _, b := range l.inFlight {
		if b.ID < l.clock.LastConsumedBufferID {
			ids = append(ids, b.ID)
			bytes += b.Bytes()
			l.free = append(l.free, b)
			continue
		}
		kept = append(kept, b)
	}
	clear(l.inFlight[len(kept):])
	l.inFlight = kept
	l.inFlightN.Store(int64(len(kept)))

	if len(ids) > 0 {
		l.retired.Add(int64(len(ids)))
		l.logger.Debug("retired buffers",
			"count", len(ids),
			"size", humanize.Bytes(bytes),
			"inFlight", len(l.inFlight),
		)
	}
	return ids
}

// InFlight lists the ids of buffers not yet retired.
func (l *Lifecycle) InFlight() []int {
	ids := make([]int, len(l.inFlight))
	for i, b := range l.inFlight {
		ids[i] = b.ID
	}
	return ids
}

// Shutdown drops every buffer. The render side must have stopped reading.
func (l *Lifecycle) Shutdown() {
	clear(l.inFlight)
	l.inFlight = nil
	clear(l.free)
	l.free = nil
	l.history = nil
	l.inFlightN.Store(0)
}

// Stats may be called from any goroutine.
func (l *Lifecycle) Stats() Stats {
	return Stats{
		Ticks:     l.ticks.Load(),
		Published: l.published.Load(),
		Dropped:   l.dropped.Load(),
		Retired:   l.retired.Load(),
		Starved:   l.starved.Load(),
		InFlight:  int(l.inFlightN.Load()),
	}
}
