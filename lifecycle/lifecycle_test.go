// SPDX-License-Identifier: EPL-2.0

package lifecycle

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/Ezardy/MyriAudioFiltered/config"
)

// fakeRender plays frames the way an audio callback would: take the newest
// buffer, switch once its start frame is reached, report progress.
type fakeRender struct {
	h       *Handoff
	p       *Progress
	cur     *Buffer
	pending *Buffer
	frame   int
}

func (r *fakeRender) play(frames int) {
	for range frames {
		if b := r.h.Take(); b != nil {
			r.pending = b
		}
		if r.pending != nil && r.pending.StartFrame <= r.frame {
			r.cur, r.pending = r.pending, nil
		}
		r.frame++
		id := 0
		if r.cur != nil {
			id = r.cur.ID
		}
		r.p.Report(id, r.frame)
	}
}

var stereo = []Layout{{Channels: 2, LeftChannels: 1}}

func tick(l *Lifecycle, h *Handoff, s config.Settings) (Clock, *Buffer, []int) {
	clock := l.BeginTick(s)
	b := l.Acquire(s, 4, stereo)
	l.Publish(b, h, s)
	return clock, b, l.Retire()
}

func TestLifecycle_RetiresAtTickN(t *testing.T) {
	t.Parallel()

	s := config.Default()
	l := New()
	h := &Handoff{}
	r := &fakeRender{h: h, p: l.Progress()}

	for n := range 10 {
		clock, b, retired := tick(l, h, s)
		if clock.BufferID != n || b.ID != n || b.StartFrame != n {
			t.Fatalf("tick %d: clock %+v buffer (%d, start %d)", n, clock, b.ID, b.StartFrame)
		}

		var want []int
		if n >= 2 {
			want = []int{n - 2}
		}
		if !slices.Equal(retired, want) {
			t.Errorf("tick %d: retired %v, want %v", n, retired, want)
		}
		if inFlight := l.InFlight(); len(inFlight) > 2 {
			t.Errorf("tick %d: in flight %v", n, inFlight)
		}
		r.play(1)
	}

	st := l.Stats()
	if st.Ticks != 10 || st.Published != 10 || st.Retired != 8 || st.Starved != 0 || st.InFlight != 2 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestLifecycle_RetireKeepsLastConsumed(t *testing.T) {
	t.Parallel()

	s := config.Default()
	l := New()
	h := &Handoff{}

	tick(l, h, s)
	tick(l, h, s)
	tick(l, h, s)

	// Render reads buffer 1.
	l.Progress().Report(1, 1)
	clock, _, retired := tick(l, h, s)
	if clock.LastConsumedBufferID != 1 {
		t.Fatalf("LastConsumedBufferID = %d, want 1", clock.LastConsumedBufferID)
	}
	if !slices.Equal(retired, []int{0}) {
		t.Errorf("retired %v, want [0]", retired)
	}
	if got := l.InFlight(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("in flight %v, want [1 2 3]", got)
	}
}

func TestLifecycle_HistoryMarksPlayedWindows(t *testing.T) {
	t.Parallel()

	s := config.Default()
	l := New()
	h := &Handoff{}
	tick(l, h, s) // frames [0,1)
	tick(l, h, s) // [1,2)
	tick(l, h, s) // [2,3)

	// The render thread never picked up a newer buffer but played three frames.
	l.Progress().Report(0, 3)
	clock, _, retired := tick(l, h, s)
	if clock.LastConsumedBufferID != 2 {
		t.Errorf("LastConsumedBufferID = %d, want 2", clock.LastConsumedBufferID)
	}
	if !slices.Equal(retired, []int{0, 1}) {
		t.Errorf("retired %v, want [0 1]", retired)
	}

	// Stays monotonic when the report does not move.
	clock, _, _ = tick(l, h, s)
	if clock.LastConsumedBufferID != 2 {
		t.Errorf("LastConsumedBufferID regressed to %d", clock.LastConsumedBufferID)
	}
}

func TestLifecycle_AudioFrameClamp(t *testing.T) {
	t.Parallel()

	s := config.Settings{SafetyAudioFrames: 2, AudioFramesPerUpdate: 1}
	l := New()
	h := &Handoff{}

	// A stalled render thread: production runs at most safety frames ahead.
	var frames []int
	for range 5 {
		clock, _, _ := tick(l, h, s)
		frames = append(frames, clock.AudioFrame)
		if clock.Starved {
			t.Errorf("stalled render flagged as starved at frame %d", clock.AudioFrame)
		}
	}
	if want := []int{0, 1, 2, 2, 2}; !slices.Equal(frames, want) {
		t.Errorf("audio frames %v, want %v", frames, want)
	}
}

func TestLifecycle_Starvation(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	s := config.Default()
	s.LogWarningIfBuffersAreStarved = true
	l := New(WithLogger(logger))
	h := &Handoff{}
	r := &fakeRender{h: h, p: l.Progress()}

	tick(l, h, s) // covers [0,3)
	r.play(5)

	clock, _, _ := tick(l, h, s)
	if !clock.Starved {
		t.Fatal("render thread past everything produced was not flagged")
	}
	if clock.AudioFrame != 5 || clock.LastPlayedAudioFrame != 4 {
		t.Errorf("clock = %+v, want audio frame 5 after last played 4", clock)
	}

	r.play(10)
	if clock, _, _ = tick(l, h, s); !clock.Starved {
		t.Fatal("second starvation not flagged")
	}

	if st := l.Stats(); st.Starved != 2 {
		t.Errorf("Stats().Starved = %d, want 2", st.Starved)
	}
	if n := strings.Count(logs.String(), "audio buffers starved"); n != 1 {
		t.Errorf("logged %d starvation warnings, want 1 (rate limited)", n)
	}
}

func TestLifecycle_StarvationSilentByDefault(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	l := New(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	h := &Handoff{}
	s := config.Default()

	tick(l, h, s)
	l.Progress().Report(0, 10)
	if clock, _, _ := tick(l, h, s); !clock.Starved {
		t.Fatal("not flagged as starved")
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected log output: %s", logs.String())
	}
}

func TestLifecycle_AcquireReusesZeroedStorage(t *testing.T) {
	t.Parallel()

	s := config.Default()
	l := New()
	h := &Handoff{}

	_, first, _ := tick(l, h, s)
	_, second, _ := tick(l, h, s)
	for _, b := range []*Buffer{first, second} {
		for i := range b.Samples {
			b.Samples[i] = 1
		}
	}
	l.Progress().Report(2, 0)
	if _, _, retired := tick(l, h, s); !slices.Equal(retired, []int{0, 1}) {
		t.Fatalf("retired %v, want [0 1]", retired)
	}

	l.BeginTick(s)
	b := l.Acquire(s, 4, stereo)
	if b != first && b != second {
		t.Error("Acquire() did not reuse a retired buffer")
	}
	for i, v := range b.Samples {
		if v != 0 {
			t.Fatalf("reused sample %d = %v, want 0", i, v)
		}
	}
	if b.ID != 3 {
		t.Errorf("ID = %d, want 3", b.ID)
	}
}

func TestBuffer_Regions(t *testing.T) {
	t.Parallel()

	l := New()
	s := config.Default()
	l.BeginTick(s)
	b := l.Acquire(s, 4, []Layout{{Channels: 2, LeftChannels: 1}, {Channels: 1}})

	if len(b.Samples) != 36 {
		t.Fatalf("len(Samples) = %d, want 36", len(b.Samples))
	}
	want := []Region{
		{Offset: 0, SamplesPerChannel: 12, Channels: 2, LeftChannels: 1},
		{Offset: 24, SamplesPerChannel: 12, Channels: 1},
	}
	if !slices.Equal(b.Regions, want) {
		t.Errorf("Regions = %+v, want %+v", b.Regions, want)
	}

	b.Channel(1, 0)[5] = 7
	if b.Samples[29] != 7 {
		t.Error("Channel(1, 0) does not alias region 1")
	}
	if f := b.Frame(1, 0, 1); len(f) != 4 || f[1] != 7 {
		t.Errorf("Frame(1, 0, 1) = %v", f)
	}
	if b.Frame(0, 0, 3) != nil || b.Frame(0, 0, -1) != nil {
		t.Error("Frame outside the buffer is not nil")
	}
}
