// SPDX-License-Identifier: EPL-2.0

package source

import (
	"errors"
	"slices"
	"testing"

	"github.com/Ezardy/MyriAudioFiltered/config"
)

func newIndexRing(t *testing.T, length int, stereo bool) *Ring {
	t.Helper()

	r, err := NewRing(length, stereo)
	if err != nil {
		t.Fatal(err)
	}
	r.Produce(func(data []float32) { copy(data, indexSamples(len(data))) })
	return r
}

func TestNewRing_Empty(t *testing.T) {
	t.Parallel()

	if _, err := NewRing(0, false); !errors.Is(err, ErrEmptyRing) {
		t.Errorf("NewRing(0) error = %v, want ErrEmptyRing", err)
	}
}

func TestRingView_Wraparound(t *testing.T) {
	t.Parallel()

	const length = 10
	r := newIndexRing(t, length, false)
	view := r.Acquire()
	defer view.Release()

	dst := make([]float32, 5)
	view.Accumulate(dst, length-2, false, 1)
	want := []float32{length - 2, length - 1, 0, 1, 2}
	if !slices.Equal(dst, want) {
		t.Errorf("window at L-2 = %v, want %v", dst, want)
	}

	dst = make([]float32, 3)
	view.Accumulate(dst, -1, false, 1)
	if want := []float32{9, 0, 1}; !slices.Equal(dst, want) {
		t.Errorf("window at -1 = %v, want %v", dst, want)
	}
}

func TestRingView_Stereo(t *testing.T) {
	t.Parallel()

	r := newIndexRing(t, 4, true)
	view := r.Acquire()
	defer view.Release()

	right := make([]float32, 3)
	view.Accumulate(right, 3, true, 1)
	if want := []float32{7, 1, 3}; !slices.Equal(right, want) {
		t.Errorf("right = %v, want %v", right, want)
	}
}

func TestRing_PinnedSlabIsNotOverwritten(t *testing.T) {
	t.Parallel()

	r, _ := NewRing(4, false)
	r.Produce(func(d []float32) { copy(d, []float32{1, 1, 1, 1}) })

	view := r.Acquire()
	r.Produce(func(d []float32) { d[0] = 9 })
	r.Produce(func(d []float32) { d[1] = 9 })

	got := make([]float32, 4)
	view.Accumulate(got, 0, false, 1)
	if want := []float32{1, 1, 1, 1}; !slices.Equal(got, want) {
		t.Errorf("pinned view = %v, want %v", got, want)
	}
	view.Release()
	view.Release()

	latest := r.Acquire()
	defer latest.Release()
	got = make([]float32, 4)
	latest.Accumulate(got, 0, false, 1)
	if want := []float32{9, 9, 1, 1}; !slices.Equal(got, want) {
		t.Errorf("latest = %v, want %v", got, want)
	}
	if n := r.Slabs(); n != 3 {
		t.Errorf("Slabs() = %d, want 3", n)
	}
}

func TestRing_ReusesFreeSlabs(t *testing.T) {
	t.Parallel()

	r, _ := NewRing(8, false)
	for range 20 {
		v := r.Acquire()
		r.Produce(func(d []float32) { d[0]++ })
		v.Release()
	}
	if n := r.Slabs(); n > 2 {
		t.Errorf("Slabs() = %d, want at most 2", n)
	}
}

func TestRing_ProduceFrames(t *testing.T) {
	t.Parallel()

	const spf = 2
	r, _ := NewRing(3*spf, false)
	r.ProduceFrames(spf, 0, 3, func(frame int, dst []float32) {
		for i := range dst {
			dst[i] = float32(frame*10 + i)
		}
	})
	r.ProduceFrames(spf, 3, 1, func(frame int, dst []float32) {
		for i := range dst {
			dst[i] = float32(frame*10 + i)
		}
	})
	if got := r.Produced(); got != 4 {
		t.Errorf("Produced() = %d, want 4", got)
	}

	view := r.Acquire()
	defer view.Release()

	// Frame 3 reuses slot 0; the reader at frame 3 sees it.
	dst := make([]float32, 2*spf)
	view.Accumulate(dst, 2*spf, false, 1)
	if want := []float32{20, 21, 30, 31}; !slices.Equal(dst, want) {
		t.Errorf("frames 2..3 = %v, want %v", dst, want)
	}
}

func TestRingSamples(t *testing.T) {
	t.Parallel()

	s := config.Settings{SafetyAudioFrames: 2, AudioFramesPerUpdate: 1, LookaheadAudioFrames: 1}
	if got := RingSamples(s, 256); got != 1024 {
		t.Errorf("RingSamples() = %d, want 1024", got)
	}
	if got := RingSamples(config.Settings{SafetyAudioFrames: -4}, 256); got != 0 {
		t.Errorf("RingSamples(clamped) = %d, want 0", got)
	}
}
