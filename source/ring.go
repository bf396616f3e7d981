// SPDX-License-Identifier: EPL-2.0

package source

import (
	"sync"

	"github.com/Ezardy/MyriAudioFiltered/config"
)

// RingSamples is the per-channel length of a live ring that holds one full
// output buffer worth of frames.
func RingSamples(settings config.Settings, samplesPerFrame int) int {
	return settings.FramesPerBuffer() * max(samplesPerFrame, 0)
}

type slab struct {
	data []float32
	pins int
}

// Ring is a live source continuously rewritten by a producer. Writers never
// touch a slab that a reader has pinned: each Produce copies the published
// slab into a free one, edits it and publishes it.
type Ring struct {
	length int
	stereo bool

	mtx       sync.Mutex
	slabs     []*slab
	published *slab
	produced  int
}

func NewRing(samplesPerChannel int, stereo bool) (*Ring, error) {
	if samplesPerChannel <= 0 {
		return nil, ErrEmptyRing
	}
	channels := 1
	if stereo {
		channels = 2
	}
	first := &slab{data: make([]float32, samplesPerChannel*channels)}
	return &Ring{
		length:    samplesPerChannel,
		stereo:    stereo,
		slabs:     []*slab{first},
		published: first,
	}, nil
}

func (r *Ring) Len() int     { return r.length }
func (r *Ring) Stereo() bool { return r.stereo }

// Slabs reports how many slabs the ring has allocated.
func (r *Ring) Slabs() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return len(r.slabs)
}

// Produce lets fn rewrite a copy of the current contents and publishes the
// result. fn must not retain data.
func (r *Ring) Produce(fn func(data []float32)) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	var target *slab
	for _, s := range r.slabs {
		if s != r.published && s.pins == 0 {
			target = s
			break
		}
	}
	if target == nil {
		target = &slab{data: make([]float32, len(r.published.data))}
		r.slabs = append(r.slabs, target)
	}

	copy(target.data, r.published.data)
	fn(target.data)
	r.published = target
}

// ProduceFrames writes count frames starting at frame first, counted from
// the emitter's spawn frame. fill receives the interleaved samples of one
// frame slot; slots wrap modulo the ring length.
func (r *Ring) ProduceFrames(samplesPerFrame, first, count int, fill func(frame int, dst []float32)) {
	if samplesPerFrame <= 0 || count <= 0 {
		return
	}
	slots := r.length / samplesPerFrame
	if slots == 0 {
		return
	}
	count = min(count, slots)
	channels := 1
	if r.stereo {
		channels = 2
	}

	r.Produce(func(data []float32) {
		width := samplesPerFrame * channels
		for f := first; f < first+count; f++ {
			slot := f % slots
			if slot < 0 {
				slot += slots
			}
			fill(f, data[slot*width:(slot+1)*width])
		}
	})

	r.mtx.Lock()
	r.produced = max(r.produced, first+count)
	r.mtx.Unlock()
}

// Produced is one past the last frame written through ProduceFrames.
func (r *Ring) Produced() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.produced
}

// Acquire pins the published slab.
func (r *Ring) Acquire() Reader {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.published.pins++
	return &RingView{ring: r, slab: r.published}
}

// RingView is a read-only pinned snapshot of a ring.
type RingView struct {
	ring     *Ring
	slab     *slab
	released bool
}

func (v *RingView) Stereo() bool { return v.ring.stereo }
func (v *RingView) Len() int     { return v.ring.length }

// Accumulate reads modulo the ring length.
func (v *RingView) Accumulate(dst []float32, pos int, right bool, weight float32) {
	stride, channel := layout(v.ring.stereo, right)
	accumulateWrapped(dst, v.slab.data, v.ring.length, pos, stride, channel, weight)
}

// Release unpins the slab. Calling it twice is a no-op.
func (v *RingView) Release() {
	v.ring.mtx.Lock()
	defer v.ring.mtx.Unlock()

	if v.released {
		return
	}
	v.released = true
	v.slab.pins--
}
