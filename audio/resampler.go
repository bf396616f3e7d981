// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/Ezardy/MyriAudioFiltered/utils"
)

// Resampler streams from src at another sample rate using Catmull-Rom
// interpolation. Works on interleaved samples and preserves channel count.
//
// Output frame k sits at source position k*srcRate/dstRate, computed in
// integers so the output length is exactly ceil(frames*dstRate/srcRate).
type Resampler struct {
	src      Source
	srcRate  int
	dstRate  int
	channels int

	// win holds source frames base-1, base, base+1, base+2.
	win    [4][]float32
	base   int
	padded int // trailing window frames duplicated past end of stream
	out    int // output frames produced

	in      []float32
	inPos   int
	inLen   int
	srcDone bool
	primed  bool
	done    bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)
	if dstRate <= 0 {
		dstRate = src.SampleRate()
	}
	r := &Resampler{
		src:      src,
		srcRate:  src.SampleRate(),
		dstRate:  dstRate,
		channels: channels,
		in:       make([]float32, 1024*channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// pull copies the next source frame into frame. It reports false at end of
// stream.
func (r *Resampler) pull(frame []float32) (bool, error) {
	for r.inPos >= r.inLen {
		if r.srcDone {
			return false, nil
		}
		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		if errors.Is(err, io.EOF) {
			r.srcDone = true
		} else if err != nil {
			return false, fmt.Errorf("reading source: %w", err)
		}
	}
	copy(frame, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels
	return true, nil
}

func (r *Resampler) prime() error {
	r.primed = true
	ok, err := r.pull(r.win[1])
	if err != nil {
		return err
	}
	if !ok {
		r.done = true
		return nil
	}
	copy(r.win[0], r.win[1])
	for i := 2; i < 4; i++ {
		if ok, err = r.pull(r.win[i]); err != nil {
			return err
		}
		if !ok {
			copy(r.win[i], r.win[i-1])
			r.padded++
		}
	}
	return nil
}

func (r *Resampler) advance() error {
	r.win[0], r.win[1], r.win[2], r.win[3] = r.win[1], r.win[2], r.win[3], r.win[0]
	r.base++
	ok, err := r.pull(r.win[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.win[3], r.win[2])
		r.padded++
	}
	return nil
}

// ReadSamples produces samples at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	n := 0
	for !r.done && n < len(dst) {
		num := r.out * r.srcRate
		idx := num / r.dstRate
		for r.base < idx && r.padded < 3 {
			if err := r.advance(); err != nil {
				return n, err
			}
		}
		// win[1] is past the last real frame.
		if r.padded >= 3 || r.base < idx {
			r.done = true
			break
		}

		t := float32(num%r.dstRate) / float32(r.dstRate)
		for c := range r.channels {
			dst[n+c] = utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], t)
		}
		n += r.channels
		r.out++
	}

	if r.done {
		return n, io.EOF
	}
	return n, nil
}
