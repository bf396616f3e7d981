// SPDX-License-Identifier: EPL-2.0

package source

import "fmt"

// Clip is immutable decoded sample data. Stereo clips are interleaved.
type Clip struct {
	samples    []float32
	length     int
	stereo     bool
	sampleRate int
	loop       bool
}

func NewClip(samples []float32, stereo bool, sampleRate int, loop bool) (*Clip, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyClip
	}
	length := len(samples)
	if stereo {
		if length%2 != 0 {
			return nil, fmt.Errorf("%w: odd sample count %d for a stereo clip", ErrUnsupportedChannels, length)
		}
		length /= 2
	}
	return &Clip{
		samples:    samples,
		length:     length,
		stereo:     stereo,
		sampleRate: sampleRate,
		loop:       loop,
	}, nil
}

func (c *Clip) Acquire() Reader    { return c }
func (c *Clip) Release()           {}
func (c *Clip) Stereo() bool       { return c.stereo }
func (c *Clip) Len() int           { return c.length }
func (c *Clip) Looping() bool      { return c.loop }
func (c *Clip) SampleRate() int    { return c.sampleRate }
func (c *Clip) Samples() []float32 { return c.samples }

// Frames is the number of audio frames needed to play the clip out once,
// rounded up.
func (c *Clip) Frames(samplesPerFrame int) int {
	if samplesPerFrame <= 0 {
		return 0
	}
	return (c.length + samplesPerFrame - 1) / samplesPerFrame
}

// Accumulate reads a looping clip modulo its length. One-shot clips are
// silent outside [0, Len()).
func (c *Clip) Accumulate(dst []float32, pos int, right bool, weight float32) {
	stride, channel := layout(c.stereo, right)
	if c.loop {
		accumulateWrapped(dst, c.samples, c.length, pos, stride, channel, weight)
		return
	}

	lo := max(0, -pos)
	hi := min(len(dst), c.length-pos)
	if lo >= hi {
		return
	}
	accumulate(dst[lo:hi], c.samples, pos+lo, stride, channel, weight)
}
