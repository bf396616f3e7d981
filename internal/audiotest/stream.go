// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds fixtures shared by the package tests: synthetic
// PCM streams, prebuilt clips and rings, and a render thread stand-in.
package audiotest

import (
	"io"
	"math"
)

// Wave yields the sample for a frame and channel.
type Wave func(frame, channel int) float32

func Silence() Wave { return Constant(0) }

func Constant(v float32) Wave {
	return func(int, int) float32 { return v }
}

func Sine(sampleRate int, hz float64) Wave {
	return func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * hz * float64(frame) / float64(sampleRate)))
	}
}

// Ramp returns frame/frames on every channel.
func Ramp(frames int) Wave {
	return func(frame, _ int) float32 { return float32(frame) / float32(frames) }
}

// Stream is a finite generated PCM stream. It satisfies audio.Source.
type Stream struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Wave
	closed     bool
}

func NewStream(sampleRate, channels, frames int, wave Wave) *Stream {
	return &Stream{sampleRate: sampleRate, channels: channels, frames: frames, wave: wave}
}

func (s *Stream) SampleRate() int { return s.sampleRate }
func (s *Stream) Channels() int   { return s.channels }
func (s *Stream) Closed() bool    { return s.closed }

func (s *Stream) Close() error {
	s.closed = true
	return nil
}

func (s *Stream) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.wave(s.pos+f, c)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}
