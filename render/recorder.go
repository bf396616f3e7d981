// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"
	"io"
	"time"

	"github.com/Ezardy/MyriAudioFiltered/config"
	"github.com/Ezardy/MyriAudioFiltered/formats/wav"
	"github.com/Ezardy/MyriAudioFiltered/lifecycle"
)

// Recorder accumulates played frames per listener channel.
type Recorder struct {
	format   config.Format
	channels [][][]float32
	frames   int
}

func NewRecorder(format config.Format, layouts []lifecycle.Layout) *Recorder {
	r := &Recorder{
		format:   format,
		channels: make([][][]float32, len(layouts)),
	}
	for i, l := range layouts {
		r.channels[i] = make([][]float32, l.Channels)
	}
	return r
}

// Record appends one frame. Silent frames and channels missing from the
// buffer are recorded as zeros.
func (r *Recorder) Record(v View) {
	spf := r.format.SamplesPerFrame
	for l, chans := range r.channels {
		for ch := range chans {
			var src []float32
			if v.Buffer != nil && l < len(v.Buffer.Regions) && ch < v.Buffer.Regions[l].Channels {
				src = v.Channel(l, ch)
			}
			if src == nil {
				chans[ch] = append(chans[ch], make([]float32, spf)...)
				continue
			}
			chans[ch] = append(chans[ch], src...)
		}
	}
	r.frames++
}

// Frames is the number of recorded frames.
func (r *Recorder) Frames() int { return r.frames }

// Duration is the recorded length in time.
func (r *Recorder) Duration() time.Duration {
	if r.format.SampleRate <= 0 {
		return 0
	}
	samples := int64(r.frames) * int64(r.format.SamplesPerFrame)
	return time.Duration(samples) * time.Second / time.Duration(r.format.SampleRate)
}

// Channel returns the recorded samples of one listener channel.
func (r *Recorder) Channel(listener, ch int) []float32 {
	return r.channels[listener][ch]
}

// Interleaved returns a listener's channels interleaved frame by frame.
func (r *Recorder) Interleaved(listener int) []float32 {
	chans := r.channels[listener]
	if len(chans) == 0 {
		return nil
	}
	n := len(chans[0])
	out := make([]float32, 0, n*len(chans))
	for i := range n {
		for _, c := range chans {
			out = append(out, c[i])
		}
	}
	return out
}

// WriteWAV encodes one listener as a multi-channel WAV file.
func (r *Recorder) WriteWAV(w io.WriteSeeker, listener int) error {
	if listener < 0 || listener >= len(r.channels) {
		return fmt.Errorf("%w: listener %d of %d", ErrNoListener, listener, len(r.channels))
	}
	if err := wav.Encode(w, r.format.SampleRate, len(r.channels[listener]), r.Interleaved(listener)); err != nil {
		return fmt.Errorf("recording listener %d: %w", listener, err)
	}
	return nil
}
