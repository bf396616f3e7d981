// SPDX-License-Identifier: EPL-2.0

// Package sampler mixes batched entries into a tick's output buffer.
//
// Each listener channel is an independent task that writes only its own
// slice of the buffer, so tasks never contend. Samples are summed without
// clipping; reads outside a source's material are silence.
package sampler

import (
	"math"

	"github.com/Ezardy/MyriAudioFiltered/batch"
	"github.com/Ezardy/MyriAudioFiltered/internal/parallel"
	"github.com/Ezardy/MyriAudioFiltered/lifecycle"
	"github.com/Ezardy/MyriAudioFiltered/snapshot"
	"github.com/Ezardy/MyriAudioFiltered/utils"
)

// InterauralTimeConstant is the largest interaural delay, in seconds.
const InterauralTimeConstant = 0.0007

// MaxITD is the largest interaural delay in samples.
func MaxITD(sampleRate int) float64 {
	return float64(sampleRate) * InterauralTimeConstant
}

// TapDelay is the read offset, in samples, of tap out of taps for a channel
// on the given side, rounded half to even. The ear nearer the source hears
// it first, so left channels lag more toward tap 0 and right channels
// toward the last tap.
func TapDelay(tap, taps int, right bool, sampleRate int) int {
	if taps <= 1 {
		return 0
	}
	maxITD := MaxITD(sampleRate)
	t := float32(tap) / float32(taps-1)
	var d float32
	if right {
		d = utils.Lerp(float32(-maxITD), 0, t)
	} else {
		d = utils.Lerp(0, float32(-maxITD), t)
	}
	return int(math.RoundToEven(float64(d)))
}

// Slot is one listener channel.
type Slot struct {
	Listener int
	Channel  int
}

// Slots lists every listener channel in buffer order.
func Slots(regions []lifecycle.Region) []Slot {
	var slots []Slot
	for l, r := range regions {
		for ch := range r.Channels {
			slots = append(slots, Slot{Listener: l, Channel: ch})
		}
	}
	return slots
}

// Run mixes b into buf, one task per slot. buf must be zeroed and laid out
// for frame's listeners.
func Run(frame *snapshot.Frame, b *batch.Batch, buf *lifecycle.Buffer, sched parallel.Scheduler) {
	slots := Slots(buf.Regions)
	sched.For(len(slots), 1, func(_, start, end int) {
		for _, s := range slots[start:end] {
			Sample(frame, b, buf, s)
		}
	})
}

// Sample mixes every entry of one slot's listener into that slot.
func Sample(frame *snapshot.Frame, b *batch.Batch, buf *lifecycle.Buffer, s Slot) {
	region := buf.Regions[s.Listener]
	right := s.Channel >= region.LeftChannels
	dst := buf.Channel(s.Listener, s.Channel)
	spf := frame.Format.SamplesPerFrame

	for _, i := range b.PerListener[s.Listener] {
		e := &b.Entries[i]
		gain := e.Weights.Channels[s.Channel]
		if gain <= 0 {
			continue
		}
		base := (buf.StartFrame - e.Key.Offset) * spf
		taps := len(e.Weights.Taps)
		for tap, tw := range e.Weights.Taps {
			w := gain * tw
			if w <= 0 {
				continue
			}
			delay := TapDelay(tap, taps, right, frame.Format.SampleRate)
			e.Key.Reader.Accumulate(dst, base+delay, right, w)
		}
	}
}
