// SPDX-License-Identifier: EPL-2.0

package cull

import (
	"github.com/Ezardy/MyriAudioFiltered/internal/parallel"
	"github.com/Ezardy/MyriAudioFiltered/snapshot"
)

// BatchSize is the number of emitters one Stream covers.
const BatchSize = 32

// Pair is one audible listener and emitter combination.
type Pair struct {
	Listener int
	Emitter  int
	Weights  Weights
}

// Stream is the append-only output of one emitter range, ordered by emitter
// then listener.
type Stream []Pair

// Run weights every listener and emitter pair of frame. Stream i covers
// emitters [i*BatchSize, (i+1)*BatchSize).
func Run(frame *snapshot.Frame, sched parallel.Scheduler) []Stream {
	n := len(frame.Emitters)
	streams := make([]Stream, parallel.Batches(n, BatchSize))
	if len(frame.Listeners) == 0 {
		return streams
	}

	sched.For(n, BatchSize, func(batch, start, end int) {
		var out Stream
		for ei := start; ei < end; ei++ {
			e := &frame.Emitters[ei]
			for li := range frame.Listeners {
				if frame.Listeners[li].Layout.Channels == 0 {
					continue
				}
				if w, ok := ComputeWeights(&frame.Listeners[li], e); ok {
					out = append(out, Pair{Listener: li, Emitter: ei, Weights: w})
				}
			}
		}
		streams[batch] = out
	})
	return streams
}
