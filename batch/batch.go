// SPDX-License-Identifier: EPL-2.0

// Package batch folds weighted pairs that read the same material for the
// same listener into a single entry, so the sampler reads each source window
// once per listener no matter how many emitters play it.
package batch

import (
	"github.com/Ezardy/MyriAudioFiltered/cull"
	"github.com/Ezardy/MyriAudioFiltered/snapshot"
	"github.com/Ezardy/MyriAudioFiltered/source"
)

// Key identifies one read of a source for one listener.
type Key struct {
	Reader source.Reader
	// Offset is the audio frame sample 0 lines up with.
	Offset   int
	Listener int
}

// Entry is the summed weights of every pair sharing a Key.
type Entry struct {
	Key     Key
	Weights cull.Weights
}

// Batch is the merged output of a tick. Entries are in first-seen order.
type Batch struct {
	Entries []Entry
	// PerListener[l] indexes the entries of listener l.
	PerListener [][]int
}

// Builder is an insertion-ordered map from Key to Entry.
type Builder struct {
	index   map[Key]int
	entries []Entry
}

func NewBuilder() *Builder {
	return &Builder{index: make(map[Key]int)}
}

// Add sums w into the entry for k, creating it on first sight. w is copied.
func (b *Builder) Add(k Key, w cull.Weights) {
	if i, ok := b.index[k]; ok {
		b.entries[i].Weights.Add(w)
		return
	}
	b.index[k] = len(b.entries)
	b.entries = append(b.entries, Entry{Key: k, Weights: w.Clone()})
}

func (b *Builder) Len() int { return len(b.entries) }

// Build returns the batch for listeners listeners and resets the builder.
func (b *Builder) Build(listeners int) *Batch {
	out := &Batch{
		Entries:     b.entries,
		PerListener: make([][]int, listeners),
	}
	for i, e := range out.Entries {
		out.PerListener[e.Key.Listener] = append(out.PerListener[e.Key.Listener], i)
	}
	b.entries = nil
	clear(b.index)
	return out
}

// Merge walks streams in order and batches every pair.
func Merge(frame *snapshot.Frame, streams []cull.Stream) *Batch {
	b := NewBuilder()
	for _, s := range streams {
		for _, p := range s {
			e := &frame.Emitters[p.Emitter]
			if !e.Play || e.Reader == nil {
				continue
			}
			b.Add(Key{Reader: e.Reader, Offset: e.Offset, Listener: p.Listener}, p.Weights)
		}
	}
	return b.Build(len(frame.Listeners))
}
