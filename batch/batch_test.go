// SPDX-License-Identifier: EPL-2.0

package batch

import (
	"math"
	"slices"
	"testing"

	"github.com/Ezardy/MyriAudioFiltered/cull"
	"github.com/Ezardy/MyriAudioFiltered/snapshot"
	"github.com/Ezardy/MyriAudioFiltered/source"
)

func clip(t *testing.T) source.Reader {
	t.Helper()
	c, err := source.NewClip([]float32{1, 2, 3}, false, 48000, false)
	if err != nil {
		t.Fatalf("NewClip: %v", err)
	}
	return c
}

func weights(ch, tap float32) cull.Weights {
	return cull.Weights{Channels: []float32{ch, ch}, Taps: []float32{tap}}
}

func pairStreams(pairs []cull.Pair) []cull.Stream {
	var streams []cull.Stream
	for p := range slices.Chunk(pairs, 2) {
		streams = append(streams, cull.Stream(slices.Clone(p)))
	}
	return streams
}

func TestMerge_KeyMerge(t *testing.T) {
	t.Parallel()

	a, b := clip(t), clip(t)
	frame := &snapshot.Frame{
		Listeners: make([]snapshot.Listener, 2),
		Emitters: []snapshot.Emitter{
			{Play: true, Reader: a, Offset: 5},
			{Play: true, Reader: a, Offset: 5},
			{Play: true, Reader: a, Offset: 6},
			{Play: true, Reader: b, Offset: 5},
			{Play: false},
		},
	}
	streams := []cull.Stream{
		{{Listener: 0, Emitter: 0, Weights: weights(1, 1)}, {Listener: 1, Emitter: 0, Weights: weights(2, 1)}},
		{{Listener: 0, Emitter: 1, Weights: weights(0.5, 1)}, {Listener: 0, Emitter: 2, Weights: weights(1, 1)}},
		{{Listener: 0, Emitter: 3, Weights: weights(1, 1)}, {Listener: 0, Emitter: 4, Weights: weights(1, 1)}},
	}

	got := Merge(frame, streams)

	wantKeys := []Key{
		{Reader: a, Offset: 5, Listener: 0},
		{Reader: a, Offset: 5, Listener: 1},
		{Reader: a, Offset: 6, Listener: 0},
		{Reader: b, Offset: 5, Listener: 0},
	}
	if len(got.Entries) != len(wantKeys) {
		t.Fatalf("entries = %d, want %d", len(got.Entries), len(wantKeys))
	}
	for i, k := range wantKeys {
		if got.Entries[i].Key != k {
			t.Errorf("entry %d key = %+v, want %+v", i, got.Entries[i].Key, k)
		}
	}
	if w := got.Entries[0].Weights; w.Channels[0] != 1.5 || w.Taps[0] != 2 {
		t.Errorf("merged weights = %+v", w)
	}
	if streams[0][0].Weights.Channels[0] != 1 {
		t.Error("merge wrote into the stream's weights")
	}
	if !slices.Equal(got.PerListener[0], []int{0, 2, 3}) || !slices.Equal(got.PerListener[1], []int{1}) {
		t.Errorf("PerListener = %v", got.PerListener)
	}
}

func TestMerge_OrderIndependent(t *testing.T) {
	t.Parallel()

	readers := []source.Reader{clip(t), clip(t), clip(t)}
	frame := &snapshot.Frame{Listeners: make([]snapshot.Listener, 3)}
	var pairs []cull.Pair
	for i := range 24 {
		frame.Emitters = append(frame.Emitters, snapshot.Emitter{
			Play:   true,
			Reader: readers[i%3],
			Offset: i % 2,
		})
		pairs = append(pairs, cull.Pair{
			Listener: i % 3,
			Emitter:  i,
			Weights:  weights(float32(i+1), 1),
		})
	}

	sum := func(b *Batch) map[Key]float32 {
		m := make(map[Key]float32)
		for _, e := range b.Entries {
			if _, dup := m[e.Key]; dup {
				t.Fatalf("duplicate key %+v", e.Key)
			}
			m[e.Key] = e.Weights.Channels[0]
		}
		return m
	}

	want := sum(Merge(frame, pairStreams(pairs)))
	reversed := slices.Clone(pairs)
	slices.Reverse(reversed)
	got := sum(Merge(frame, pairStreams(reversed)))

	if len(got) != len(want) {
		t.Fatalf("keys = %d, want %d", len(got), len(want))
	}
	for k, w := range want {
		if math.Abs(float64(got[k]-w)) > 1e-4 {
			t.Errorf("key %+v: %v, want %v", k, got[k], w)
		}
	}
}

func TestBuilder_Reset(t *testing.T) {
	t.Parallel()

	r := clip(t)
	b := NewBuilder()
	b.Add(Key{Reader: r}, weights(1, 1))
	b.Add(Key{Reader: r}, weights(1, 1))
	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", b.Len())
	}
	first := b.Build(1)
	if b.Len() != 0 {
		t.Fatalf("Len() after Build = %d", b.Len())
	}
	b.Add(Key{Reader: r}, weights(3, 1))
	second := b.Build(1)
	if first.Entries[0].Weights.Channels[0] != 2 || second.Entries[0].Weights.Channels[0] != 3 {
		t.Errorf("first = %+v, second = %+v", first.Entries, second.Entries)
	}
}

func BenchmarkMerge(b *testing.B) {
	c, _ := source.NewClip([]float32{1}, false, 48000, false)
	frame := &snapshot.Frame{Listeners: make([]snapshot.Listener, 4)}
	var pairs []cull.Pair
	for i := range 1024 {
		frame.Emitters = append(frame.Emitters, snapshot.Emitter{Play: true, Reader: c, Offset: i % 16})
		pairs = append(pairs, cull.Pair{Listener: i % 4, Emitter: i, Weights: weights(1, 1)})
	}
	streams := pairStreams(pairs)

	b.ReportAllocs()
	for b.Loop() {
		Merge(frame, streams)
	}
}
