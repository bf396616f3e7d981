// SPDX-License-Identifier: EPL-2.0

package snapshot

import (
	"slices"

	"github.com/Ezardy/MyriAudioFiltered/config"
	"github.com/Ezardy/MyriAudioFiltered/lifecycle"
	"github.com/Ezardy/MyriAudioFiltered/scene"
	"github.com/Ezardy/MyriAudioFiltered/source"
	"github.com/Ezardy/MyriAudioFiltered/spatial"
)

// Listener is the frozen state of a scene.Listener.
type Listener struct {
	Transform     spatial.Transform
	Profile       *scene.ILDProfile
	ITDResolution int
	Layout        lifecycle.Layout
}

// Taps is the number of interaural delay taps.
func (l *Listener) Taps() int { return 2*max(l.ITDResolution, 0) + 1 }

// Emitter is the frozen state of a scene.Emitter. Reader is nil when Play
// is off.
type Emitter struct {
	Transform       spatial.Transform
	Volume          float32
	InnerRange      float32
	OuterRange      float32
	RangeFadeMargin float32
	Cone            *scene.Cone
	Play            bool

	Reader source.Reader
	// Offset is the audio frame sample 0 of the source lines up with.
	Offset int
}

// Frame is everything a tick needs, read once.
type Frame struct {
	Clock     lifecycle.Clock
	Format    config.Format
	Listeners []Listener
	Emitters  []Emitter
	// Finished holds the indices of one-shot emitters that have played out.
	Finished []int

	readers     map[source.Source]source.Reader
	hasListener bool
	hasEmitter  bool
}

// Layouts lists the listeners' output arrangements in order.
func (f *Frame) Layouts() []lifecycle.Layout {
	layouts := make([]lifecycle.Layout, len(f.Listeners))
	for i := range f.Listeners {
		layouts[i] = f.Listeners[i].Layout
	}
	return layouts
}

// Empty reports whether there is nothing to mix.
func (f *Frame) Empty() bool {
	return !f.hasListener || !f.hasEmitter
}

// Present reports whether listeners and emitters hold at least one entry
// each that Capture would keep. It is the rule Frame.Empty applies, checked
// without capturing.
func Present(listeners []*scene.Listener, emitters []*scene.Emitter) bool {
	return slices.ContainsFunc(listeners, keepListener) && slices.ContainsFunc(emitters, keepEmitter)
}

func keepListener(l *scene.Listener) bool { return l != nil }
func keepEmitter(e *scene.Emitter) bool   { return e != nil && e.Source != nil }

// Release hands every acquired reader back to its source.
func (f *Frame) Release() {
	for _, r := range f.readers {
		r.Release()
	}
	clear(f.readers)
}

// Capture snapshots listeners and emitters for the tick described by clock.
// Nil entries keep their index: a nil listener has no channels and a nil
// emitter does not play.
func Capture(clock lifecycle.Clock, format config.Format, listeners []*scene.Listener, emitters []*scene.Emitter) *Frame {
	f := &Frame{
		Clock:     clock,
		Format:    format,
		Listeners: make([]Listener, len(listeners)),
		Emitters:  make([]Emitter, len(emitters)),
		readers:   make(map[source.Source]source.Reader),
	}

	for i, l := range listeners {
		if !keepListener(l) {
			continue
		}
		f.Listeners[i] = Listener{
			Transform:     l.Transform,
			Profile:       l.Profile,
			ITDResolution: max(l.ITDResolution, 0),
			Layout:        l.Layout(),
		}
		f.hasListener = true
	}

	for i, e := range emitters {
		if !keepEmitter(e) {
			continue
		}
		f.Emitters[i] = f.captureEmitter(i, e)
		f.hasEmitter = true
	}
	return f
}

func (f *Frame) captureEmitter(i int, e *scene.Emitter) Emitter {
	out := Emitter{
		Transform:       e.Transform,
		Volume:          e.Volume,
		InnerRange:      e.InnerRange,
		OuterRange:      e.OuterRange,
		RangeFadeMargin: e.RangeFadeMargin,
		Play:            e.Play,
	}
	if e.Cone != nil {
		cone := *e.Cone
		out.Cone = &cone
	}
	if !e.Play {
		return out
	}

	e.Playback.Update(f.Clock)
	if e.SyncsToSpawn() {
		out.Offset = e.Playback.SpawnFrame()
	}
	out.Reader = f.reader(e.Source)

	if clip, ok := e.Source.(*source.Clip); ok && !clip.Looping() {
		if e.Playback.Finished(clip.Frames(f.Format.SamplesPerFrame), f.Clock) {
			f.Finished = append(f.Finished, i)
		}
	}
	return out
}

func (f *Frame) reader(src source.Source) source.Reader {
	if r, ok := f.readers[src]; ok {
		return r
	}
	r := src.Acquire()
	f.readers[src] = r
	return r
}
