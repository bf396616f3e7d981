// SPDX-License-Identifier: EPL-2.0

package cull

import (
	"github.com/Ezardy/MyriAudioFiltered/snapshot"
	"github.com/Ezardy/MyriAudioFiltered/spatial"
	"github.com/Ezardy/MyriAudioFiltered/utils"
)

// Weights are the gains of one emitter as heard by one listener.
type Weights struct {
	// Channels has one entry per listener channel.
	Channels []float32
	// Taps has 2R+1 entries and sums to 1.
	Taps []float32
}

// Clone returns a copy that does not share storage with w.
func (w Weights) Clone() Weights {
	return Weights{
		Channels: append([]float32(nil), w.Channels...),
		Taps:     append([]float32(nil), w.Taps...),
	}
}

// Add accumulates o into w element-wise. Both must come from the same
// listener.
func (w Weights) Add(o Weights) {
	for i := range w.Channels {
		w.Channels[i] += o.Channels[i]
	}
	for i := range w.Taps {
		w.Taps[i] += o.Taps[i]
	}
}

// IsZero reports whether every channel gain is zero.
func (w Weights) IsZero() bool {
	for _, c := range w.Channels {
		if c != 0 {
			return false
		}
	}
	return true
}

// Attenuation is the distance gain at d: 1 inside inner, inverse distance
// beyond, faded linearly to 0 over the last fadeMargin before outer.
func Attenuation(d, inner, outer, fadeMargin float32) float32 {
	if d >= outer {
		return 0
	}

	var gain float32 = 1
	switch {
	case inner <= 0:
		gain = 1 / (1 + d)
	case d > inner:
		gain = inner / d
	}

	if fadeMargin > 0 {
		gain *= utils.Saturate((outer - d) / fadeMargin)
	}
	return gain
}

// ComputeWeights weights emitter e as heard by listener l. ok is false when
// the pair is culled, the listener has no channels or every weight is zero.
func ComputeWeights(l *snapshot.Listener, e *snapshot.Emitter) (w Weights, ok bool) {
	if !e.Play || e.Reader == nil || l.Layout.Channels == 0 {
		return Weights{}, false
	}
	offset := l.Transform.Position.Sub(e.Transform.Position)
	distSq := offset.LengthSq()
	if distSq > e.OuterRange*e.OuterRange {
		return Weights{}, false
	}

	gain := e.Volume * Attenuation(offset.Length(), e.InnerRange, e.OuterRange, e.RangeFadeMargin)
	if e.Cone != nil {
		cos := float32(1)
		if distSq > 0 {
			cos = e.Transform.Forward().Dot(offset.NormalizeSafe(e.Transform.Forward()))
		}
		gain *= e.Cone.Gain(cos)
	}
	if gain <= 0 {
		return Weights{}, false
	}

	w = Weights{
		Channels: make([]float32, l.Layout.Channels),
		Taps:     make([]float32, l.Taps()),
	}

	local := l.Transform.InverseTransformPoint(e.Transform.Position)
	if l.Profile == nil || len(l.Profile.Channels) == 0 {
		w.Channels[0] = gain
	} else {
		az, el := spatial.Angles(local)
		for i, ch := range l.Profile.Channels {
			w.Channels[i] = max(ch.Eval(az, el), 0) * gain
		}
	}
	if w.IsZero() {
		return Weights{}, false
	}

	fillTaps(w.Taps, local.NormalizeSafe(spatial.Vec3{}).X)
	return w, true
}

// fillTaps splits a unit weight between the two taps around the fractional
// position of x in [-1, 1].
func fillTaps(taps []float32, x float32) {
	last := len(taps) - 1
	if last == 0 {
		taps[0] = 1
		return
	}

	pos := (utils.Saturate(x*0.5 + 0.5)) * float32(last)
	lo := min(int(pos), last)
	frac := pos - float32(lo)
	taps[lo] = 1 - frac
	if lo < last {
		taps[lo+1] = frac
	}
}
