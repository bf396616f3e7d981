// SPDX-License-Identifier: EPL-2.0

package scene

import (
	"math"

	"github.com/Ezardy/MyriAudioFiltered/lifecycle"
	"github.com/Ezardy/MyriAudioFiltered/source"
	"github.com/Ezardy/MyriAudioFiltered/spatial"
	"github.com/Ezardy/MyriAudioFiltered/utils"
)

// Cone narrows an emitter: full volume inside the inner angle, fading to
// OuterAngleAttenuation at the outer angle and beyond.
type Cone struct {
	CosInnerAngle         float32
	CosOuterAngle         float32
	OuterAngleAttenuation float32
}

// NewCone takes half-angles in degrees measured from the emitter's forward
// axis.
func NewCone(innerDeg, outerDeg, outerVolume float32) *Cone {
	outerDeg = max(outerDeg, innerDeg)
	return &Cone{
		CosInnerAngle:         float32(math.Cos(float64(innerDeg) * math.Pi / 180)),
		CosOuterAngle:         float32(math.Cos(float64(outerDeg) * math.Pi / 180)),
		OuterAngleAttenuation: outerVolume,
	}
}

// Gain maps the cosine of the angle off the forward axis to a volume.
func (c *Cone) Gain(cos float32) float32 {
	if c == nil {
		return 1
	}
	factor := utils.Saturate(utils.Unlerp(c.CosOuterAngle, c.CosInnerAngle, cos))
	return utils.Lerp(c.OuterAngleAttenuation, 1, factor)
}

// Emitter is a sound source in the world.
type Emitter struct {
	Transform spatial.Transform
	// Source is a *source.Clip or a *source.Ring. Stereo is a property of
	// the source.
	Source source.Source

	Volume          float32
	InnerRange      float32
	OuterRange      float32
	RangeFadeMargin float32
	// Cone is nil for omnidirectional emitters.
	Cone *Cone

	Play bool
	// PlayFromBeginningAtSpawn makes a looping clip start at its first
	// sample when spawned instead of following the global loop phase.
	PlayFromBeginningAtSpawn bool

	Playback lifecycle.Playback
}

// Looping reports whether the emitter plays a looping clip.
func (e *Emitter) Looping() bool {
	c, ok := e.Source.(*source.Clip)
	return ok && c.Looping()
}

// SyncsToSpawn reports whether sample 0 of the source lines up with the
// spawn frame. Globally phased loops line up with audio frame 0 instead.
func (e *Emitter) SyncsToSpawn() bool {
	return !e.Looping() || e.PlayFromBeginningAtSpawn
}

// Listener is a point that hears emitters through a directional profile.
type Listener struct {
	Transform spatial.Transform
	// Profile is nil for a single omnidirectional channel.
	Profile *ILDProfile
	// ITDResolution R gives 2R+1 interaural delay taps; 0 disables delay.
	ITDResolution int
}

// Layout is the listener's output channel arrangement.
func (l *Listener) Layout() lifecycle.Layout { return l.Profile.Layout() }

// Taps is the number of interaural delay taps.
func (l *Listener) Taps() int { return 2*max(l.ITDResolution, 0) + 1 }
