// SPDX-License-Identifier: EPL-2.0

package scene

import (
	"math"

	"github.com/Ezardy/MyriAudioFiltered/lifecycle"
	"github.com/Ezardy/MyriAudioFiltered/utils"
)

const (
	twoPi  = 2 * math.Pi
	halfPi = math.Pi / 2
)

// AnglePoint is one control point of a channel's azimuth curve. Azimuth is
// in radians, 0 straight ahead, positive to the right, within [-pi, pi].
type AnglePoint struct {
	Azimuth float32
	Gain    float32
}

// ILDChannel is a piecewise-linear gain curve over azimuth that wraps
// around behind the listener. Points must be sorted by azimuth.
// ElevationGain is the gain straight above or below; the curve blends
// toward it as the source leaves the horizontal plane.
type ILDChannel struct {
	Points        []AnglePoint
	ElevationGain float32
}

// Eval returns the channel gain for a direction.
func (c ILDChannel) Eval(azimuth, elevation float32) float32 {
	g := c.azimuthGain(azimuth)
	t := utils.Saturate(float32(math.Abs(float64(elevation))) / halfPi)
	return utils.Lerp(g, c.ElevationGain, t)
}

func (c ILDChannel) azimuthGain(az float32) float32 {
	pts := c.Points
	switch len(pts) {
	case 0:
		return 1
	case 1:
		return pts[0].Gain
	}

	first, last := pts[0], pts[len(pts)-1]
	if az < first.Azimuth || az >= last.Azimuth {
		if az < last.Azimuth {
			az += twoPi
		}
		t := utils.Unlerp(last.Azimuth, first.Azimuth+twoPi, az)
		return utils.Lerp(last.Gain, first.Gain, t)
	}

	for i := 1; i < len(pts); i++ {
		if az < pts[i].Azimuth {
			a, b := pts[i-1], pts[i]
			return utils.Lerp(a.Gain, b.Gain, utils.Unlerp(a.Azimuth, b.Azimuth, az))
		}
	}
	return last.Gain
}

// ILDProfile is a listener's set of output channels. The first LeftChannels
// channels sit on the left side; the rest on the right.
type ILDProfile struct {
	Channels     []ILDChannel
	LeftChannels int
}

// ChannelCount is at least one: an empty profile is a single omni channel.
func (p *ILDProfile) ChannelCount() int {
	if p == nil || len(p.Channels) == 0 {
		return 1
	}
	return len(p.Channels)
}

// Layout is the output arrangement the profile produces.
func (p *ILDProfile) Layout() lifecycle.Layout {
	n := p.ChannelCount()
	left := 0
	if p != nil && len(p.Channels) > 0 {
		left = min(max(p.LeftChannels, 0), n)
	}
	return lifecycle.Layout{Channels: n, LeftChannels: left}
}

// StereoProfile is a two channel profile: each ear is loudest facing its
// side and quietest facing the other.
func StereoProfile() *ILDProfile {
	const (
		near  = 1.0
		front = 0.7
		far   = 0.3
	)
	return &ILDProfile{
		Channels: []ILDChannel{
			{
				Points: []AnglePoint{
					{Azimuth: -halfPi, Gain: near},
					{Azimuth: 0, Gain: front},
					{Azimuth: halfPi, Gain: far},
					{Azimuth: math.Pi, Gain: front},
				},
				ElevationGain: front,
			},
			{
				Points: []AnglePoint{
					{Azimuth: -halfPi, Gain: far},
					{Azimuth: 0, Gain: front},
					{Azimuth: halfPi, Gain: near},
					{Azimuth: math.Pi, Gain: front},
				},
				ElevationGain: front,
			},
		},
		LeftChannels: 1,
	}
}
