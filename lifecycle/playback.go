// SPDX-License-Identifier: EPL-2.0

package lifecycle

// PlaybackState tracks where an emitter is in its start-up handshake.
type PlaybackState uint8

const (
	Uninitialized PlaybackState = iota
	Armed
	Playing
)

func (s PlaybackState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Armed:
		return "armed"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// Playback anchors an emitter to the audio frame and buffer it was spawned
// in. The zero value is Uninitialized.
type Playback struct {
	state         PlaybackState
	spawnFrame    int
	spawnBufferID int
	restart       bool
}

func (p *Playback) State() PlaybackState { return p.state }
func (p *Playback) SpawnFrame() int      { return p.spawnFrame }
func (p *Playback) SpawnBufferID() int   { return p.spawnBufferID }

// Restart asks for the emitter to start over. The request is honored once
// the render thread has consumed the current spawn.
func (p *Playback) Restart() { p.restart = true }

// Reset forgets the spawn anchor.
func (p *Playback) Reset() { *p = Playback{} }

// Update runs at capture for emitters with play set.
func (p *Playback) Update(clock Clock) {
	switch {
	case p.state == Uninitialized:
		p.arm(clock)
	case p.restart && clock.LastConsumedBufferID >= p.spawnBufferID && clock.LastPlayedAudioFrame >= p.spawnFrame:
		p.arm(clock)
	}
	if p.state == Armed && clock.LastPlayedAudioFrame >= p.spawnFrame {
		p.state = Playing
	}
}

func (p *Playback) arm(clock Clock) {
	p.state = Armed
	p.spawnFrame = clock.AudioFrame
	p.spawnBufferID = clock.BufferID
	p.restart = false
}

// Finished reports whether a one-shot of clipFrames audio frames has been
// played out entirely.
func (p *Playback) Finished(clipFrames int, clock Clock) bool {
	if p.state == Uninitialized {
		return false
	}
	return clock.LastPlayedAudioFrame >= p.spawnFrame+clipFrames-1
}
