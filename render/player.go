// SPDX-License-Identifier: EPL-2.0

package render

import (
	"sync/atomic"

	"github.com/Ezardy/MyriAudioFiltered/lifecycle"
)

// View is one audio frame as seen by the render thread.
type View struct {
	Frame  int
	Buffer *lifecycle.Buffer
}

// Silent reports whether no buffer covered the frame.
func (v View) Silent() bool { return v.Buffer == nil }

// Channel returns the samples of one listener channel for the frame, or nil
// when the frame is silent.
func (v View) Channel(listener, ch int) []float32 {
	if v.Buffer == nil {
		return nil
	}
	return v.Buffer.Frame(listener, ch, v.Frame)
}

// Player must be advanced from a single goroutine. Played and Starved may
// be read from anywhere.
type Player struct {
	handoff  *lifecycle.Handoff
	progress *lifecycle.Progress

	cur     *lifecycle.Buffer
	pending *lifecycle.Buffer
	frame   int

	played  atomic.Int64
	starved atomic.Int64
}

func NewPlayer(h *lifecycle.Handoff, p *lifecycle.Progress) *Player {
	return &Player{handoff: h, progress: p}
}

// Advance plays the next audio frame.
func (p *Player) Advance() View {
	if b := p.handoff.Take(); b != nil {
		p.pending = b
	}
	if p.pending != nil && p.pending.StartFrame <= p.frame {
		p.cur, p.pending = p.pending, nil
	}

	v := View{Frame: p.frame}
	if p.cur != nil && p.cur.Covers(p.frame) {
		v.Buffer = p.cur
	} else {
		p.starved.Add(1)
	}

	p.frame++
	id := 0
	if p.cur != nil {
		id = p.cur.ID
	}
	p.progress.Report(id, p.frame)
	p.played.Add(1)
	return v
}

// Frame is the next frame Advance will play.
func (p *Player) Frame() int { return p.frame }

func (p *Player) Played() int64  { return p.played.Load() }
func (p *Player) Starved() int64 { return p.starved.Load() }
