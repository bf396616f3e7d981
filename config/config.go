// SPDX-License-Identifier: EPL-2.0

// Package config holds the mixer's tunables. Settings are passed into every
// tick explicitly; there is no process-wide instance.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidFormat is returned by Format.Validate.
var ErrInvalidFormat = errors.New("sample rate and samples per frame must be positive")

// Settings control how far ahead of the render thread the mixer produces.
type Settings struct {
	// SafetyAudioFrames are extra frames written past the frames of one
	// update to absorb simulation jitter.
	SafetyAudioFrames int `json:"safetyAudioFrames"`
	// AudioFramesPerUpdate is how many frames the audio clock advances per tick.
	AudioFramesPerUpdate int `json:"audioFramesPerUpdate"`
	// LookaheadAudioFrames are appended after the safety frames.
	LookaheadAudioFrames int `json:"lookaheadAudioFrames"`
	// LogWarningIfBuffersAreStarved logs when the render thread outruns production.
	LogWarningIfBuffersAreStarved bool `json:"logWarningIfBuffersAreStarved"`
}

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		SafetyAudioFrames:    2,
		AudioFramesPerUpdate: 1,
		LookaheadAudioFrames: 0,
	}
}

// Sanitize clamps negative values to zero.
func (s Settings) Sanitize() Settings {
	s.SafetyAudioFrames = max(s.SafetyAudioFrames, 0)
	s.AudioFramesPerUpdate = max(s.AudioFramesPerUpdate, 0)
	s.LookaheadAudioFrames = max(s.LookaheadAudioFrames, 0)
	return s
}

// FramesPerBuffer is the number of audio frames held by one output buffer.
func (s Settings) FramesPerBuffer() int {
	s = s.Sanitize()
	return s.AudioFramesPerUpdate + s.SafetyAudioFrames + s.LookaheadAudioFrames
}

// Load decodes JSON settings on top of Default and sanitizes the result.
// Fields missing from the document keep their default values.
func Load(r io.Reader) (Settings, error) {
	s := Default()
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Default(), fmt.Errorf("decoding settings: %w", err)
	}
	return s.Sanitize(), nil
}

// Format describes the output device cadence. It is fixed for the lifetime
// of a pipeline.
type Format struct {
	SampleRate      int
	SamplesPerFrame int
}

// Validate reports ErrInvalidFormat for non-positive values.
func (f Format) Validate() error {
	if f.SampleRate <= 0 || f.SamplesPerFrame <= 0 {
		return fmt.Errorf("%w: got %d Hz, %d samples per frame", ErrInvalidFormat, f.SampleRate, f.SamplesPerFrame)
	}
	return nil
}
