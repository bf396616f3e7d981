// SPDX-License-Identifier: EPL-2.0

package myri

import (
	"context"

	"github.com/Ezardy/MyriAudioFiltered/source"
)

// LoadClips is a convenience function that decodes clip files with the
// default WAV and AIFF decoders and converts them to sampleRate.
//
// Files are decoded concurrently and the first failure cancels the rest.
// Clips with more than two channels are downmixed to mono; mono and stereo
// clips keep their layout.
//
// For other containers, register a decoder on a registry of your own and
// call source.LoadClips directly.
//
// Example:
//
//	clips, err := myri.LoadClips(ctx, 48000,
//	    source.ClipSpec{Path: "step.wav"},
//	    source.ClipSpec{Path: "rain.aiff", Loop: true},
//	)
func LoadClips(ctx context.Context, sampleRate int, specs ...source.ClipSpec) ([]*source.Clip, error) {
	return source.LoadClips(ctx, source.DefaultRegistry(), sampleRate, specs)
}
