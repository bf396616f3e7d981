// SPDX-License-Identifier: EPL-2.0

package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Ezardy/MyriAudioFiltered/audio"
	"github.com/Ezardy/MyriAudioFiltered/formats/aiff"
	"github.com/Ezardy/MyriAudioFiltered/formats/wav"
)

// DefaultRegistry knows the uncompressed containers.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	return r
}

// ClipSpec names a clip file to load.
type ClipSpec struct {
	Path string
	Loop bool
}

// DecodeClip reads a whole stream from r and converts it to sampleRate.
// Mono and stereo are kept; wider layouts are folded to mono.
func DecodeClip(r io.Reader, dec audio.Decoder, sampleRate int, loop bool) (*Clip, error) {
	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding clip: %w", err)
	}
	defer src.Close()

	switch channels := src.Channels(); {
	case channels < 1:
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, channels)
	case channels > 2:
		src = audio.NewDownmixer(src)
	}
	if sampleRate > 0 && src.SampleRate() != sampleRate {
		src = audio.NewResampler(src, sampleRate)
	}

	samples, err := audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("decoding clip: %w", err)
	}
	return NewClip(samples, src.Channels() == 2, src.SampleRate(), loop)
}

// LoadClip opens and decodes one file, picking the decoder by extension.
func LoadClip(registry *audio.Registry, sampleRate int, spec ClipSpec) (*Clip, error) {
	dec, err := registry.Lookup(spec.Path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(spec.Path)
	if err != nil {
		return nil, fmt.Errorf("opening clip: %w", err)
	}
	defer f.Close()

	clip, err := DecodeClip(f, dec, sampleRate, spec.Loop)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Path, err)
	}
	return clip, nil
}

// LoadClips decodes specs concurrently. The first failure cancels the
// remaining loads and is returned; on success clips[i] belongs to specs[i].
func LoadClips(ctx context.Context, registry *audio.Registry, sampleRate int, specs []ClipSpec) ([]*Clip, error) {
	clips := make([]*Clip, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, spec := range specs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			clip, err := LoadClip(registry, sampleRate, spec)
			if err != nil {
				return err
			}
			clips[i] = clip
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return clips, nil
}
