// SPDX-License-Identifier: EPL-2.0

package source_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ezardy/MyriAudioFiltered/audio"
	"github.com/Ezardy/MyriAudioFiltered/formats/wav"
	"github.com/Ezardy/MyriAudioFiltered/internal/audiotest"
	"github.com/Ezardy/MyriAudioFiltered/source"
)

func encodeWAV(t *testing.T, sampleRate, channels int, samples []float32) []byte {
	t.Helper()

	buf := &audiotest.SeekBuffer{}
	if err := wav.Encode(buf, sampleRate, channels, samples); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return buf.Bytes()
}

func writeWAV(t *testing.T, dir, name string, sampleRate, channels int, samples []float32) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, encodeWAV(t, sampleRate, channels, samples), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeClip_Layouts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		channels   int
		wantStereo bool
	}{
		{name: "mono", channels: 1},
		{name: "stereo", channels: 2, wantStereo: true},
		{name: "quad folds to mono", channels: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := encodeWAV(t, 48000, tt.channels, make([]float32, 100*tt.channels))
			clip, err := source.DecodeClip(bytes.NewReader(data), wav.Decoder{}, 48000, false)
			if err != nil {
				t.Fatalf("DecodeClip() error = %v", err)
			}
			if clip.Stereo() != tt.wantStereo {
				t.Errorf("Stereo() = %v, want %v", clip.Stereo(), tt.wantStereo)
			}
			if clip.Len() != 100 {
				t.Errorf("Len() = %d, want 100", clip.Len())
			}
		})
	}
}

func TestDecodeClip_Resamples(t *testing.T) {
	t.Parallel()

	data := encodeWAV(t, 24000, 1, make([]float32, 2400))
	clip, err := source.DecodeClip(bytes.NewReader(data), wav.Decoder{}, 48000, true)
	if err != nil {
		t.Fatalf("DecodeClip() error = %v", err)
	}
	if clip.SampleRate() != 48000 || clip.Len() != 4800 || !clip.Looping() {
		t.Errorf("clip = (%d Hz, %d samples, loop %v), want (48000, 4800, true)", clip.SampleRate(), clip.Len(), clip.Looping())
	}
}

type streamDecoder struct{ stream *audiotest.Stream }

func (d streamDecoder) Decode(io.Reader) (audio.Source, error) { return d.stream, nil }

func TestDecodeClip_Empty(t *testing.T) {
	t.Parallel()

	dec := streamDecoder{audiotest.NewStream(48000, 1, 0, audiotest.Silence())}
	if _, err := source.DecodeClip(bytes.NewReader(nil), dec, 48000, false); !errors.Is(err, source.ErrEmptyClip) {
		t.Errorf("DecodeClip() error = %v, want ErrEmptyClip", err)
	}
}

func TestDecodeClip_NoChannels(t *testing.T) {
	t.Parallel()

	dec := streamDecoder{audiotest.NewStream(48000, 0, 10, audiotest.Silence())}
	if _, err := source.DecodeClip(bytes.NewReader(nil), dec, 48000, false); !errors.Is(err, source.ErrUnsupportedChannels) {
		t.Errorf("DecodeClip() error = %v, want ErrUnsupportedChannels", err)
	}
	if !dec.stream.Closed() {
		t.Error("DecodeClip() did not close the stream")
	}
}

func TestLoadClips(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	specs := []source.ClipSpec{
		{Path: writeWAV(t, dir, "a.wav", 48000, 1, make([]float32, 10))},
		{Path: writeWAV(t, dir, "b.WAV", 48000, 2, make([]float32, 40)), Loop: true},
	}

	clips, err := source.LoadClips(context.Background(), source.DefaultRegistry(), 48000, specs)
	if err != nil {
		t.Fatalf("LoadClips() error = %v", err)
	}
	if clips[0].Len() != 10 || clips[0].Stereo() {
		t.Errorf("clips[0] = (%d, stereo %v), want (10, mono)", clips[0].Len(), clips[0].Stereo())
	}
	if clips[1].Len() != 20 || !clips[1].Stereo() || !clips[1].Looping() {
		t.Errorf("clips[1] = (%d, stereo %v, loop %v), want (20, stereo, loop)", clips[1].Len(), clips[1].Stereo(), clips[1].Looping())
	}
}

func TestLoadClips_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeWAV(t, dir, "ok.wav", 48000, 1, make([]float32, 10))

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "unknown extension", path: filepath.Join(dir, "theme.ogg"), want: audio.ErrUnknownFormat},
		{name: "missing file", path: filepath.Join(dir, "missing.wav"), want: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			specs := []source.ClipSpec{{Path: good}, {Path: tt.path}}
			_, err := source.LoadClips(context.Background(), source.DefaultRegistry(), 48000, specs)
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadClips() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadClips_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeWAV(t, t.TempDir(), "a.wav", 48000, 1, make([]float32, 10))
	_, err := source.LoadClips(ctx, source.DefaultRegistry(), 48000, []source.ClipSpec{{Path: path}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("LoadClips() error = %v, want context.Canceled", err)
	}
}
