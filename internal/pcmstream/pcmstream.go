// SPDX-License-Identifier: EPL-2.0

// Package pcmstream adapts go-audio integer PCM decoders to audio.Source.
package pcmstream

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/Ezardy/MyriAudioFiltered/utils"
)

// Reader is the subset of the go-audio wav and aiff decoders used here.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams normalized float32 samples out of a Reader.
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
	eof        bool
}

func New(dec Reader, bitDepth int) *Source {
	f := dec.Format()
	return &Source{
		dec:        dec,
		sampleRate: f.SampleRate,
		channels:   f.NumChannels,
		bitDepth:   bitDepth,
		intBuf:     &goaudio.IntBuffer{Format: f, SourceBitDepth: bitDepth},
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

// ReadSamples fills dst with whole frames. A short read from the decoder
// marks the end of the stream.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	want := len(dst) - len(dst)%max(s.channels, 1)
	if want == 0 {
		return 0, nil
	}

	if cap(s.intBuf.Data) < want {
		s.intBuf.Data = make([]int, want)
	}
	s.intBuf.Data = s.intBuf.Data[:want]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("decoding pcm: %w", err)
	}
	n = utils.IntsToFloat32(dst, s.intBuf.Data[:n], s.bitDepth)

	if n < want || err != nil {
		s.eof = true
		if n == 0 {
			return 0, io.EOF
		}
		return n, io.EOF
	}
	return n, nil
}
