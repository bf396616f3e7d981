// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Ezardy/MyriAudioFiltered/utils"
)

// Encode writes interleaved float32 samples as a 16-bit PCM WAV file.
// Samples outside [-1, 1] are clipped.
func Encode(w io.WriteSeeker, sampleRate, channels int, interleaved []float32) error {
	if channels <= 0 || sampleRate <= 0 {
		return fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedWavFormat, channels, sampleRate)
	}
	if len(interleaved)%channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrUnsupportedWavFormat, len(interleaved), channels)
	}

	data := make([]int, len(interleaved))
	for i, s := range interleaved {
		data[i] = int(utils.Float32ToInt16(s))
	}

	enc := wav.NewEncoder(w, sampleRate, 16, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}
