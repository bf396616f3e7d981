// SPDX-License-Identifier: EPL-2.0

// Package wav decodes clip files and encodes rendered listener output,
// both on top of github.com/go-audio/wav.
//
// Decoding accepts integer PCM at 8, 16, 24 and 32 bits with any channel
// count; samples come out normalized to [-1, 1]:
//
//	src, err := wav.Decoder{}.Decode(file)
//
// Encode writes interleaved float32 samples as 16-bit PCM. The destination
// must be seekable because the RIFF sizes are patched on close:
//
//	f, _ := os.Create("listener0.wav")
//	err := wav.Encode(f, 48000, 2, samples)
package wav
