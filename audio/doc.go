// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding side of clip ingestion.
//
// Decoders for each container register in a Registry keyed by file
// extension and produce a Source: a pull-based stream of interleaved
// float32 samples in [-1, 1].
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	dec, err := registry.Lookup("footstep.wav")
//
// Sources chain. A Resampler converts a stream to the mixer's sample rate
// with Catmull-Rom interpolation, and a Downmixer folds surround material to
// mono:
//
//	src = audio.NewDownmixer(audio.NewResampler(src, 48000))
//	samples, err := audio.ReadAll(src)
//
// ReadSamples returns io.EOF once a stream is exhausted; the final call may
// return samples together with io.EOF.
package audio
