// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF clips through github.com/go-audio/aiff.
//
//	src, err := aiff.Decoder{}.Decode(file)
//
// Integer PCM at 8, 16, 24 and 32 bits is supported; samples are
// normalized to [-1, 1]. Readers that cannot seek are buffered in memory
// first.
package aiff
