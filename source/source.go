// SPDX-License-Identifier: EPL-2.0

package source

// Source is anything an emitter can play.
type Source interface {
	// Acquire returns the reader used for one tick. Every Acquire must be
	// paired with a Release on the returned reader.
	Acquire() Reader
}

// Reader addresses samples by absolute per-channel position. Readers are
// comparable and two emitters reading the same material through the same
// reader batch together.
type Reader interface {
	Stereo() bool
	// Len is the number of samples per channel.
	Len() int
	// Accumulate adds weight*sample(pos+i) into dst[i]. right selects the
	// right channel of a stereo reader and is ignored for mono.
	Accumulate(dst []float32, pos int, right bool, weight float32)
	Release()
}

// accumulate adds data[(start+i)*stride+channel]*weight into dst.
func accumulate(dst, data []float32, start, stride, channel int, weight float32) {
	if stride == 1 {
		src := data[start : start+len(dst)]
		for i, s := range src {
			dst[i] += s * weight
		}
		return
	}
	j := start*stride + channel
	for i := range dst {
		dst[i] += data[j] * weight
		j += stride
	}
}

// accumulateWrapped reads length-periodic material. The window is split
// into contiguous ranges at every wrap.
func accumulateWrapped(dst, data []float32, length, pos, stride, channel int, weight float32) {
	start := pos % length
	if start < 0 {
		start += length
	}
	for len(dst) > 0 {
		run := min(len(dst), length-start)
		accumulate(dst[:run], data, start, stride, channel, weight)
		dst = dst[run:]
		start = 0
	}
}

func layout(stereo, right bool) (stride, channel int) {
	if !stereo {
		return 1, 0
	}
	if right {
		return 2, 1
	}
	return 2, 0
}
