// SPDX-License-Identifier: EPL-2.0

package lifecycle

// Layout is a listener's output channel arrangement.
type Layout struct {
	Channels     int
	LeftChannels int
}

// Region locates one listener inside a Buffer. Channels are stored one after
// another, SamplesPerChannel each.
type Region struct {
	Offset            int
	SamplesPerChannel int
	Channels          int
	LeftChannels      int
}

// Buffer holds every listener's output for one tick. It covers audio frames
// [StartFrame, StartFrame+Frames).
type Buffer struct {
	ID              int
	StartFrame      int
	Frames          int
	SamplesPerFrame int
	Samples         []float32
	Regions         []Region
}

// Channel returns the samples of one listener channel.
func (b *Buffer) Channel(listener, ch int) []float32 {
	r := b.Regions[listener]
	start := r.Offset + ch*r.SamplesPerChannel
	return b.Samples[start : start+r.SamplesPerChannel]
}

// Covers reports whether frame falls inside the buffer.
func (b *Buffer) Covers(frame int) bool {
	return frame >= b.StartFrame && frame < b.StartFrame+b.Frames
}

// Frame returns the samples of one channel for an absolute audio frame, or
// nil when the buffer does not cover it.
func (b *Buffer) Frame(listener, ch, frame int) []float32 {
	if !b.Covers(frame) {
		return nil
	}
	start := (frame - b.StartFrame) * b.SamplesPerFrame
	return b.Channel(listener, ch)[start : start+b.SamplesPerFrame]
}

// Bytes is the size of the sample storage.
func (b *Buffer) Bytes() uint64 {
	return uint64(cap(b.Samples)) * 4
}

func layoutRegions(regions []Region, layouts []Layout, samplesPerChannel int) ([]Region, int) {
	regions = regions[:0]
	offset := 0
	for _, l := range layouts {
		regions = append(regions, Region{
			Offset:            offset,
			SamplesPerChannel: samplesPerChannel,
			Channels:          l.Channels,
			LeftChannels:      l.LeftChannels,
		})
		offset += l.Channels * samplesPerChannel
	}
	return regions, offset
}
