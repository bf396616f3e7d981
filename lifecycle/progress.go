// SPDX-License-Identifier: EPL-2.0

package lifecycle

import "sync/atomic"

// Pack combines a buffer id and a consumed frame count into one word.
func Pack(bufferID, consumed int) int64 {
	return int64(uint64(uint32(bufferID))<<32 | uint64(uint32(consumed)))
}

// Unpack reverses Pack.
func Unpack(v int64) (bufferID, consumed int) {
	return int(int32(uint64(v) >> 32)), int(int32(uint32(v)))
}

// Progress is written by the render thread and read by the simulation.
// Both sides touch it with a single atomic operation.
type Progress struct {
	v atomic.Int64
}

// Report publishes the buffer being read and the frames consumed so far.
func (p *Progress) Report(bufferID, consumed int) {
	p.v.Store(Pack(bufferID, consumed))
}

func (p *Progress) Load() (bufferID, consumed int) {
	return Unpack(p.v.Load())
}
