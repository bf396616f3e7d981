// SPDX-License-Identifier: EPL-2.0

package lifecycle

import "sync/atomic"

// Handoff is a single-slot mailbox between the simulation and the render
// thread. Publishing overwrites an untaken buffer; neither side blocks.
type Handoff struct {
	slot    atomic.Pointer[Buffer]
	dropped atomic.Int64
}

// Publish places b in the slot and reports whether an untaken buffer was
// overwritten.
func (h *Handoff) Publish(b *Buffer) bool {
	if old := h.slot.Swap(b); old != nil {
		h.dropped.Add(1)
		return true
	}
	return false
}

// Take empties the slot. It returns nil when nothing new was published.
func (h *Handoff) Take() *Buffer {
	return h.slot.Swap(nil)
}

// Dropped counts buffers overwritten before the render thread took them.
func (h *Handoff) Dropped() int64 {
	return h.dropped.Load()
}
