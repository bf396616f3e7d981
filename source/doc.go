// SPDX-License-Identifier: EPL-2.0

// Package source holds the sample material emitters play: immutable clips
// (one-shot or looping) and live rings fed by an external producer.
//
// Readers are acquired once per tick. A clip is its own reader. A ring hands
// out a pinned view of its most recently published slab, so the producer can
// keep writing into a different slab while the tick samples the view.
package source
