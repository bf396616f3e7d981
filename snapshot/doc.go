// SPDX-License-Identifier: EPL-2.0

// Package snapshot freezes the scene at the start of a tick.
//
// Capture copies what the later stages read (transforms, ranges, cones,
// listener profiles) into a Frame so the host may mutate its emitters and
// listeners while the rest of the tick runs. It is also the only stage that
// touches per-emitter playback state: emitters with Play set are armed
// against the tick's clock, and one-shot clips that have been played out are
// reported in Frame.Finished for the host to destroy.
//
// Every Source is acquired once per tick. Emitters sharing a source share
// the Reader, which is what lets identical material batch together later.
// Frame.Release must be called once the tick's buffer is sampled.
package snapshot
