// SPDX-License-Identifier: EPL-2.0

// Package lifecycle keeps the simulation timeline and the render timeline in
// step.
//
// The render side owns a Progress value: one atomic int64 packing the id of
// the buffer it reads (high 32 bits) and the number of audio frames it has
// consumed (low 32 bits). Once per tick the simulation side reads it in
// BeginTick, picks the audio frame the new buffer starts at, and afterwards
// retires every buffer strictly older than the last one consumed.
//
// Finished buffers cross to the render side through a Handoff, a single
// slot that the newest buffer overwrites.
package lifecycle
