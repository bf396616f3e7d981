// SPDX-License-Identifier: EPL-2.0

// Package render is the consumer side of the pipeline.
//
// Player stands in for an audio callback: every Advance plays one audio
// frame, switching to a newly published buffer once its start frame is
// reached, and reports progress back to the producer. It only ever does
// atomic loads and stores on shared state.
//
// Recorder collects what a Player plays so it can be written out as one WAV
// file per listener.
package render
