// SPDX-License-Identifier: EPL-2.0

// Package myri mixes a scene of spatial emitters into per-listener sample
// buffers for an asynchronous render thread.
//
// Every call to Pipeline.Tick runs one frame of the mixer:
//
//  1. snapshot: emitters and listeners are frozen and each source is
//     acquired once.
//  2. cull: every audible listener and emitter pair is weighted in
//     parallel (interaural level and time difference, distance, cone).
//  3. batch: pairs reading the same source window for the same listener
//     are merged, so a thousand copies of one looping clip cost one read.
//  4. sampler: each listener channel is mixed in parallel into a buffer
//     covering the next few audio frames.
//  5. lifecycle: the buffer is published to the render thread and buffers
//     the render thread has moved past are recycled.
//
// # Quick Start
//
//	format := config.Format{SampleRate: 48000, SamplesPerFrame: 1024}
//	p, err := myri.New(format, myri.WithLogger(slog.Default()))
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	clips, err := myri.LoadClips(ctx, format.SampleRate,
//	    source.ClipSpec{Path: "wind.wav", Loop: true})
//	if err != nil {
//	    return err
//	}
//
//	listener := &scene.Listener{Profile: scene.StereoProfile(), ITDResolution: 2}
//	wind := &scene.Emitter{Source: clips[0], Volume: 1, InnerRange: 1, OuterRange: 50, Play: true}
//
//	for {
//	    res, err := p.Tick(ctx, config.Default(), []*scene.Listener{listener}, []*scene.Emitter{wind})
//	    ...
//	}
//
// # Render thread
//
// The render side takes buffers from Pipeline.Handoff and reports how far
// it has played through Pipeline.Progress. Both are lock-free. The render
// package has a reference Player that does exactly this once per audio
// frame.
//
// # Sources
//
// An emitter plays a source.Clip (one-shot or looping) or a source.Ring
// rewritten live by a producer. Clips can be decoded from WAV and AIFF
// files; see the formats subpackages.
package myri
