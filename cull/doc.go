// SPDX-License-Identifier: EPL-2.0

// Package cull pairs listeners with the emitters they can hear and weights
// each pair.
//
// A pair carries one gain per listener channel (interaural level
// difference, distance attenuation, cone and volume folded together) and
// one gain per interaural delay tap. Pairs whose weights would be zero are
// never produced.
//
// Emitters are processed in fixed ranges of BatchSize. Each range appends to
// its own Stream, so ranges can run concurrently without sharing anything.
package cull
