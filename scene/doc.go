// SPDX-License-Identifier: EPL-2.0

// Package scene describes what the mixer hears each tick: emitters with
// their sources and ranges, and listeners with their directional hearing
// profiles. The host owns these values and passes them to every tick.
package scene
