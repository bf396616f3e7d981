// SPDX-License-Identifier: EPL-2.0

// Package spatial holds the small amount of 3D math the mixer needs:
// vectors, unit quaternions and rigid transforms.
//
// The coordinate convention is left-handed: +X is right, +Y is up and
// +Z is forward. Azimuth is measured from +Z towards +X, so a source
// directly to the right of a listener has an azimuth of +pi/2.
package spatial
