// SPDX-License-Identifier: EPL-2.0

package source

import "errors"

var (
	ErrEmptyClip           = errors.New("clip has no samples")
	ErrUnsupportedChannels = errors.New("unsupported channel layout")
	ErrEmptyRing           = errors.New("ring length must be positive")
)
