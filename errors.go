// SPDX-License-Identifier: EPL-2.0

package myri

import (
	"errors"

	"github.com/Ezardy/MyriAudioFiltered/config"
)

var (
	// ErrInvalidFormat is returned by New for a non-positive sample rate or
	// frame size.
	ErrInvalidFormat = config.ErrInvalidFormat
	// ErrClosed is returned by Tick after Close.
	ErrClosed = errors.New("pipeline closed")
)
