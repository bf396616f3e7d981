// SPDX-License-Identifier: EPL-2.0

package render

import "errors"

var ErrNoListener = errors.New("no such listener")
