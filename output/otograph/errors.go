// SPDX-License-Identifier: EPL-2.0

package otograph

import "errors"

var (
	ErrUnsupportedFormat = errors.New("oto: unsupported sample format")
	ErrContextFormat     = errors.New("oto: output context already opened with another format")
	ErrForeignNode       = errors.New("oto: node belongs to another graph")
	ErrNotRunning        = errors.New("oto: graph is not running")
)
