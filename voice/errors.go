// SPDX-License-Identifier: EPL-2.0

package voice

import "errors"

// Drop reasons returned by Pool.Acquire. Neither is a playback failure.
var (
	ErrDuplicate = errors.New("sound is already playing")
	ErrSaturated = errors.New("all voices are busy")
)
