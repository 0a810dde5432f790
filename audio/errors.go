// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidBitDepth   = errors.New("unsupported bit depth")
	ErrInvalidChannels   = errors.New("channel count must be at least 1")
	ErrInvalidFrame      = errors.New("sample data is not a whole number of frames")
	ErrFormatMismatch    = errors.New("source format does not match target format")
	ErrBufferAllocation  = errors.New("cannot allocate playback buffer")
)
