// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrTruncated            = errors.New("truncated WAV header")
	ErrInvalidFormat        = errors.New("invalid RIFF header format")
	ErrUnsupportedWavChunks = errors.New("unsupported WAV chunks")
	ErrUnsupportedEncoding  = errors.New("only integer PCM WAV is supported")
)

// FormatError is returned by the parsers. Kind is one of the sentinel errors
// above, so errors.Is(err, ErrTruncated) works on a *FormatError.
type FormatError struct {
	Kind   error
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason == "" {
		return "wav: " + e.Kind.Error()
	}
	return "wav: " + e.Kind.Error() + ": " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Kind }
