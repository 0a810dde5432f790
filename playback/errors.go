// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"fmt"

	"github.com/ik5/sfxpool/audio"
)

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrEngineStart       = errors.New("output engine failed to start")
	ErrAudioLoading      = errors.New("could not load audio data")
	ErrClosed            = errors.New("coordinator is closed")
)

// IdentifierError is delivered to onComplete when no sound is registered
// under ID. It matches ErrInvalidIdentifier with errors.Is.
type IdentifierError struct {
	ID audio.SoundID
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier. no sound loaded named '%s'", e.ID)
}

func (e *IdentifierError) Unwrap() error { return ErrInvalidIdentifier }
