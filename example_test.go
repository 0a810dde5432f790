// SPDX-License-Identifier: EPL-2.0

package sfxpool_test

import (
	"errors"
	"fmt"

	"github.com/ik5/sfxpool"
	"github.com/ik5/sfxpool/config"
	"github.com/ik5/sfxpool/internal/audiotest"
	"github.com/ik5/sfxpool/playback"
)

// Example_basicUsage registers a sound from WAV bytes and waits for its
// completion callback.
func Example_basicUsage() {
	graph := audiotest.NewGraph(audiotest.WithAutoComplete())

	p, err := sfxpool.New(config.Default(), graph)
	if err != nil {
		fmt.Printf("open error: %v\n", err)
		return
	}
	defer p.Close()

	wavData := audiotest.WAV(audiotest.CD, audiotest.Sine16(44100, 2, 441, 440))
	if err := p.Preload("beep", wavData); err != nil {
		fmt.Printf("preload error: %v\n", err)
		return
	}

	done := make(chan error)
	p.Play("beep", 0.8, false, func(err error) { done <- err })

	fmt.Printf("played: %v\n", <-done == nil)
	// Output: played: true
}

// Example_unknownSound shows the error delivered for an unregistered id.
func Example_unknownSound() {
	p, err := sfxpool.New(nil, audiotest.NewGraph())
	if err != nil {
		fmt.Printf("open error: %v\n", err)
		return
	}
	defer p.Close()

	done := make(chan error)
	p.Play("missing", 1, false, func(err error) { done <- err })

	err = <-done
	fmt.Println(errors.Is(err, playback.ErrInvalidIdentifier))
	fmt.Println(err)
	// Output:
	// true
	// invalid identifier. no sound loaded named 'missing'
}
