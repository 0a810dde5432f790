// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"sync"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/utils"
)

// Node is one output graph node as seen by a Voice. Implementations are
// provided by the output backend.
type Node interface {
	// SetVolume sets the node gain in [0,1].
	SetVolume(v float32)
	// Schedule queues buf for playback. done must be called once the buffer
	// has been played back, from any goroutine. It is not called when the
	// graph is torn down first.
	Schedule(buf *audio.PlaybackBuffer, done func())
	// Play starts the node.
	Play()
}

// Status is the playback status of a voice.
type Status int

const (
	Idle Status = iota
	Playing
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	}
	return "unknown"
}

// Voice is a reusable playback unit. Status and sound are guarded by the
// owning Pool.
type Voice struct {
	index int
	node  Node

	status Status
	sound  audio.SoundID

	volume *utils.AtomicFloat32
}

func newVoice(index int, node Node) *Voice {
	return &Voice{
		index:  index,
		node:   node,
		volume: utils.NewAtomicFloat32(1),
	}
}

// Index is the position of the voice in its pool.
func (v *Voice) Index() int { return v.index }

// Node returns the output node owned by the voice.
func (v *Voice) Node() Node { return v.node }

// Volume returns the volume of the current or last playback.
func (v *Voice) Volume() float32 { return v.volume.Load() }

// Start schedules buf on the node at volume and starts it. The returned
// channel is closed exactly once, when the node reports the buffer has been
// played back, even if the node reports completion more than once.
//
// The caller must hold the voice through Pool.Acquire.
func (v *Voice) Start(buf *audio.PlaybackBuffer, volume float32) <-chan struct{} {
	done := make(chan struct{})
	var once sync.Once

	volume = utils.ClampVolume(volume)
	v.volume.Store(volume)
	v.node.SetVolume(volume)
	v.node.Schedule(buf, func() {
		once.Do(func() { close(done) })
	})
	v.node.Play()

	return done
}

// State is a point-in-time copy of a voice's status.
type State struct {
	Index  int
	Status Status
	Sound  audio.SoundID
	Volume float32
}
