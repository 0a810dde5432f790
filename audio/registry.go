// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"sort"
	"sync"
)

// Sound is a registered sound: its decoded metadata and the buffer that is
// scheduled on a voice.
type Sound struct {
	ID     SoundID
	Audio  *DecodedAudio
	Buffer *PlaybackBuffer
}

// Format returns the native format the sound is played back with.
func (s *Sound) Format() Format { return s.Buffer.Format }

// SoundRegistry maps sound ids to sounds. It has its own lock, separate from
// any lock guarding voices.
type SoundRegistry struct {
	sounds map[SoundID]*Sound

	mtx *sync.Mutex
}

func NewSoundRegistry() *SoundRegistry {
	return &SoundRegistry{
		sounds: make(map[SoundID]*Sound),
		mtx:    &sync.Mutex{},
	}
}

// Set registers s under id, replacing any previous entry. A nil s removes the
// mapping.
func (r *SoundRegistry) Set(id SoundID, s *Sound) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if s == nil {
		delete(r.sounds, id)
		return
	}
	r.sounds[id] = s
}

func (r *SoundRegistry) Get(id SoundID) (*Sound, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	s, ok := r.sounds[id]
	return s, ok
}

func (r *SoundRegistry) Len() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return len(r.sounds)
}

// IDs returns the registered ids in sorted order.
func (r *SoundRegistry) IDs() []SoundID {
	r.mtx.Lock()
	ids := make([]SoundID, 0, len(r.sounds))
	for id := range r.sounds {
		ids = append(ids, id)
	}
	r.mtx.Unlock()

	sort.Strings(ids)
	return ids
}
