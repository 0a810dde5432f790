// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"sync"

	"github.com/ik5/sfxpool/audio"
)

const (
	// DefaultStartingVoices is the number of voices created up front.
	DefaultStartingVoices = 8
	// DefaultMaxVoices is the hard cap on concurrent playbacks. Requests
	// beyond it are dropped, not queued.
	DefaultMaxVoices = 48
)

// PoolOption configures a Pool.
type PoolOption interface {
	apply(*Pool)
}

type growHookOption struct {
	fn func(size int)
}

func (o growHookOption) apply(p *Pool) {
	p.onGrow = o.fn
}

// WithGrowHook sets a callback invoked, under the pool lock, each time the
// pool allocates a new voice. size is the new pool size.
func WithGrowHook(fn func(size int)) PoolOption {
	return growHookOption{fn: fn}
}

// Pool owns a growable set of voices bounded by [starting, max]. One mutex
// guards the voice slice and every voice status.
//
// Scans are linear in the pool size, which stays small.
type Pool struct {
	newNode func() Node
	max     int
	onGrow  func(size int)

	mu     sync.Mutex
	voices []*Voice
}

// NewPool creates starting voices using newNode. A non-positive starting
// count falls back to DefaultStartingVoices and max is raised to at least
// starting.
func NewPool(newNode func() Node, starting, max int, opts ...PoolOption) *Pool {
	if starting <= 0 {
		starting = DefaultStartingVoices
	}
	if max < starting {
		max = starting
	}

	p := &Pool{
		newNode: newNode,
		max:     max,
		voices:  make([]*Voice, 0, max),
	}
	for _, opt := range opts {
		opt.apply(p)
	}

	for i := range starting {
		p.voices = append(p.voices, newVoice(i, newNode()))
	}

	return p
}

// AcquireIdleVoice returns the first idle voice, growing the pool by one
// voice if none is idle and the pool is below its maximum. The voice is
// marked Playing for id before the lock is released. It returns nil when
// the pool is saturated.
func (p *Pool) AcquireIdleVoice(id audio.SoundID) *Voice {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.claimLocked(id)
}

// IsSoundPlaying reports whether any voice is playing id.
func (p *Pool) IsSoundPlaying(id audio.SoundID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.playingLocked(id)
}

// Acquire is the overlap check and the voice claim in one critical section.
// With allowOverlap false it fails with ErrDuplicate if id is already
// playing. It fails with ErrSaturated when no voice can be claimed.
func (p *Pool) Acquire(id audio.SoundID, allowOverlap bool) (*Voice, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !allowOverlap && p.playingLocked(id) {
		return nil, ErrDuplicate
	}

	v := p.claimLocked(id)
	if v == nil {
		return nil, ErrSaturated
	}

	return v, nil
}

// Release returns v to Idle. It is the only Playing -> Idle transition.
func (p *Pool) Release(v *Voice) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v.status = Idle
	v.sound = ""
}

// Len returns the current number of voices.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.voices)
}

// Max returns the hard cap on the pool size.
func (p *Pool) Max() int { return p.max }

// Playing returns how many voices are currently playing.
func (p *Pool) Playing() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, v := range p.voices {
		if v.status == Playing {
			n++
		}
	}
	return n
}

// Snapshot copies the state of every voice.
func (p *Pool) Snapshot() []State {
	p.mu.Lock()
	defer p.mu.Unlock()

	states := make([]State, len(p.voices))
	for i, v := range p.voices {
		states[i] = State{
			Index:  v.index,
			Status: v.status,
			Sound:  v.sound,
			Volume: v.Volume(),
		}
	}
	return states
}

func (p *Pool) playingLocked(id audio.SoundID) bool {
	for _, v := range p.voices {
		if v.status == Playing && v.sound == id {
			return true
		}
	}
	return false
}

func (p *Pool) claimLocked(id audio.SoundID) *Voice {
	var v *Voice
	for _, candidate := range p.voices {
		if candidate.status == Idle {
			v = candidate
			break
		}
	}

	if v == nil {
		if len(p.voices) >= p.max {
			return nil
		}
		v = newVoice(len(p.voices), p.newNode())
		p.voices = append(p.voices, v)
		if p.onGrow != nil {
			p.onGrow(len(p.voices))
		}
	}

	v.status = Playing
	v.sound = id
	return v
}
