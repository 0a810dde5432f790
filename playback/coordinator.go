// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/formats"
	"github.com/ik5/sfxpool/formats/wav"
	"github.com/ik5/sfxpool/internal/log"
	"github.com/ik5/sfxpool/voice"
)

// Graph is the output graph capability the coordinator needs. It is shared
// by every voice and outlives individual playbacks.
type Graph interface {
	// NewNode creates an output node for a new voice.
	NewNode() voice.Node
	// Attach attaches n to the graph if needed and connects it using f.
	Attach(n voice.Node, f audio.Format) error
	// Start starts the engine. Calling it on a running engine is a no-op.
	Start() error
	// Stop tears the engine down. Pending completions are discarded.
	Stop() error
}

// Coordinator receives play requests, applies the overlap policy and drives
// voices from the pool against the shared graph.
//
// It is safe to call methods on Coordinator from multiple goroutines.
type Coordinator struct {
	graph    Graph
	registry *audio.SoundRegistry
	pool     *voice.Pool
	parser   audio.Parser
	log      logrus.FieldLogger

	startingVoices int
	maxVoices      int

	mu     sync.Mutex
	closed bool

	dispatches sync.WaitGroup
	waiters    sync.WaitGroup
	teardown   chan struct{}
}

// New creates a coordinator playing through graph.
func New(graph Graph, opts ...Option) *Coordinator {
	c := &Coordinator{
		graph:          graph,
		registry:       audio.NewSoundRegistry(),
		parser:         wav.Parser{},
		log:            log.Logger(),
		startingVoices: voice.DefaultStartingVoices,
		maxVoices:      voice.DefaultMaxVoices,
		teardown:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt.apply(c)
	}

	c.pool = voice.NewPool(graph.NewNode, c.startingVoices, c.maxVoices,
		voice.WithGrowHook(func(size int) {
			c.log.WithField("voices", size).Debug("voice pool grew")
		}),
	)

	return c
}

// Register makes decoded playable under id, replacing any previous sound.
// A nil decoded removes the mapping.
func (c *Coordinator) Register(id audio.SoundID, decoded *audio.DecodedAudio) error {
	if decoded == nil {
		c.registry.Set(id, nil)
		return nil
	}

	if err := decoded.Format().Validate(); err != nil {
		return fmt.Errorf("register %q: %w", id, err)
	}

	decoded = decoded.TrimToFrames()
	buf, err := audio.ToPlaybackBuffer(decoded, decoded.Format())
	if err != nil {
		return fmt.Errorf("register %q: %w: %w", id, ErrAudioLoading, err)
	}

	c.registry.Set(id, &audio.Sound{ID: id, Audio: decoded, Buffer: buf})
	return nil
}

// Preload parses data with the configured parser and registers the result.
func (c *Coordinator) Preload(id audio.SoundID, data []byte) error {
	decoded, err := c.parser.Parse(data)
	if err != nil {
		return fmt.Errorf("preload %q: %w", id, err)
	}

	return c.Register(id, decoded)
}

// PreloadFile reads a sound from path. The path must carry a supported
// container extension.
func (c *Coordinator) PreloadFile(id audio.SoundID, path string) error {
	if _, err := formats.ForExtension(path); err != nil {
		return fmt.Errorf("preload %q: %w", id, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("preload %q: %w", id, err)
	}

	return c.Preload(id, data)
}

// Unload removes the sound registered under id.
func (c *Coordinator) Unload(id audio.SoundID) {
	c.registry.Set(id, nil)
}

// Play dispatches a play request to a background goroutine and returns
// immediately.
//
// onComplete is called at most once:
//   - with an *IdentifierError when no sound is registered under id,
//   - with ErrClosed when the coordinator is closed,
//   - with nil once the sound has played back.
//
// It is never called when the request is dropped: allowOverlap is false and
// id is already playing, the pool is saturated, or the engine failed to
// start (which is logged). Dropped requests are not retried. onComplete may
// call Close.
func (c *Coordinator) Play(id audio.SoundID, volume float32, allowOverlap bool, onComplete func(error)) {
	if onComplete == nil {
		onComplete = func(error) {}
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		onComplete(ErrClosed)
		return
	}
	c.dispatches.Add(1)
	c.mu.Unlock()

	go func() {
		notify := c.perform(request{
			id:           id,
			requestID:    uuid.NewString(),
			volume:       volume,
			allowOverlap: allowOverlap,
			onComplete:   onComplete,
		})
		c.dispatches.Done()

		// Outside the tracked section so onComplete may call Close.
		if notify != nil {
			notify()
		}
	}()
}

type request struct {
	id           audio.SoundID
	requestID    string
	volume       float32
	allowOverlap bool
	onComplete   func(error)
}

// perform runs a request up to the point the playback is scheduled. It
// returns the callback to run once the dispatch is no longer tracked, or nil.
func (c *Coordinator) perform(req request) func() {
	entry := c.log.WithFields(logrus.Fields{
		"request_id": req.requestID,
		"sound":      req.id,
	})

	sound, ok := c.registry.Get(req.id)
	if !ok {
		return func() { req.onComplete(&IdentifierError{ID: req.id}) }
	}

	v, err := c.pool.Acquire(req.id, req.allowOverlap)
	switch {
	case errors.Is(err, voice.ErrDuplicate):
		entry.Debug("sound already playing, request dropped")
		return nil
	case errors.Is(err, voice.ErrSaturated):
		entry.WithField("voices", c.pool.Len()).Warn("voice pool saturated, request dropped")
		return nil
	case err != nil:
		entry.WithError(err).Error("voice acquisition failed")
		return nil
	}

	entry = entry.WithField("voice", v.Index())

	if err := c.graph.Attach(v.Node(), sound.Format()); err != nil {
		c.pool.Release(v)
		entry.WithError(err).Error("attaching voice to output graph failed")
		return nil
	}

	if err := c.graph.Start(); err != nil {
		c.pool.Release(v)
		entry.WithError(fmt.Errorf("%w: %w", ErrEngineStart, err)).Error("output engine failed to start")
		return nil
	}

	done := v.Start(sound.Buffer, req.volume)
	entry.Debug("playback started")

	c.waiters.Add(1)
	go c.wait(v, done, req.onComplete)

	return nil
}

// wait releases v once its playback completes or the coordinator is torn
// down. A playback that has completed always calls back, even when teardown
// is also ready. onComplete runs after the waiter stops being tracked.
func (c *Coordinator) wait(v *voice.Voice, done <-chan struct{}, onComplete func(error)) {
	completed := func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}

	finished := completed()
	if !finished {
		select {
		case <-done:
			finished = true
		case <-c.teardown:
			finished = completed()
		}
	}

	c.pool.Release(v)
	c.waiters.Done()

	if finished {
		onComplete(nil)
	}
}

// Lookup returns the sound registered under id.
func (c *Coordinator) Lookup(id audio.SoundID) (*audio.Sound, bool) {
	return c.registry.Get(id)
}

// IsSoundPlaying reports whether any voice is currently playing id.
func (c *Coordinator) IsSoundPlaying(id audio.SoundID) bool {
	return c.pool.IsSoundPlaying(id)
}

// Stats is a snapshot of the coordinator state.
type Stats struct {
	Voices    int
	MaxVoices int
	Playing   int
	Sounds    int
}

func (c *Coordinator) Stats() Stats {
	return Stats{
		Voices:    c.pool.Len(),
		MaxVoices: c.pool.Max(),
		Playing:   c.pool.Playing(),
		Sounds:    c.registry.Len(),
	}
}

// Voices returns a snapshot of every voice.
func (c *Coordinator) Voices() []voice.State {
	return c.pool.Snapshot()
}

// Close stops accepting requests, waits for dispatched requests to reach the
// graph and stops it. Playbacks cut short by the teardown fire no callback.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.dispatches.Wait()
	close(c.teardown)
	c.waiters.Wait()

	if err := c.graph.Stop(); err != nil {
		return fmt.Errorf("stopping output graph: %w", err)
	}
	return nil
}
