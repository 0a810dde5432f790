// SPDX-License-Identifier: EPL-2.0

package otograph

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/internal/log"
	"github.com/ik5/sfxpool/voice"
)

const (
	// DefaultPollInterval is how often a player is checked for completion.
	DefaultPollInterval = 5 * time.Millisecond
	// DefaultBufferSize is the oto device buffer. Zero lets oto decide.
	DefaultBufferSize = 0
)

// Option configures a Graph.
type Option interface {
	apply(*Graph)
}

type optionFunc func(*Graph)

func (f optionFunc) apply(g *Graph) { f(g) }

// WithLogger sets the logger used for player and context errors.
func WithLogger(l logrus.FieldLogger) Option {
	return optionFunc(func(g *Graph) { g.log = l })
}

// WithPollInterval sets how often players are polled for completion.
func WithPollInterval(d time.Duration) Option {
	return optionFunc(func(g *Graph) {
		if d > 0 {
			g.poll = d
		}
	})
}

// WithBufferSize sets the device buffer duration passed to oto.
func WithBufferSize(d time.Duration) Option {
	return optionFunc(func(g *Graph) { g.bufferSize = d })
}

// Graph plays voice buffers through the shared oto context.
type Graph struct {
	format     audio.Format
	poll       time.Duration
	bufferSize time.Duration
	log        logrus.FieldLogger

	mu      sync.Mutex
	ctx     *oto.Context
	running bool
	stop    chan struct{}

	players sync.WaitGroup
}

// New creates a graph for format. Only 8-bit unsigned and 16-bit signed
// integer PCM can be played.
func New(format audio.Format, opts ...Option) (*Graph, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if _, err := sampleFormat(format.BitDepth); err != nil {
		return nil, err
	}

	g := &Graph{
		format:     format,
		poll:       DefaultPollInterval,
		bufferSize: DefaultBufferSize,
		log:        log.Logger(),
	}
	for _, opt := range opts {
		opt.apply(g)
	}

	return g, nil
}

// Format returns the output format of the graph.
func (g *Graph) Format() audio.Format { return g.format }

func (g *Graph) NewNode() voice.Node {
	return &node{graph: g, volume: 1}
}

// Attach connects n using f. f must match the graph format because the
// graph performs no conversion.
func (g *Graph) Attach(n voice.Node, f audio.Format) error {
	nd, ok := n.(*node)
	if !ok || nd.graph != g {
		return ErrForeignNode
	}

	if !sameLayout(g.format, f) {
		return fmt.Errorf("%w: graph %s, sound %s", audio.ErrFormatMismatch, g.format, f)
	}

	nd.mu.Lock()
	nd.attached = true
	nd.mu.Unlock()
	return nil
}

// Start opens the shared oto context on first use. A context suspended by
// an earlier Stop, from this graph or another one, is resumed.
func (g *Graph) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return nil
	}

	if g.ctx == nil {
		ctx, err := sharedContext(g.format, g.bufferSize)
		if err != nil {
			return err
		}
		g.ctx = ctx
	}

	if err := shared.lease.acquire(g.ctx); err != nil {
		return err
	}

	g.running = true
	g.stop = make(chan struct{})
	return nil
}

// Stop pauses every active player without notifying its voice. The shared
// context is suspended once no graph is running on it.
func (g *Graph) Stop() error {
	g.mu.Lock()
	if !g.running {
		g.mu.Unlock()
		return nil
	}
	g.running = false
	close(g.stop)
	ctx := g.ctx
	g.mu.Unlock()

	g.players.Wait()

	if err := ctx.Err(); err != nil {
		g.log.WithError(err).Error("output context failed")
	}

	return shared.lease.release(ctx)
}

// track registers a new player poller. It fails once the graph is stopped.
func (g *Graph) track() (*oto.Context, <-chan struct{}, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.running {
		return nil, nil, ErrNotRunning
	}
	g.players.Add(1)
	return g.ctx, g.stop, nil
}

type node struct {
	graph *Graph

	mu       sync.Mutex
	volume   float64
	attached bool
	buf      *audio.PlaybackBuffer
	done     func()
	player   *oto.Player
}

func (n *node) SetVolume(v float32) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.volume = float64(v)
	if n.player != nil {
		n.player.SetVolume(n.volume)
	}
}

func (n *node) Schedule(buf *audio.PlaybackBuffer, done func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.buf = buf
	n.done = done
}

func (n *node) Play() {
	n.mu.Lock()
	buf, done := n.buf, n.done
	n.buf, n.done = nil, nil
	volume := n.volume
	n.mu.Unlock()

	if buf == nil {
		return
	}

	ctx, stop, err := n.graph.track()
	if err != nil {
		n.graph.log.WithError(err).Error("playback scheduled on a stopped graph")
		return
	}

	player := ctx.NewPlayer(bytes.NewReader(buf.Data))
	player.SetVolume(volume)

	n.mu.Lock()
	n.player = player
	n.mu.Unlock()

	player.Play()

	go n.wait(player, stop, done)
}

func (n *node) wait(player *oto.Player, stop <-chan struct{}, done func()) {
	defer n.graph.players.Done()

	ticker := time.NewTicker(n.graph.poll)
	defer ticker.Stop()

	finished := false
	for !finished {
		select {
		case <-stop:
			player.Pause()
			n.release(player)
			return
		case <-ticker.C:
			finished = !player.IsPlaying()
		}
	}

	if err := player.Err(); err != nil {
		n.graph.log.WithError(err).Warn("player failed")
	}
	n.release(player)
	done()
}

func (n *node) release(player *oto.Player) {
	n.mu.Lock()
	if n.player == player {
		n.player = nil
	}
	n.mu.Unlock()

	if err := player.Close(); err != nil {
		n.graph.log.WithError(err).Debug("closing player")
	}
}
