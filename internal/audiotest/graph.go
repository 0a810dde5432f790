// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"sync"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/voice"
)

// Graph is an in-memory output graph. Scheduled buffers complete only when
// the test calls Complete or CompleteAll, unless AutoComplete is set.
type Graph struct {
	mu sync.Mutex

	startErr     error
	attachErr    error
	autoComplete bool
	doubleFire   bool

	nodes    []*Node
	pending  []func()
	starts   int
	attaches int
	running  bool
	stopped  bool

	scheduled chan struct{}
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithStartError makes every Start call fail with err.
func WithStartError(err error) GraphOption {
	return func(g *Graph) { g.startErr = err }
}

// WithAttachError makes every Attach call fail with err.
func WithAttachError(err error) GraphOption {
	return func(g *Graph) { g.attachErr = err }
}

// WithAutoComplete completes each playback right away on a new goroutine.
func WithAutoComplete() GraphOption {
	return func(g *Graph) { g.autoComplete = true }
}

// WithDoubleFire makes completion invoke the done callback twice.
func WithDoubleFire() GraphOption {
	return func(g *Graph) { g.doubleFire = true }
}

func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{scheduled: make(chan struct{}, 1024)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Graph) NewNode() voice.Node {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := &Node{graph: g, volume: 1}
	g.nodes = append(g.nodes, n)
	return n
}

func (g *Graph) Attach(n voice.Node, f audio.Format) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.attachErr != nil {
		return g.attachErr
	}

	node := n.(*Node)
	node.mu.Lock()
	node.attached = true
	node.format = f
	node.mu.Unlock()
	g.attaches++
	return nil
}

func (g *Graph) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.starts++
	if g.startErr != nil {
		return g.startErr
	}
	g.running = true
	return nil
}

// Stop drops every pending completion, as a torn down engine would.
func (g *Graph) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.running = false
	g.stopped = true
	g.pending = nil
	return nil
}

// Scheduled is signalled once per scheduled playback.
func (g *Graph) Scheduled() <-chan struct{} { return g.scheduled }

// Pending returns the number of playbacks waiting for completion.
func (g *Graph) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

// Complete finishes the oldest pending playback on a new goroutine. It
// reports false when nothing is pending.
func (g *Graph) Complete() bool {
	g.mu.Lock()
	if len(g.pending) == 0 {
		g.mu.Unlock()
		return false
	}
	done := g.pending[0]
	g.pending = g.pending[1:]
	g.mu.Unlock()

	go done()
	return true
}

// Finish finishes the oldest pending playback before returning. It reports
// false when nothing is pending.
func (g *Graph) Finish() bool {
	g.mu.Lock()
	if len(g.pending) == 0 {
		g.mu.Unlock()
		return false
	}
	done := g.pending[0]
	g.pending = g.pending[1:]
	g.mu.Unlock()

	done()
	return true
}

// CompleteAll finishes every pending playback and returns how many there were.
func (g *Graph) CompleteAll() int {
	n := 0
	for g.Complete() {
		n++
	}
	return n
}

func (g *Graph) Starts() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.starts
}

func (g *Graph) Attaches() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attaches
}

func (g *Graph) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

func (g *Graph) Stopped() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stopped
}

// Nodes returns every node created so far.
func (g *Graph) Nodes() []*Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*Node(nil), g.nodes...)
}

func (g *Graph) schedule(done func()) {
	fire := done
	if g.doubleFire {
		fire = func() {
			done()
			done()
		}
	}

	g.mu.Lock()
	auto := g.autoComplete
	if !auto {
		g.pending = append(g.pending, fire)
	}
	g.mu.Unlock()

	select {
	case g.scheduled <- struct{}{}:
	default:
	}

	if auto {
		go fire()
	}
}

// Node is a fake output node.
type Node struct {
	graph *Graph

	mu       sync.Mutex
	volume   float32
	format   audio.Format
	attached bool
	plays    int
	last     *audio.PlaybackBuffer
}

func (n *Node) SetVolume(v float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.volume = v
}

func (n *Node) Schedule(buf *audio.PlaybackBuffer, done func()) {
	n.mu.Lock()
	n.last = buf
	n.mu.Unlock()

	n.graph.schedule(done)
}

func (n *Node) Play() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.plays++
}

func (n *Node) Volume() float32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.volume
}

func (n *Node) Plays() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.plays
}

func (n *Node) Attached() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.attached
}

// Last returns the most recently scheduled buffer.
func (n *Node) Last() *audio.PlaybackBuffer {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

// Format returns the format the node was last attached with.
func (n *Node) Format() audio.Format {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.format
}
