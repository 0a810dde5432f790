// SPDX-License-Identifier: EPL-2.0

package playback_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/formats"
	"github.com/ik5/sfxpool/internal/audiotest"
	"github.com/ik5/sfxpool/playback"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// results collects every onComplete invocation.
type results struct {
	mu   sync.Mutex
	errs []error
}

func (r *results) callback() func(error) {
	return func(err error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.errs = append(r.errs, err)
	}
}

func (r *results) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

func (r *results) all() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

func newCoordinator(t *testing.T, graph *audiotest.Graph, opts ...playback.Option) (*playback.Coordinator, *logtest.Hook) {
	t.Helper()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	c := playback.New(graph, append([]playback.Option{playback.WithLogger(logger)}, opts...)...)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Register("click", audiotest.Decoded(audiotest.CD, 441)))
	return c, hook
}

func countEntries(hook *logtest.Hook, level logrus.Level, msg string) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == level && e.Message == msg {
			n++
		}
	}
	return n
}

func TestPlay_NonOverlapConcurrent(t *testing.T) {
	t.Parallel()

	const requests = 20

	graph := audiotest.NewGraph()
	c, hook := newCoordinator(t, graph)

	var res results
	var wg sync.WaitGroup
	for range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Play("click", 1, false, res.callback())
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return countEntries(hook, logrus.DebugLevel, "sound already playing, request dropped") == requests-1
	}, waitFor, tick)
	assert.Equal(t, 1, graph.Pending())

	require.Equal(t, 1, graph.CompleteAll())
	require.Eventually(t, func() bool { return res.count() == 1 }, waitFor, tick)
	assert.NoError(t, res.all()[0])
	assert.False(t, c.IsSoundPlaying("click"))
}

func TestPlay_Overlap(t *testing.T) {
	t.Parallel()

	const requests = 5

	graph := audiotest.NewGraph(audiotest.WithAutoComplete())
	c, _ := newCoordinator(t, graph)

	var res results
	for range requests {
		c.Play("click", 0.5, true, res.callback())
	}

	require.Eventually(t, func() bool { return res.count() == requests }, waitFor, tick)
	for _, err := range res.all() {
		assert.NoError(t, err)
	}
}

func TestPlay_OverlapPlaysConcurrently(t *testing.T) {
	t.Parallel()

	graph := audiotest.NewGraph()
	c, _ := newCoordinator(t, graph)

	var res results
	for range 3 {
		c.Play("click", 1, true, res.callback())
	}

	require.Eventually(t, func() bool { return graph.Pending() == 3 }, waitFor, tick)
	assert.Equal(t, 3, c.Stats().Playing)

	graph.CompleteAll()
	require.Eventually(t, func() bool { return res.count() == 3 }, waitFor, tick)
	assert.Equal(t, 0, c.Stats().Playing)
}

func TestPlay_Saturated(t *testing.T) {
	t.Parallel()

	graph := audiotest.NewGraph()
	c, hook := newCoordinator(t, graph, playback.WithPoolSize(2, 2))

	var res results
	for range 3 {
		c.Play("click", 1, true, res.callback())
	}

	require.Eventually(t, func() bool {
		return graph.Pending() == 2 &&
			countEntries(hook, logrus.WarnLevel, "voice pool saturated, request dropped") == 1
	}, waitFor, tick)
	assert.Equal(t, 2, c.Stats().Voices)
	assert.Equal(t, 0, res.count())

	graph.CompleteAll()
	require.Eventually(t, func() bool { return res.count() == 2 }, waitFor, tick)
	assert.Never(t, func() bool { return res.count() > 2 }, 50*time.Millisecond, tick)
}

func TestPlay_PoolGrowsByOne(t *testing.T) {
	t.Parallel()

	graph := audiotest.NewGraph()
	c, _ := newCoordinator(t, graph, playback.WithPoolSize(1, 3))
	require.Equal(t, 1, c.Stats().Voices)

	for i := range 3 {
		c.Play("click", 1, true, nil)
		require.Eventually(t, func() bool { return graph.Pending() == i+1 }, waitFor, tick)
		assert.Equal(t, i+1, c.Stats().Voices)
	}

	graph.CompleteAll()
	require.Eventually(t, func() bool { return c.Stats().Playing == 0 }, waitFor, tick)
	assert.Equal(t, 3, c.Stats().Voices, "pool never shrinks")
}

func TestPlay_ReusesIdleVoice(t *testing.T) {
	t.Parallel()

	graph := audiotest.NewGraph(audiotest.WithAutoComplete())
	c, _ := newCoordinator(t, graph, playback.WithPoolSize(1, 4))

	for range 5 {
		var res results
		c.Play("click", 1, false, res.callback())
		require.Eventually(t, func() bool { return res.count() == 1 }, waitFor, tick)
	}

	assert.Equal(t, 1, c.Stats().Voices)
	assert.Equal(t, 5, graph.Nodes()[0].Plays())
}

func TestPlay_UnknownIdentifier(t *testing.T) {
	t.Parallel()

	graph := audiotest.NewGraph()
	c, _ := newCoordinator(t, graph)

	var res results
	c.Play("missing", 1, false, res.callback())

	require.Eventually(t, func() bool { return res.count() == 1 }, waitFor, tick)
	err := res.all()[0]
	require.ErrorIs(t, err, playback.ErrInvalidIdentifier)

	var idErr *playback.IdentifierError
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, "missing", idErr.ID)
	assert.Equal(t, "invalid identifier. no sound loaded named 'missing'", err.Error())
	assert.Zero(t, graph.Attaches())
}

func TestPlay_Deregistered(t *testing.T) {
	t.Parallel()

	graph := audiotest.NewGraph()
	c, _ := newCoordinator(t, graph)

	require.NoError(t, c.Register("click", nil))

	var res results
	c.Play("click", 1, false, res.callback())

	require.Eventually(t, func() bool { return res.count() == 1 }, waitFor, tick)
	assert.ErrorIs(t, res.all()[0], playback.ErrInvalidIdentifier)
	assert.Zero(t, c.Stats().Sounds)
}

func TestPlay_EngineStartFailure(t *testing.T) {
	t.Parallel()

	graph := audiotest.NewGraph(audiotest.WithStartError(errors.New("device busy")))
	c, hook := newCoordinator(t, graph)

	var res results
	c.Play("click", 1, false, res.callback())

	require.Eventually(t, func() bool {
		return countEntries(hook, logrus.ErrorLevel, "output engine failed to start") == 1
	}, waitFor, tick)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.ErrorIs(t, entry.Data[logrus.ErrorKey].(error), playback.ErrEngineStart)
	assert.Equal(t, "click", entry.Data["sound"])
	assert.NotEmpty(t, entry.Data["request_id"])

	assert.Never(t, func() bool { return res.count() > 0 }, 50*time.Millisecond, tick)
	assert.Equal(t, 0, c.Stats().Playing, "voice must be released")
	assert.False(t, c.IsSoundPlaying("click"))
}

func TestPlay_AttachFailure(t *testing.T) {
	t.Parallel()

	graph := audiotest.NewGraph(audiotest.WithAttachError(errors.New("no route")))
	c, hook := newCoordinator(t, graph)

	var res results
	c.Play("click", 1, false, res.callback())

	require.Eventually(t, func() bool {
		return countEntries(hook, logrus.ErrorLevel, "attaching voice to output graph failed") == 1
	}, waitFor, tick)
	assert.Zero(t, graph.Starts())
	assert.Equal(t, 0, c.Stats().Playing)
	assert.Equal(t, 0, res.count())
}

func TestPlay_DoubleFireCallsOnce(t *testing.T) {
	t.Parallel()

	graph := audiotest.NewGraph(audiotest.WithAutoComplete(), audiotest.WithDoubleFire())
	c, _ := newCoordinator(t, graph)

	var res results
	c.Play("click", 1, false, res.callback())

	require.Eventually(t, func() bool { return res.count() == 1 }, waitFor, tick)
	assert.Never(t, func() bool { return res.count() > 1 }, 50*time.Millisecond, tick)
}

func TestPlay_IdleBeforeCallback(t *testing.T) {
	t.Parallel()

	graph := audiotest.NewGraph(audiotest.WithAutoComplete())
	c, _ := newCoordinator(t, graph)

	playingInCallback := make(chan bool, 1)
	c.Play("click", 1, false, func(err error) {
		playingInCallback <- c.IsSoundPlaying("click")
	})

	select {
	case playing := <-playingInCallback:
		assert.False(t, playing, "voice must be idle when onComplete runs")
	case <-time.After(waitFor):
		t.Fatal("onComplete was not called")
	}
}

func TestPlay_Volume(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		volume float32
		want   float32
	}{
		{name: "in range", volume: 0.25, want: 0.25},
		{name: "above one", volume: 1.7, want: 1},
		{name: "negative", volume: -0.5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			graph := audiotest.NewGraph()
			c, _ := newCoordinator(t, graph, playback.WithPoolSize(1, 1))

			c.Play("click", tt.volume, false, nil)
			require.Eventually(t, func() bool { return graph.Pending() == 1 }, waitFor, tick)

			node := graph.Nodes()[0]
			assert.InDelta(t, tt.want, node.Volume(), 1e-6)
			assert.InDelta(t, tt.want, c.Voices()[0].Volume, 1e-6)
			assert.True(t, node.Attached())
			assert.Equal(t, audiotest.CD, node.Format())
		})
	}
}

func TestClose(t *testing.T) {
	t.Parallel()

	graph := audiotest.NewGraph()
	c, _ := newCoordinator(t, graph)

	var playing results
	c.Play("click", 1, false, playing.callback())
	require.Eventually(t, func() bool { return graph.Pending() == 1 }, waitFor, tick)

	require.NoError(t, c.Close())
	assert.True(t, graph.Stopped())
	assert.Equal(t, 0, playing.count(), "teardown fires no callback")

	var res results
	c.Play("click", 1, false, res.callback())
	require.Equal(t, 1, res.count(), "ErrClosed is delivered inline")
	assert.ErrorIs(t, res.all()[0], playback.ErrClosed)

	assert.NoError(t, c.Close())
}

func TestClose_FromCallback(t *testing.T) {
	t.Parallel()

	graph := audiotest.NewGraph(audiotest.WithAutoComplete())
	c, _ := newCoordinator(t, graph)

	closed := make(chan error, 1)
	c.Play("click", 1, false, func(error) { closed <- c.Close() })

	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("Close called from onComplete did not return")
	}
	assert.True(t, graph.Stopped())
}

func TestClose_FromIdentifierCallback(t *testing.T) {
	t.Parallel()

	c, _ := newCoordinator(t, audiotest.NewGraph())

	closed := make(chan error, 1)
	c.Play("missing", 1, false, func(error) { closed <- c.Close() })

	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("Close called from onComplete did not return")
	}
}

func TestClose_CompletedPlaybackCallsBack(t *testing.T) {
	t.Parallel()

	const rounds = 50

	for range rounds {
		graph := audiotest.NewGraph()
		c := playback.New(graph)
		require.NoError(t, c.Register("click", audiotest.Decoded(audiotest.CD, 441)))

		var res results
		c.Play("click", 1, false, res.callback())
		require.Eventually(t, func() bool { return graph.Pending() == 1 }, waitFor, tick)

		// Playback is over before teardown starts.
		require.True(t, graph.Finish())
		require.NoError(t, c.Close())

		require.Eventually(t, func() bool { return res.count() == 1 }, waitFor, tick)
		assert.NoError(t, res.all()[0])
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		decoded *audio.DecodedAudio
		wantErr error
	}{
		{
			name:    "cd quality",
			decoded: audiotest.Decoded(audiotest.CD, 10),
		},
		{
			name:    "invalid bit depth",
			decoded: &audio.DecodedAudio{SampleRate: 8000, BitDepth: 12, Channels: 1, SampleBytes: make([]byte, 10)},
			wantErr: audio.ErrInvalidBitDepth,
		},
		{
			name:    "zero channels",
			decoded: &audio.DecodedAudio{SampleRate: 8000, BitDepth: 16, SampleBytes: make([]byte, 10)},
			wantErr: audio.ErrInvalidChannels,
		},
		{
			name:    "no whole frame",
			decoded: &audio.DecodedAudio{SampleRate: 44100, BitDepth: 16, Channels: 2, SampleBytes: make([]byte, 3)},
			wantErr: playback.ErrAudioLoading,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := playback.New(audiotest.NewGraph())
			defer c.Close()

			err := c.Register("sound", tt.decoded)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, c.Stats().Sounds)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, c.Stats().Sounds)
		})
	}
}

func TestPreload(t *testing.T) {
	t.Parallel()

	graph := audiotest.NewGraph(audiotest.WithAutoComplete())
	c, _ := newCoordinator(t, graph)

	data := audiotest.WAV(audiotest.CD, audiotest.Sine16(44100, 2, 100, 440))
	require.NoError(t, c.Preload("tone", data))

	var res results
	c.Play("tone", 1, false, res.callback())
	require.Eventually(t, func() bool { return res.count() == 1 }, waitFor, tick)
	assert.NoError(t, res.all()[0])

	err := c.Preload("broken", []byte("not a wav file"))
	assert.Error(t, err)

	c.Unload("tone")
	assert.Equal(t, 1, c.Stats().Sounds)
	_, ok := c.Lookup("tone")
	assert.False(t, ok)
}

func TestRegister_TrimsPartialFrame(t *testing.T) {
	t.Parallel()

	c := playback.New(audiotest.NewGraph())
	defer c.Close()

	decoded := &audio.DecodedAudio{SampleRate: 44100, BitDepth: 16, Channels: 2, SampleBytes: make([]byte, 11)}
	require.NoError(t, c.Register("odd", decoded))

	sound, ok := c.Lookup("odd")
	require.True(t, ok)
	assert.Len(t, sound.Audio.SampleBytes, 8)
	assert.Equal(t, 2, sound.Buffer.Frames)
	assert.Len(t, decoded.SampleBytes, 11, "caller's audio is left untouched")
}

func TestPreloadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "beep.wav")
	require.NoError(t, os.WriteFile(path, audiotest.WAV(audiotest.CD, make([]byte, 400)), 0o600))

	c := playback.New(audiotest.NewGraph(), playback.WithContainerFormat(formats.WAVStrict))
	defer c.Close()

	require.NoError(t, c.PreloadFile("beep", path))
	assert.Equal(t, 1, c.Stats().Sounds)

	err := c.PreloadFile("beep", filepath.Join(dir, "beep.mp3"))
	assert.ErrorIs(t, err, formats.ErrUnsupportedContainer)

	err = c.PreloadFile("gone", filepath.Join(dir, "gone.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
