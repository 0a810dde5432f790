// SPDX-License-Identifier: EPL-2.0

package sfxpool

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/config"
	"github.com/ik5/sfxpool/formats"
	"github.com/ik5/sfxpool/internal/log"
	"github.com/ik5/sfxpool/output/otograph"
	"github.com/ik5/sfxpool/playback"
)

// Player is a Coordinator bound to an output graph built from a Config.
type Player struct {
	*playback.Coordinator

	cfg *config.Config
}

// Open creates a Player playing through the default oto output device. It
// configures the shared logger at cfg.LogLevel. New leaves logging alone.
func Open(cfg *config.Config, opts ...playback.Option) (*Player, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Init(cfg.LogLevel)

	graph, err := otograph.New(cfg.Format(),
		otograph.WithBufferSize(cfg.BufferSize),
		otograph.WithLogger(log.Logger()),
	)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}

	return New(cfg, graph, opts...)
}

// New creates a Player on top of graph.
func New(cfg *config.Config, graph playback.Graph, opts ...playback.Option) (*Player, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	kind, err := formats.ParseKind(cfg.Container)
	if err != nil {
		return nil, err
	}

	base := []playback.Option{
		playback.WithPoolSize(cfg.StartingVoices, cfg.MaxVoices),
		playback.WithContainerFormat(kind),
	}

	return &Player{
		Coordinator: playback.New(graph, append(base, opts...)...),
		cfg:         cfg,
	}, nil
}

// Config returns the configuration the player was created with.
func (p *Player) Config() *config.Config { return p.cfg }

// PreloadManifest loads every sound of m concurrently. The first failure
// cancels the remaining loads and is returned.
func (p *Player) PreloadManifest(ctx context.Context, m *config.Manifest) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, s := range m.Sounds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return p.PreloadFile(s.ID, s.Path)
		})
	}

	return g.Wait()
}

// LoadFile parses the sound file at path according to its extension.
func LoadFile(path string) (*audio.DecodedAudio, error) {
	return formats.ParseFile(path)
}
