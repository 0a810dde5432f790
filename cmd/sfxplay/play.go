package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ik5/sfxpool"
	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/config"
)

type playCmd struct {
	Manifest string        `help:"Sound bank manifest." type:"existingfile" short:"m"`
	Sound    []string      `help:"Sound ids from the manifest to play. Defaults to every sound." short:"s"`
	Repeat   int           `help:"Times to play each sound." default:"1"`
	Gap      time.Duration `help:"Delay between play requests." default:"50ms"`
	Volume   float32       `help:"Volume for files given as arguments." default:"1"`
	Overlap  bool          `help:"Allow files given as arguments to overlap themselves."`
	Files    []string      `arg:"" optional:"" name:"file" help:"WAV files to play." type:"existingfile"`
}

func (c *playCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	bank, err := c.bank()
	if err != nil {
		return err
	}

	p, err := sfxpool.Open(cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.PreloadManifest(context.Background(), bank); err != nil {
		return err
	}

	sounds, err := c.selection(bank)
	if err != nil {
		return err
	}

	return c.playAll(p, sounds)
}

// bank builds the manifest to preload from the flags.
func (c *playCmd) bank() (*config.Manifest, error) {
	if c.Manifest != "" {
		if len(c.Files) > 0 {
			return nil, fmt.Errorf("--manifest cannot be combined with file arguments")
		}
		return config.LoadManifest(c.Manifest)
	}

	m := &config.Manifest{}
	for _, path := range c.Files {
		volume := c.Volume
		m.Sounds = append(m.Sounds, config.Sound{
			ID:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Path:    path,
			Volume:  &volume,
			Overlap: c.Overlap,
		})
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *playCmd) selection(m *config.Manifest) ([]config.Sound, error) {
	if len(c.Sound) == 0 {
		return m.Sounds, nil
	}

	sounds := make([]config.Sound, 0, len(c.Sound))
	for _, id := range c.Sound {
		s, ok := m.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("sound %q is not in the manifest", id)
		}
		sounds = append(sounds, s)
	}
	return sounds, nil
}

// playAll issues every request and waits for the callbacks. Dropped
// requests never call back, so the wait is bounded by the longest sound.
func (c *playCmd) playAll(p *sfxpool.Player, sounds []config.Sound) error {
	repeat := max(c.Repeat, 1)

	var longest time.Duration
	for _, s := range sounds {
		if sound, found := p.Lookup(s.ID); found {
			longest = max(longest, length(sound))
		}
	}

	var (
		mu      sync.Mutex
		pending = repeat * len(sounds)
	)
	finished := make(chan struct{})

	for range repeat {
		for _, s := range sounds {
			p.Play(s.ID, s.Gain(), s.Overlap, func(err error) {
				if err != nil {
					printError(err.Error())
				} else {
					fmt.Println(okStyle.Render("played") + " " + s.ID)
				}

				mu.Lock()
				defer mu.Unlock()
				pending--
				if pending == 0 {
					close(finished)
				}
			})

			time.Sleep(c.Gap)
		}
	}

	select {
	case <-finished:
	case <-time.After(longest + time.Second):
		mu.Lock()
		dropped := pending
		mu.Unlock()
		fmt.Println(field("dropped", dropped))
	}
	return nil
}

func length(s *audio.Sound) time.Duration {
	rate := s.Buffer.Format.SampleRate
	if rate == 0 {
		return 0
	}
	return time.Duration(s.Buffer.Frames) * time.Second / time.Duration(rate)
}
