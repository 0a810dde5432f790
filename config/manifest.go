// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ik5/sfxpool/audio"
)

// Sound is one entry of a sound bank.
type Sound struct {
	ID      audio.SoundID `yaml:"id"`
	Path    string        `yaml:"path"`
	Volume  *float32      `yaml:"volume,omitempty"`
	Overlap bool          `yaml:"overlap"`
}

// Gain returns the entry volume, 1 when unset.
func (s Sound) Gain() float32 {
	if s.Volume == nil {
		return 1
	}
	return *s.Volume
}

// Manifest lists the sounds to preload.
//
//	sounds:
//	  - id: click
//	    path: ui/click.wav
//	  - id: explosion
//	    path: sfx/boom.wav
//	    volume: 0.8
//	    overlap: true
type Manifest struct {
	Sounds []Sound `yaml:"sounds"`
}

// LoadManifest reads a manifest. Relative sound paths are resolved against
// the directory of the manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i := range m.Sounds {
		if !filepath.IsAbs(m.Sounds[i].Path) {
			m.Sounds[i].Path = filepath.Join(base, m.Sounds[i].Path)
		}
	}

	return &m, nil
}

// Lookup returns the entry for id.
func (m *Manifest) Lookup(id audio.SoundID) (Sound, bool) {
	for _, s := range m.Sounds {
		if s.ID == id {
			return s, true
		}
	}
	return Sound{}, false
}

func (m *Manifest) Validate() error {
	if len(m.Sounds) == 0 {
		return ErrEmptyManifest
	}

	seen := make(map[audio.SoundID]struct{}, len(m.Sounds))
	for i, s := range m.Sounds {
		switch {
		case s.ID == "":
			return fmt.Errorf("%w: sound %d has no id", ErrManifestEntry, i)
		case s.Path == "":
			return fmt.Errorf("%w: sound %q has no path", ErrManifestEntry, s.ID)
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("%w: duplicate id %q", ErrManifestEntry, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
