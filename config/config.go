// SPDX-License-Identifier: EPL-2.0

// Package config holds the player settings and the sound bank manifest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/voice"
)

// Config is the player configuration. Pool bounds are fixed at construction.
type Config struct {
	StartingVoices int           `yaml:"starting_voices"`
	MaxVoices      int           `yaml:"max_voices"`
	SampleRate     uint32        `yaml:"sample_rate"`
	Channels       uint16        `yaml:"channels"`
	BitDepth       uint16        `yaml:"bit_depth"`
	BufferSize     time.Duration `yaml:"buffer_size"`
	Container      string        `yaml:"container"`
	LogLevel       string        `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		StartingVoices: voice.DefaultStartingVoices,
		MaxVoices:      voice.DefaultMaxVoices,
		SampleRate:     44100,
		Channels:       2,
		BitDepth:       16,
		Container:      "wav",
		LogLevel:       "info",
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path only applies the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := envInt("SFX_STARTING_VOICES"); ok {
		c.StartingVoices = v
	}
	if v, ok := envInt("SFX_MAX_VOICES"); ok {
		c.MaxVoices = v
	}
	if v, ok := envInt("SFX_SAMPLE_RATE"); ok && v > 0 {
		c.SampleRate = uint32(v)
	}
	if v, ok := envInt("SFX_CHANNELS"); ok && v > 0 {
		c.Channels = uint16(v)
	}
	if v, ok := envInt("SFX_BIT_DEPTH"); ok && v > 0 {
		c.BitDepth = uint16(v)
	}
	if ms, ok := envInt("SFX_BUFFER_MS"); ok && ms >= 0 {
		c.BufferSize = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("SFX_CONTAINER"); v != "" {
		c.Container = v
	}
	if v := os.Getenv("SFX_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Format returns the output format described by the configuration.
func (c *Config) Format() audio.Format {
	return audio.Format{
		SampleRate:  c.SampleRate,
		BitDepth:    c.BitDepth,
		Channels:    c.Channels,
		Interleaved: c.Channels > 1,
	}
}

func (c *Config) Validate() error {
	if c.StartingVoices <= 0 || c.StartingVoices > c.MaxVoices {
		return fmt.Errorf("%w: starting %d, max %d", ErrInvalidVoices, c.StartingVoices, c.MaxVoices)
	}
	if err := c.Format().Validate(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}
