// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"github.com/sirupsen/logrus"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/formats"
)

// Option configures a Coordinator.
type Option interface {
	apply(*Coordinator)
}

type loggerOption struct {
	log logrus.FieldLogger
}

func (o loggerOption) apply(c *Coordinator) {
	c.log = o.log
}

// WithLogger sets the diagnostic logger. Defaults to the shared logger from
// internal/log.
func WithLogger(log logrus.FieldLogger) Option {
	return loggerOption{log: log}
}

type poolSizeOption struct {
	starting, max int
}

func (o poolSizeOption) apply(c *Coordinator) {
	c.startingVoices = o.starting
	c.maxVoices = o.max
}

// WithPoolSize sets the starting and maximum voice counts. Defaults to
// voice.DefaultStartingVoices and voice.DefaultMaxVoices.
func WithPoolSize(starting, max int) Option {
	return poolSizeOption{starting: starting, max: max}
}

type parserOption struct {
	parser audio.Parser
}

func (o parserOption) apply(c *Coordinator) {
	c.parser = o.parser
}

// WithParser replaces the parser used by Preload.
func WithParser(p audio.Parser) Option {
	return parserOption{parser: p}
}

// WithContainerFormat selects the Preload parser by container kind.
func WithContainerFormat(kind formats.ContainerFormat) Option {
	return parserOption{parser: kind.Parser()}
}
