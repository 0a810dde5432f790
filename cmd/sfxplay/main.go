// Command sfxplay inspects, generates and plays sound effect files.
package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/ik5/sfxpool/config"
	"github.com/ik5/sfxpool/internal/log"
)

// version is set via ldflags at build time.
var version = "dev"

type Globals struct {
	Config   string `help:"YAML configuration file." type:"existingfile" env:"SFX_CONFIG"`
	LogLevel string `help:"Log level (debug, info, warn, error). Overrides the configuration." name:"log-level"`
}

// load reads the configuration and initialises logging from it.
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	log.Init(cfg.LogLevel)
	return cfg, nil
}

var cli struct {
	Globals

	Version kong.VersionFlag `help:"Show version information."`

	Info infoCmd `cmd:"" help:"Print the format of WAV files."`
	Tone toneCmd `cmd:"" help:"Write a sine tone to a WAV file."`
	Play playCmd `cmd:"" help:"Play WAV files or a sound bank manifest."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("sfxplay"),
		kong.Description("Low latency sound effect player."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)

	if err := ctx.Run(&cli.Globals); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}
