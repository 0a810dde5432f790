package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/formats"
)

type infoCmd struct {
	Strict bool     `help:"Walk the RIFF chunks instead of trusting the 44-byte header."`
	Paths  []string `arg:"" name:"file" help:"WAV files to inspect." type:"existingfile"`
}

func (c *infoCmd) Run(g *Globals) error {
	if _, err := g.load(); err != nil {
		return err
	}

	kind := formats.WAV
	if c.Strict {
		kind = formats.WAVStrict
	}

	for _, path := range c.Paths {
		if err := describe(os.Stdout, path, kind); err != nil {
			return err
		}
	}
	return nil
}

func describe(w io.Writer, path string, kind formats.ContainerFormat) error {
	if _, err := formats.ForExtension(path); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoded, err := formats.Parse(kind, data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintln(w, titleStyle.Render(path))
	fmt.Fprintln(w, field("format", decoded.Format()))
	fmt.Fprintln(w, field("frames", decoded.Frames()))
	fmt.Fprintln(w, field("duration", duration(decoded)))

	if buf, err := audio.ToPlaybackBuffer(decoded, decoded.Format()); err == nil {
		fmt.Fprintln(w, field("peak", fmt.Sprintf("%.3f", buf.Peak())))
	} else {
		fmt.Fprintln(w, field("peak", "n/a"))
	}

	if err := decoded.Validate(); err != nil {
		fmt.Fprintln(w, field("warning", err))
	}

	return nil
}

func duration(a *audio.DecodedAudio) time.Duration {
	if a.SampleRate == 0 {
		return 0
	}
	return time.Duration(a.Frames()) * time.Second / time.Duration(a.SampleRate)
}
