package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/sfxpool/utils"
)

type toneCmd struct {
	Frequency float64       `help:"Tone frequency in Hz." default:"440"`
	Duration  time.Duration `help:"Tone length." default:"250ms"`
	Rate      int           `help:"Sample rate." default:"44100"`
	Channels  int           `help:"Channel count." default:"2"`
	Amplitude float64       `help:"Peak amplitude in [0,1]." default:"0.5"`
	Output    string        `arg:"" help:"Output WAV file."`
}

func (c *toneCmd) Run(g *Globals) error {
	if _, err := g.load(); err != nil {
		return err
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeTone(f, c.Frequency, c.Duration, c.Rate, c.Channels, c.Amplitude); err != nil {
		return err
	}

	fmt.Println(okStyle.Render("wrote") + " " + c.Output)
	return nil
}

// writeTone encodes a 16-bit sine tone with a short linear fade in and out
// so the sound does not click.
func writeTone(w io.WriteSeeker, frequency float64, length time.Duration, rate, channels int, amplitude float64) error {
	if rate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid tone layout: %d Hz, %d channels", rate, channels)
	}

	frames := int(length.Seconds() * float64(rate))
	fade := min(rate/200, frames/2)

	data := make([]int, 0, frames*channels)
	for i := range frames {
		gain := amplitude
		switch {
		case fade > 0 && i < fade:
			gain *= float64(i) / float64(fade)
		case fade > 0 && i >= frames-fade:
			gain *= float64(frames-1-i) / float64(fade)
		}

		s := utils.Float32ToInt16(float32(gain * math.Sin(2*math.Pi*frequency*float64(i)/float64(rate))))
		for range channels {
			data = append(data, int(s))
		}
	}

	enc := gowav.NewEncoder(w, rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding tone: %w", err)
	}
	return enc.Close()
}
