// SPDX-License-Identifier: EPL-2.0

package otograph

import (
	"errors"
	"testing"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/internal/audiotest"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  audio.Format
		wantErr error
	}{
		{name: "16-bit stereo", format: audiotest.CD},
		{name: "8-bit mono", format: audio.Format{SampleRate: 22050, BitDepth: 8, Channels: 1}},
		{name: "24-bit", format: audio.Format{SampleRate: 48000, BitDepth: 24, Channels: 2}, wantErr: ErrUnsupportedFormat},
		{name: "32-bit", format: audio.Format{SampleRate: 48000, BitDepth: 32, Channels: 2}, wantErr: ErrUnsupportedFormat},
		{name: "zero rate", format: audio.Format{BitDepth: 16, Channels: 2}, wantErr: audio.ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g, err := New(tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && g.Format() != tt.format {
				t.Errorf("Format() = %v, want %v", g.Format(), tt.format)
			}
		})
	}
}

func TestAttach(t *testing.T) {
	t.Parallel()

	g, err := New(audiotest.CD)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	other, err := New(audiotest.CD)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	n := g.NewNode()
	if err := g.Attach(n, audiotest.CD); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if !n.(*node).attached {
		t.Error("node not marked attached")
	}

	mono := audio.Format{SampleRate: 44100, BitDepth: 16, Channels: 1}
	if err := g.Attach(g.NewNode(), mono); !errors.Is(err, audio.ErrFormatMismatch) {
		t.Errorf("Attach(mono) error = %v, want ErrFormatMismatch", err)
	}

	if err := g.Attach(other.NewNode(), audiotest.CD); !errors.Is(err, ErrForeignNode) {
		t.Errorf("Attach(foreign) error = %v, want ErrForeignNode", err)
	}

	if err := g.Attach(audiotest.NewGraph().NewNode(), audiotest.CD); !errors.Is(err, ErrForeignNode) {
		t.Errorf("Attach(fake) error = %v, want ErrForeignNode", err)
	}
}

func TestStopWithoutStart(t *testing.T) {
	t.Parallel()

	g, err := New(audiotest.CD)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := g.Stop(); err != nil {
		t.Errorf("Stop() error = %v, want nil", err)
	}
}

func TestPlayOnStoppedGraph(t *testing.T) {
	t.Parallel()

	g, err := New(audiotest.CD)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	n := g.NewNode()
	called := false
	n.Schedule(&audio.PlaybackBuffer{Format: audiotest.CD, Frames: 1, Data: make([]byte, 4)}, func() { called = true })
	n.Play()

	if called {
		t.Error("done called for a playback that never started")
	}
	if n.(*node).buf != nil {
		t.Error("scheduled buffer not consumed by Play")
	}
}

func TestSetVolume(t *testing.T) {
	t.Parallel()

	g, err := New(audiotest.CD)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	n := g.NewNode()
	n.SetVolume(0.5)
	if got := n.(*node).volume; got != 0.5 {
		t.Errorf("volume = %v, want 0.5", got)
	}
}

func TestSampleFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth uint16
		want     oto.Format
		wantErr  bool
	}{
		{bitDepth: 8, want: oto.FormatUnsignedInt8},
		{bitDepth: 16, want: oto.FormatSignedInt16LE},
		{bitDepth: 24, wantErr: true},
		{bitDepth: 32, wantErr: true},
	}

	for _, tt := range tests {
		got, err := sampleFormat(tt.bitDepth)
		if (err != nil) != tt.wantErr {
			t.Errorf("sampleFormat(%d) error = %v, wantErr %v", tt.bitDepth, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("sampleFormat(%d) = %v, want %v", tt.bitDepth, got, tt.want)
		}
	}
}

func TestSameLayout(t *testing.T) {
	t.Parallel()

	a := audiotest.CD
	b := a
	b.Interleaved = false
	if !sameLayout(a, b) {
		t.Error("sameLayout ignores Interleaved")
	}

	b.SampleRate = 48000
	if sameLayout(a, b) {
		t.Error("sameLayout() = true for different sample rates")
	}
}
