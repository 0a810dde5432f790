// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
)

// SoundID identifies a registered sound. The last registration for an id wins.
type SoundID = string

// Format describes the PCM layout of a buffer.
type Format struct {
	// SampleRate in Hz.
	SampleRate uint32
	// BitDepth is the number of bits per sample (8, 16, 24 or 32).
	BitDepth uint16
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels uint16
	// Interleaved is only meaningful for multi-channel layouts.
	Interleaved bool
}

// BytesPerFrame returns the size of one frame (one sample for every channel).
func (f Format) BytesPerFrame() int {
	return int(f.Channels) * int(f.BitDepth/8)
}

// Validate reports whether the format can describe PCM data at all.
func (f Format) Validate() error {
	if f.SampleRate == 0 {
		return ErrInvalidSampleRate
	}

	switch f.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidBitDepth, f.BitDepth)
	}

	if f.Channels < 1 {
		return ErrInvalidChannels
	}

	return nil
}

func (f Format) String() string {
	return fmt.Sprintf("pcm; rate=%d; bits=%d; channels=%d", f.SampleRate, f.BitDepth, f.Channels)
}

// DecodedAudio is validated sample metadata plus a view of the raw sample bytes.
// SampleBytes must not be modified after construction.
type DecodedAudio struct {
	SampleRate  uint32
	BitDepth    uint16
	Channels    uint16
	Interleaved bool
	SampleBytes []byte
}

// Format returns the native format of the decoded samples.
func (a *DecodedAudio) Format() Format {
	return Format{
		SampleRate:  a.SampleRate,
		BitDepth:    a.BitDepth,
		Channels:    a.Channels,
		Interleaved: a.Interleaved,
	}
}

// Frames returns the number of whole frames in SampleBytes.
func (a *DecodedAudio) Frames() int {
	bpf := a.Format().BytesPerFrame()
	if bpf == 0 {
		return 0
	}
	return len(a.SampleBytes) / bpf
}

// Validate checks the metadata and that SampleBytes holds whole frames only.
func (a *DecodedAudio) Validate() error {
	if err := a.Format().Validate(); err != nil {
		return err
	}

	bpf := a.Format().BytesPerFrame()
	if len(a.SampleBytes)%bpf != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrInvalidFrame, len(a.SampleBytes), bpf)
	}

	return nil
}

// TrimToFrames returns a copy of a whose SampleBytes is cut down to the last
// whole frame boundary.
func (a *DecodedAudio) TrimToFrames() *DecodedAudio {
	out := *a
	bpf := a.Format().BytesPerFrame()
	if bpf > 0 {
		out.SampleBytes = a.SampleBytes[:len(a.SampleBytes)/bpf*bpf]
	}
	return &out
}

func (a *DecodedAudio) String() string {
	return fmt.Sprintf("DecodedAudio{sampleRate: %d, bitDepth: %d, channels: %d, bytes: %d}",
		a.SampleRate, a.BitDepth, a.Channels, len(a.SampleBytes))
}

// Parser turns a raw container buffer into DecodedAudio.
type Parser interface {
	Parse(buf []byte) (*DecodedAudio, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(buf []byte) (*DecodedAudio, error)

func (f ParserFunc) Parse(buf []byte) (*DecodedAudio, error) { return f(buf) }
