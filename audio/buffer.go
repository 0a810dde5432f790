// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"

	goaudio "github.com/go-audio/audio"
)

// MaxBufferFrames caps the capacity ToPlaybackBuffer is willing to allocate.
const MaxBufferFrames = 1 << 26

// PlaybackBuffer is a format-tagged, channel-interleaved block of PCM ready
// to be scheduled on an output node.
type PlaybackBuffer struct {
	Format Format
	Frames int
	Data   []byte
}

// Len returns the size of the buffer in bytes.
func (b *PlaybackBuffer) Len() int { return len(b.Data) }

// ToPlaybackBuffer copies the samples of a verbatim into a new buffer laid out
// for target. Remainder bytes that do not fill a whole frame are dropped.
// There is no resampling or bit-depth conversion: a target that differs from
// the native format of a is rejected with ErrFormatMismatch.
func ToPlaybackBuffer(a *DecodedAudio, target Format) (*PlaybackBuffer, error) {
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("target format: %w", err)
	}

	native := a.Format()
	if native.SampleRate != target.SampleRate || native.BitDepth != target.BitDepth || native.Channels != target.Channels {
		return nil, fmt.Errorf("%w: source %s, target %s", ErrFormatMismatch, native, target)
	}

	bpf := target.BytesPerFrame()
	frames := len(a.SampleBytes) / bpf
	if frames == 0 || frames > MaxBufferFrames {
		return nil, fmt.Errorf("%w: %d frames", ErrBufferAllocation, frames)
	}

	data := make([]byte, frames*bpf)
	copy(data, a.SampleBytes)

	return &PlaybackBuffer{
		Format: target,
		Frames: frames,
		Data:   data,
	}, nil
}

// IntBuffer decodes the little-endian samples into a go-audio IntBuffer.
// 8-bit data is unsigned on disk and is re-centred around zero.
func (b *PlaybackBuffer) IntBuffer() *goaudio.IntBuffer {
	width := int(b.Format.BitDepth / 8)
	out := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: int(b.Format.Channels),
			SampleRate:  int(b.Format.SampleRate),
		},
		SourceBitDepth: int(b.Format.BitDepth),
		Data:           make([]int, 0, len(b.Data)/max(width, 1)),
	}

	for i := 0; i+width <= len(b.Data); i += width {
		s := b.Data[i : i+width]
		var v int
		switch width {
		case 1:
			v = int(s[0]) - 128
		case 2:
			v = int(int16(binary.LittleEndian.Uint16(s)))
		case 3:
			u := int32(s[0]) | int32(s[1])<<8 | int32(s[2])<<16
			if u&0x800000 != 0 {
				u |= ^0xffffff
			}
			v = int(u)
		case 4:
			v = int(int32(binary.LittleEndian.Uint32(s)))
		}
		out.Data = append(out.Data, v)
	}

	return out
}

// Peak returns the largest absolute sample value normalised to [0,1].
func (b *PlaybackBuffer) Peak() float64 {
	ib := b.IntBuffer()
	maxVal := goaudio.IntMaxSignedValue(int(b.Format.BitDepth))
	if maxVal == 0 {
		return 0
	}

	peak := 0
	for _, v := range ib.Data {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}

	return min(float64(peak)/float64(maxVal), 1)
}
