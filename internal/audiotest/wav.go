// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"math"

	"github.com/ik5/sfxpool/audio"
)

// Header builds a canonical 44-byte WAV header for f with a data chunk
// declaring dataLen bytes.
func Header(f audio.Format, dataLen int) []byte {
	blockAlign := uint16(f.BytesPerFrame())
	h := make([]byte, 44)

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], uint32(36+dataLen))
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], 1)
	binary.LittleEndian.PutUint16(h[22:24], f.Channels)
	binary.LittleEndian.PutUint32(h[24:28], f.SampleRate)
	binary.LittleEndian.PutUint32(h[28:32], f.SampleRate*uint32(blockAlign))
	binary.LittleEndian.PutUint16(h[32:34], blockAlign)
	binary.LittleEndian.PutUint16(h[34:36], f.BitDepth)
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], uint32(dataLen))

	return h
}

// WAV returns a complete file: header followed by data.
func WAV(f audio.Format, data []byte) []byte {
	return append(Header(f, len(data)), data...)
}

// Sine16 generates frames of a 16-bit sine wave on every channel.
func Sine16(sampleRate uint32, channels uint16, frames int, frequency float64) []byte {
	data := make([]byte, 0, frames*int(channels)*2)
	for i := range frames {
		t := float64(i) / float64(sampleRate)
		s := int16(math.Sin(2*math.Pi*frequency*t) * 16000)
		for range channels {
			data = binary.LittleEndian.AppendUint16(data, uint16(s))
		}
	}
	return data
}

// Decoded returns DecodedAudio in f holding frames of silence.
func Decoded(f audio.Format, frames int) *audio.DecodedAudio {
	return &audio.DecodedAudio{
		SampleRate:  f.SampleRate,
		BitDepth:    f.BitDepth,
		Channels:    f.Channels,
		Interleaved: f.Channels > 1,
		SampleBytes: make([]byte, frames*f.BytesPerFrame()),
	}
}

// CD is 44.1 kHz stereo 16-bit.
var CD = audio.Format{SampleRate: 44100, BitDepth: 16, Channels: 2, Interleaved: true}
