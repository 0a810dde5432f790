// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/sfxpool/audio"
)

// WriteWAV writes a canonical 44-byte header followed by data, which must
// already be little-endian PCM in format f.
func WriteWAV(w io.Writer, f audio.Format, data []byte) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}

	blockAlign := uint16(f.BytesPerFrame())
	byteRate := f.SampleRate * uint32(blockAlign)
	dataSize := uint32(len(data))
	riffSize := 36 + dataSize

	header := make([]byte, HeaderSize)

	// RIFF header (12 bytes)
	copy(header[0:4], tagRIFF)
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], tagWAVE)

	// fmt chunk (24 bytes)
	copy(header[12:16], tagFmt)
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], f.Channels)
	binary.LittleEndian.PutUint32(header[24:28], f.SampleRate)
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], f.BitDepth)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("wav: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("wav: %w", err)
	}

	return nil
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:i*2+2], uint16(s))
	}

	return WriteWAV(w, audio.Format{
		SampleRate: uint32(sampleRate),
		BitDepth:   16,
		Channels:   1,
	}, data)
}
