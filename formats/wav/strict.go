// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/sfxpool/audio"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// StrictParser walks the RIFF chunks with go-audio/wav instead of assuming
// the canonical layout. Extra chunks before "data" are skipped and the
// sample data is limited to the data chunk length, so trailing chunks are
// not returned as samples.
type StrictParser struct{}

func (StrictParser) Parse(buf []byte) (*audio.DecodedAudio, error) {
	if len(buf) < HeaderSize {
		return nil, &FormatError{
			Kind:   ErrTruncated,
			Reason: fmt.Sprintf("%d bytes, need %d", len(buf), HeaderSize),
		}
	}

	if !bytes.Equal(buf[offRIFF:offRIFF+4], tagRIFF) || !bytes.Equal(buf[offWAVE:offWAVE+4], tagWAVE) {
		return nil, &FormatError{Kind: ErrInvalidFormat, Reason: "missing RIFF/WAVE tags"}
	}

	dec := gowav.NewDecoder(bytes.NewReader(buf))
	if !dec.IsValidFile() {
		return nil, &FormatError{Kind: ErrInvalidFormat, Reason: "rejected by chunk walker"}
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, &FormatError{Kind: ErrUnsupportedEncoding, Reason: fmt.Sprintf("format tag %d", dec.WavAudioFormat)}
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, &FormatError{Kind: ErrUnsupportedWavChunks, Reason: err.Error()}
	}
	if dec.PCMChunk == nil {
		return nil, &FormatError{Kind: ErrUnsupportedWavChunks, Reason: "no data chunk"}
	}

	data := make([]byte, dec.PCMSize)
	n, err := io.ReadFull(dec.PCMChunk, data)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("reading data chunk: %w", err)
	}
	if n < len(data) {
		return nil, &FormatError{
			Kind:   ErrTruncated,
			Reason: fmt.Sprintf("data chunk declares %d bytes, found %d", len(data), n),
		}
	}

	return &audio.DecodedAudio{
		SampleRate:  dec.SampleRate,
		BitDepth:    dec.BitDepth,
		Channels:    dec.NumChans,
		Interleaved: dec.NumChans > 1,
		SampleBytes: data,
	}, nil
}
