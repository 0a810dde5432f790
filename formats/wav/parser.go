// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ik5/sfxpool/audio"
)

// HeaderSize is the size of the canonical RIFF/WAVE header.
const HeaderSize = 44

// Fixed offsets inside the canonical header.
const (
	offRIFF       = 0
	offWAVE       = 8
	offFmt        = 12
	offChannels   = 22
	offSampleRate = 24
	offBitDepth   = 34
)

var (
	tagRIFF = []byte("RIFF")
	tagWAVE = []byte("WAVE")
	tagFmt  = []byte("fmt ")
)

// Parser is the default WAV parser. It only checks the RIFF, WAVE and
// "fmt " tags and reads the fields at their canonical offsets.
type Parser struct{}

func (Parser) Parse(buf []byte) (*audio.DecodedAudio, error) { return Parse(buf) }

// Parse decodes buf as a canonical 44-byte header WAV file.
//
// Everything after the header is returned as sample data. The data chunk
// length is not consulted, so any chunk trailing the samples is kept.
func Parse(buf []byte) (*audio.DecodedAudio, error) {
	if len(buf) < HeaderSize {
		return nil, &FormatError{
			Kind:   ErrTruncated,
			Reason: fmt.Sprintf("%d bytes, need %d", len(buf), HeaderSize),
		}
	}

	header := buf[:HeaderSize]
	if err := validateTags(header); err != nil {
		return nil, err
	}

	channels := binary.LittleEndian.Uint16(header[offChannels : offChannels+2])
	sampleRate := binary.LittleEndian.Uint32(header[offSampleRate : offSampleRate+4])
	bitDepth := binary.LittleEndian.Uint16(header[offBitDepth : offBitDepth+2])

	return &audio.DecodedAudio{
		SampleRate:  sampleRate,
		BitDepth:    bitDepth,
		Channels:    channels,
		Interleaved: channels > 1,
		SampleBytes: buf[HeaderSize:len(buf):len(buf)],
	}, nil
}

func validateTags(header []byte) error {
	if !bytes.Equal(header[offRIFF:offRIFF+4], tagRIFF) {
		return &FormatError{Kind: ErrInvalidFormat, Reason: fmt.Sprintf("container tag %q", header[offRIFF:offRIFF+4])}
	}
	if !bytes.Equal(header[offWAVE:offWAVE+4], tagWAVE) {
		return &FormatError{Kind: ErrInvalidFormat, Reason: fmt.Sprintf("format tag %q", header[offWAVE:offWAVE+4])}
	}
	if !bytes.Equal(header[offFmt:offFmt+4], tagFmt) {
		return &FormatError{Kind: ErrInvalidFormat, Reason: fmt.Sprintf("subchunk tag %q", header[offFmt:offFmt+4])}
	}
	return nil
}
