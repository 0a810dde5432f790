// SPDX-License-Identifier: EPL-2.0

// Package wav parses and writes PCM WAV files.
//
// # Parsing
//
// Parse reads the canonical 44-byte RIFF header:
//
//	decoded, err := wav.Parse(data)
//	if errors.Is(err, wav.ErrTruncated) {
//	    // fewer than 44 bytes
//	}
//
// Only the "RIFF", "WAVE" and "fmt " tags are checked. The channel count,
// sample rate and bit depth are read at their fixed offsets and every byte
// after the header is returned as sample data. The data chunk length is not
// used, so trailing chunks stay in the sample data. This matches the
// behaviour existing sound banks rely on.
//
// StrictParser walks the chunks with github.com/go-audio/wav and limits the
// samples to the data chunk. Both parsers implement audio.Parser.
//
// # Writing WAV Files
//
// WriteWAV writes any PCM format with a canonical header, WriteWAV16 is a
// shortcut for mono 16-bit samples:
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	wav.WriteWAV16(file, 8000, samples)
//
// # Error Handling
//
// Parsing failures are *FormatError values whose Kind is one of:
//   - ErrTruncated: the buffer is shorter than the header
//   - ErrInvalidFormat: a header tag does not match
//   - ErrUnsupportedWavChunks: no data chunk (StrictParser only)
//   - ErrUnsupportedEncoding: not integer PCM (StrictParser only)
package wav
