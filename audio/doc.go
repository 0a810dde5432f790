// SPDX-License-Identifier: EPL-2.0

// Package audio provides the core data types shared by parsers, the voice pool
// and the playback coordinator.
//
// # Decoded Audio
//
// A container parser produces a DecodedAudio: the sample rate, bit depth and
// channel count read from the header, plus a view of the raw sample bytes:
//
//	decoded, err := wav.Parse(data)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(decoded.Format()) // pcm; rate=44100; bits=16; channels=2
//
// Parsers implement the Parser interface so a stricter validator can replace
// the default one without touching playback code.
//
// # Playback Buffers
//
// ToPlaybackBuffer materializes a PlaybackBuffer for a target Format. Bytes
// are copied verbatim; trailing bytes that do not fill a whole frame are
// dropped:
//
//	buf, err := audio.ToPlaybackBuffer(decoded, decoded.Format())
//
// Asking for a target format that differs from the native one fails with
// ErrFormatMismatch. There is no resampling and no bit-depth conversion.
//
// # Sound Registry
//
// SoundRegistry maps a SoundID to a Sound. Registration replaces any previous
// entry and a nil Sound removes it:
//
//	reg := audio.NewSoundRegistry()
//	reg.Set("click", sound)
//	s, ok := reg.Get("click")
//	reg.Set("click", nil)
//
// All registry methods are safe for concurrent use.
package audio
