// SPDX-License-Identifier: EPL-2.0

// Package sfxpool plays short sound effects with low latency.
//
// Sounds are parsed once into playback buffers and registered under an
// identifier. Each play request claims a voice from a bounded pool that
// starts with 8 voices and grows one voice at a time up to 48. Requests
// beyond that limit are dropped.
//
// # Quick Start
//
//	p, err := sfxpool.Open(config.Default())
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//
//	if err := p.PreloadFile("click", "assets/click.wav"); err != nil {
//		return err
//	}
//
//	p.Play("click", 1, false, func(err error) {
//		// nil once the sound has played back
//	})
//
// # Overlap
//
// With allowOverlap false a sound that is already playing is not started
// again and its callback is never called. With allowOverlap true every
// request gets its own voice.
//
// # Callbacks
//
// onComplete receives nil after playback, or an error wrapping
// playback.ErrInvalidIdentifier when nothing is registered under the id.
// Dropped requests and engine start failures never call it; the latter are
// logged.
//
// # Formats
//
// Only canonical PCM WAV files are read, via formats/wav. The default parser
// trusts the fixed 44-byte header. Set Container to "wav-strict" in the
// configuration to walk the RIFF chunks instead.
//
// # Sound Banks
//
// A YAML manifest lists sounds to preload:
//
//	m, err := config.LoadManifest("bank.yaml")
//	if err != nil {
//		return err
//	}
//	if err := p.PreloadManifest(ctx, m); err != nil {
//		return err
//	}
package sfxpool
