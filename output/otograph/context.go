// SPDX-License-Identifier: EPL-2.0

package otograph

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/sfxpool/audio"
)

var shared struct {
	once   sync.Once
	ctx    *oto.Context
	format audio.Format
	err    error

	lease lease
}

// suspender is the part of *oto.Context the lease drives.
type suspender interface {
	Suspend() error
	Resume() error
}

// lease tracks how many graphs run on the shared context. The context is
// suspended when the last one stops and resumed when any graph starts again.
type lease struct {
	mu        sync.Mutex
	running   int
	suspended bool
}

func (l *lease) acquire(ctx suspender) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.suspended {
		if err := ctx.Resume(); err != nil {
			return fmt.Errorf("resuming output context: %w", err)
		}
		l.suspended = false
	}
	l.running++
	return nil
}

func (l *lease) release(ctx suspender) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running > 0 {
		l.running--
	}
	if l.running > 0 || l.suspended {
		return nil
	}

	if err := ctx.Suspend(); err != nil {
		return fmt.Errorf("suspending output context: %w", err)
	}
	l.suspended = true
	return nil
}

// sharedContext opens the process-wide oto context on first use. The error
// of the first attempt is sticky.
func sharedContext(f audio.Format, bufferSize time.Duration) (*oto.Context, error) {
	shared.once.Do(func() {
		otoFormat, err := sampleFormat(f.BitDepth)
		if err != nil {
			shared.err = err
			return
		}

		var ready chan struct{}
		shared.ctx, ready, shared.err = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   int(f.SampleRate),
			ChannelCount: int(f.Channels),
			Format:       otoFormat,
			BufferSize:   bufferSize,
		})
		if shared.err == nil {
			<-ready
			shared.format = f
		}
	})

	if shared.err != nil {
		return nil, shared.err
	}

	if !sameLayout(shared.format, f) {
		return nil, fmt.Errorf("%w: open %s, requested %s", ErrContextFormat, shared.format, f)
	}

	return shared.ctx, nil
}

func sampleFormat(bitDepth uint16) (oto.Format, error) {
	switch bitDepth {
	case 8:
		return oto.FormatUnsignedInt8, nil
	case 16:
		return oto.FormatSignedInt16LE, nil
	}
	return 0, fmt.Errorf("%w: %d-bit", ErrUnsupportedFormat, bitDepth)
}

func sameLayout(a, b audio.Format) bool {
	return a.SampleRate == b.SampleRate && a.BitDepth == b.BitDepth && a.Channels == b.Channels
}
