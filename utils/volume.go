// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"sync/atomic"
)

// ClampVolume limits v to [0,1]. NaN is treated as silence.
func ClampVolume(v float32) float32 {
	switch {
	case v != v:
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// AtomicFloat32 is a float32 that can be read and written concurrently.
// It bit-casts the value into an atomic uint32.
type AtomicFloat32 struct {
	bits atomic.Uint32
}

func NewAtomicFloat32(v float32) *AtomicFloat32 {
	af := &AtomicFloat32{}
	af.Store(v)
	return af
}

func (af *AtomicFloat32) Load() float32 {
	return math.Float32frombits(af.bits.Load())
}

func (af *AtomicFloat32) Store(v float32) {
	af.bits.Store(math.Float32bits(v))
}
