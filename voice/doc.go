// SPDX-License-Identifier: EPL-2.0

// Package voice implements the reusable playback units and the bounded pool
// they are allocated from.
//
// A Voice wraps one output node and is either Idle or Playing. The Pool
// starts with a small number of voices and grows by one voice each time no
// idle voice is available, until it reaches its maximum. It never shrinks.
//
//	pool := voice.NewPool(graph.NewNode, voice.DefaultStartingVoices, voice.DefaultMaxVoices)
//	v, err := pool.Acquire("click", false)
//	switch {
//	case errors.Is(err, voice.ErrDuplicate):
//	    // "click" is already playing
//	case errors.Is(err, voice.ErrSaturated):
//	    // every voice is busy and the pool is full
//	}
//	done := v.Start(buf, 0.8)
//	<-done
//	pool.Release(v)
//
// All voice status reads and writes go through the pool lock. Completion runs
// on whatever goroutine the output node uses, so Release takes the lock again
// before flipping the voice back to Idle.
package voice
