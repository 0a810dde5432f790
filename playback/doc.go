// SPDX-License-Identifier: EPL-2.0

// Package playback coordinates play requests against a shared output graph.
//
// A Coordinator owns the sound registry and the voice pool. Play never
// blocks the caller: each request runs on its own goroutine, which looks the
// sound up, claims a voice and schedules the playback buffer. The overlap
// check and the voice claim happen under the pool lock in one step, so two
// concurrent non-overlapping requests for the same sound cannot both play.
//
// Dropped requests are silent. A duplicate, a saturated pool and a failed
// engine start never invoke the completion callback; only an unknown sound
// identifier reports an error to the caller.
//
// Example:
//
//	c := playback.New(graph)
//	defer c.Close()
//
//	if err := c.PreloadFile("click", "click.wav"); err != nil {
//		return err
//	}
//
//	c.Play("click", 0.8, false, func(err error) {
//		if err != nil {
//			log.Println(err)
//		}
//	})
package playback
