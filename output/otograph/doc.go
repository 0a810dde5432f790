// SPDX-License-Identifier: EPL-2.0

// Package otograph is the output graph backed by github.com/ebitengine/oto/v3.
//
// oto allows a single context per process, so every Graph shares one
// lazily created context. The first Graph to start fixes its format; later
// graphs must use the same rate, channel count and bit depth.
//
// Each scheduled buffer gets its own oto player. Completion is detected by
// polling the player, and the voice is notified once the player has drained.
package otograph
