// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides WAV fixtures and an in-memory output graph for
// tests.
package audiotest
