// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	ErrInvalidVoices   = errors.New("starting voices must be positive and not above max voices")
	ErrInvalidLogLevel = errors.New("unknown log level")
	ErrEmptyManifest   = errors.New("manifest lists no sounds")
	ErrManifestEntry   = errors.New("invalid manifest entry")
)
