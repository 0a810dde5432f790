// SPDX-License-Identifier: EPL-2.0

// Package formats dispatches container parsing by format kind or file
// extension.
package formats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/sfxpool/audio"
	"github.com/ik5/sfxpool/formats/wav"
)

// ErrUnsupportedContainer is returned for a kind or extension no parser handles.
var ErrUnsupportedContainer = errors.New("unsupported container format")

// ContainerFormat selects a parser.
type ContainerFormat int

const (
	// WAV is the canonical 44-byte header parser with minimal validation.
	WAV ContainerFormat = iota
	// WAVStrict walks the RIFF chunks.
	WAVStrict
)

func (f ContainerFormat) String() string {
	switch f {
	case WAV:
		return "wav"
	case WAVStrict:
		return "wav-strict"
	}
	return fmt.Sprintf("ContainerFormat(%d)", int(f))
}

// Parser returns the parser for f, or nil for an unknown kind.
func (f ContainerFormat) Parser() audio.Parser {
	switch f {
	case WAV:
		return wav.Parser{}
	case WAVStrict:
		return wav.StrictParser{}
	}
	return nil
}

// ParseKind maps a configuration name ("wav", "wav-strict") to a format.
func ParseKind(name string) (ContainerFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "wav":
		return WAV, nil
	case "wav-strict", "strict":
		return WAVStrict, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedContainer, name)
}

// Parse decodes buf with the parser selected by kind.
func Parse(kind ContainerFormat, buf []byte) (*audio.DecodedAudio, error) {
	p := kind.Parser()
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContainer, kind)
	}
	return p.Parse(buf)
}

// ForExtension picks the container format from the extension of ref. A query
// string after '?' is ignored, so asset URIs work too.
func ForExtension(ref string) (ContainerFormat, error) {
	if i := strings.IndexByte(ref, '?'); i >= 0 {
		ref = ref[:i]
	}

	switch strings.ToLower(filepath.Ext(ref)) {
	case ".wav", ".wave":
		return WAV, nil
	}
	return 0, fmt.Errorf("%w: %q must have a .wav extension", ErrUnsupportedContainer, ref)
}

// ParseFile reads path and parses it according to its extension.
func ParseFile(path string) (*audio.DecodedAudio, error) {
	kind, err := ForExtension(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return Parse(kind, data)
}
