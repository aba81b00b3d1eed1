// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package format maps file extensions to configuration parsers.
//
// Every parser lifts its format's native types onto one unified tree:
// nested map[string]any with nil, bool, int64 (or int from YAML), float64,
// string and []any leaves. Format quirks (INI's flat string sections, XML's
// attributes) are resolved here and never leak past the returned map.
package format

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Tag identifies a configuration syntax.
type Tag string

const (
	JSON  Tag = "json"
	JSON5 Tag = "json5"
	YAML  Tag = "yaml"
	TOML  Tag = "toml"
	INI   Tag = "ini"
	XML   Tag = "xml"
)

// ParseFunc parses file contents into the unified tree.
type ParseFunc func([]byte) (map[string]any, error)

// extensions is the fixed probe order for candidate filenames.
var extensions = []struct { //nolint:gochecknoglobals
	ext string
	tag Tag
}{
	{"json", JSON},
	{"json5", JSON5},
	{"jsonc", JSON5},
	{"yaml", YAML},
	{"yml", YAML},
	{"toml", TOML},
	{"ini", INI},
	{"xml", XML},
}

var parsers = map[Tag]ParseFunc{ //nolint:gochecknoglobals
	JSON:  parseJSON,
	JSON5: parseJSON5,
	YAML:  parseYAML,
	TOML:  parseTOML,
	INI:   parseINI,
	XML:   parseXML,
}

// Registry resolves file paths to parsers for the enabled formats.
//
// A format that is not enabled is absent: its extensions resolve to nothing,
// which makes such files undiscoverable rather than an error.
type Registry struct {
	enabled map[Tag]bool
}

// Default returns a Registry with every supported format enabled.
func Default() *Registry {
	return New(JSON, JSON5, YAML, TOML, INI, XML)
}

// New returns a Registry restricted to the given format tags.
func New(tags ...Tag) *Registry {
	enabled := make(map[Tag]bool, len(tags))
	for _, tag := range tags {
		if _, ok := parsers[tag]; ok {
			enabled[tag] = true
		}
	}

	return &Registry{enabled: enabled}
}

// Extensions returns the filename extensions of the enabled formats
// in probe order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(extensions))
	for _, entry := range extensions {
		if r.enabled[entry.tag] {
			exts = append(exts, entry.ext)
		}
	}

	return exts
}

// ForPath resolves the format tag for a file path by its extension,
// case-insensitively. It reports false for unknown or disabled formats.
func (r *Registry) ForPath(path string) (Tag, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, entry := range extensions {
		if entry.ext == ext && r.enabled[entry.tag] {
			return entry.tag, true
		}
	}

	return "", false
}

// Parser returns the parse function for the given tag.
func (r *Registry) Parser(tag Tag) (ParseFunc, bool) {
	if !r.enabled[tag] {
		return nil, false
	}
	parser, ok := parsers[tag]

	return parser, ok
}

// sniffScalar types a bare string the way string-only formats (INI, XML)
// are lifted: int64, then float64, then the exact literals true/false,
// else the string itself.
func sniffScalar(value string) any {
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	switch value {
	case "true":
		return true
	case "false":
		return false
	}

	return value
}
