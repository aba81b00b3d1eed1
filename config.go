// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package prefer

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/LimpidTech/prefer/format"
	"github.com/LimpidTech/prefer/internal/convert"
	"github.com/LimpidTech/prefer/internal/maps"
)

// Config is one immutable configuration snapshot.
//
// A Config is produced by a single load or reload and never mutated
// afterwards; a reload produces a new Config. Reading from a Config is
// concurrency-safe.
type Config struct {
	values map[string]any
	source Source
}

// Source identifies the file a Config was loaded from.
type Source struct {
	// Path is the absolute path of the winning candidate.
	Path string
	// Format is the detected format tag.
	Format format.Tag
	// ModTime is the file's modification time at load, used to tell
	// one snapshot's origin from its successor's.
	ModTime time.Time
}

// Source returns the identity of the file this snapshot was loaded from.
func (c *Config) Source() Source { return c.source }

// Get returns the value under the given dot-notation path, coerced to T.
//
// Each path segment is a mapping key (exact, case-sensitive) or a
// non-negative sequence index. Missing segments fail with [ErrPathNotFound];
// values that cannot be coerced fail with [ErrTypeMismatch]. The coercion
// rules are strict: integer targets accept integral values and decimal
// strings that parse exactly, string targets accept strings only, boolean
// targets accept booleans and the literals "true"/"false" in any case.
func Get[T any](config *Config, path string) (T, error) { //nolint:ireturn
	var value T
	if config == nil {
		return value, fmt.Errorf("%s: %w", path, ErrPathNotFound)
	}

	sub, found := maps.Sub(config.values, splitPath(path))
	if !found {
		return value, fmt.Errorf("%s: %w", path, ErrPathNotFound)
	}
	if err := convert.Convert(sub, &value); err != nil {
		return value, fmt.Errorf("%s: %w", path, err)
	}

	return value, nil
}

// Exists reports whether the given dot-notation path resolves.
func (c *Config) Exists(path string) bool {
	if c == nil {
		return false
	}

	_, found := maps.Sub(c.values, splitPath(path))

	return found
}

// Unmarshal decodes the configuration under the given dot-notation path
// into the object pointed to by target, honoring `prefer` struct tags.
//
// Unlike [Get], decoding is lenient about types so whole sections can be
// pulled into structs conveniently. A missing path leaves target untouched.
func (c *Config) Unmarshal(path string, target any) error {
	if c == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(
		&mapstructure.DecoderConfig{
			Result:           target,
			WeaklyTypedInput: true,
			DecodeHook:       defaultDecodeHook,
			TagName:          "prefer",
		},
	)
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}

	sub, found := maps.Sub(c.values, splitPath(path))
	if !found {
		return nil
	}
	if err := decoder.Decode(sub); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, ".")
}

var defaultDecodeHook = mapstructure.ComposeDecodeHookFunc( //nolint:gochecknoglobals
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
	mapstructure.TextUnmarshallerHookFunc(),
)
