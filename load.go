// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package prefer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LimpidTech/prefer/format"
	"github.com/LimpidTech/prefer/internal/paths"
)

// Load resolves and parses the configuration with the given name.
//
// It probes each candidate location in priority order and loads the first
// file that exists. It fails with [ErrInvalidName] for a malformed name,
// [ErrNotFound] when no candidate exists, a [*ParseError] when the
// first-found file is malformed, or a wrapped I/O error when it cannot
// be read.
func Load(ctx context.Context, name string, opts ...Option) (*Config, error) {
	return NewLoader(opts...).Load(ctx, name)
}

// Loader resolves named configurations against the platform search paths.
//
// A Loader is stateless apart from its options; Load calls for different
// names may run concurrently.
type Loader struct {
	registry    *format.Registry
	environment paths.Environment
	searchDirs  []string
}

// NewLoader creates a Loader with the given Option(s).
func NewLoader(opts ...Option) *Loader {
	option := apply(opts)

	return &Loader{
		registry:    option.registry,
		environment: option.environment,
		searchDirs:  option.searchDirs,
	}
}

// Load resolves and parses the configuration with the given name.
// See the package-level [Load] for the error contract.
func (l *Loader) Load(ctx context.Context, name string) (*Config, error) {
	dirs := l.searchDirs
	if dirs == nil {
		dirs = paths.SearchDirs(l.environment)
	}

	candidates, err := paths.Candidates(name, dirs, l.registry.Extensions())
	if err != nil {
		return nil, err
	}

	// The first existing file wins, even when a later candidate would
	// parse and this one will not.
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := candidate.Path()
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		return l.loadFile(path)
	}

	return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// LoadPath parses the configuration file at the given path, bypassing
// discovery. The format is detected from the path's extension.
func (l *Loader) LoadPath(ctx context.Context, path string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	return l.loadFile(path)
}

func (l *Loader) loadFile(path string) (*Config, error) {
	tag, ok := l.registry.ForPath(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	parser, _ := l.registry.Parser(tag)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	values, err := parser(data)
	if err != nil {
		return nil, &ParseError{Format: tag, Path: path, Err: err}
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	return &Config{
		values: values,
		source: Source{Path: path, Format: tag, ModTime: info.ModTime()},
	}, nil
}
