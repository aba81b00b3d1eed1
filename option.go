// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package prefer

import (
	"log/slog"
	"time"

	"github.com/LimpidTech/prefer/format"
	"github.com/LimpidTech/prefer/internal/paths"
)

// WithFormats restricts discovery to the given format tags.
//
// A disabled format's files become undiscoverable candidates, never errors.
// By default every supported format is enabled.
func WithFormats(tags ...format.Tag) Option {
	return func(options *options) {
		options.registry = format.New(tags...)
	}
}

// WithEnvironment provides the environment/OS-paths provider consulted when
// building the search directories. It defaults to the real process
// environment; tests inject a fake for deterministic discovery.
func WithEnvironment(environment paths.Environment) Option {
	return func(options *options) {
		options.environment = environment
	}
}

// WithSearchDirs bypasses the platform search directories entirely and
// probes only the given directories, in order.
func WithSearchDirs(dirs ...string) Option {
	return func(options *options) {
		options.searchDirs = dirs
	}
}

// WithDebounce provides the window within which rapid successive file
// change events coalesce into a single reload.
//
// The default window is 100ms.
func WithDebounce(window time.Duration) Option {
	return func(options *options) {
		options.debounce = window
	}
}

// WithLogger provides the slog.Logger reporting watch activity.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// Option configures a Loader or Watcher with specific options.
type Option func(*options)

type options struct {
	registry    *format.Registry
	environment paths.Environment
	searchDirs  []string
	debounce    time.Duration
	logger      *slog.Logger
}

func apply(opts []Option) options {
	option := options{}
	for _, opt := range opts {
		opt(&option)
	}
	if option.registry == nil {
		option.registry = format.Default()
	}
	if option.environment == nil {
		option.environment = paths.OS()
	}
	if option.debounce <= 0 {
		option.debounce = 100 * time.Millisecond
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}

	return option
}
