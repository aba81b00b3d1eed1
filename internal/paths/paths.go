// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package paths builds the ordered list of locations probed for a named
// configuration file.
//
// The order is fixed per platform, narrowest scope first: the current
// directory, then user-scoped locations, then system-wide locations.
// Building the list reads only the environment; whether a candidate
// actually exists is the caller's concern.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Environment exposes the process environment and OS path conventions.
// It is injected so that discovery is deterministic under test.
type Environment interface {
	Getenv(key string) string
	Getwd() (string, error)
	UserHomeDir() (string, error)
}

// OS returns the Environment backed by the real process environment.
func OS() Environment { return osEnvironment{} }

type osEnvironment struct{}

func (osEnvironment) Getenv(key string) string     { return os.Getenv(key) }
func (osEnvironment) Getwd() (string, error)       { return os.Getwd() }
func (osEnvironment) UserHomeDir() (string, error) { return os.UserHomeDir() }

// Candidate is one (directory, filename) pair considered during discovery.
type Candidate struct {
	Dir  string
	File string
}

// Path joins the candidate into a probeable file path.
func (c Candidate) Path() string { return filepath.Join(c.Dir, c.File) }

// ErrInvalidName reports a malformed configuration name.
var ErrInvalidName = errors.New("invalid configuration name")

// ValidateName checks that name is a bare configuration identifier:
// non-empty, no path separators, no extension.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, '\\'):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.ContainsRune(name, '.'):
		return fmt.Errorf("%w: %q contains an extension", ErrInvalidName, name)
	default:
		return nil
	}
}

// SearchDirs returns the ordered directories probed for configuration files.
//
// On unix: the current directory, $XDG_CONFIG_HOME (or ~/.config), each entry
// of $XDG_CONFIG_DIRS, the home directory, /usr/local/etc, /usr/etc, /etc.
// On windows: the current directory, the user profile, %APPDATA%,
// %ProgramData%, %SystemRoot%.
// Directories that cannot be determined are skipped, not errors.
func SearchDirs(env Environment) []string {
	var dirs []string
	if cwd, err := env.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}

	if runtime.GOOS == "windows" {
		if home, err := env.UserHomeDir(); err == nil {
			dirs = append(dirs, home)
		}
		for _, key := range []string{"APPDATA", "ProgramData", "SystemRoot"} {
			if dir := env.Getenv(key); dir != "" {
				dirs = append(dirs, dir)
			}
		}

		return dirs
	}

	home, homeErr := env.UserHomeDir()
	if configHome := env.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		dirs = append(dirs, configHome)
	} else if homeErr == nil {
		dirs = append(dirs, filepath.Join(home, ".config"))
	}
	if configDirs := env.Getenv("XDG_CONFIG_DIRS"); configDirs != "" {
		for _, dir := range filepath.SplitList(configDirs) {
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}
	}
	if homeErr == nil {
		dirs = append(dirs, home)
	}
	dirs = append(dirs, "/usr/local/etc", "/usr/etc", "/etc")

	return dirs
}

// Candidates expands name against every directory and extension,
// directories outermost so that all extensions in one location outrank
// any file in the next location.
func Candidates(name string, dirs, exts []string) ([]Candidate, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(dirs)*len(exts))
	for _, dir := range dirs {
		for _, ext := range exts {
			candidates = append(candidates, Candidate{Dir: dir, File: name + "." + ext})
		}
	}

	return candidates, nil
}
