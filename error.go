// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package prefer

import (
	"errors"
	"fmt"

	"github.com/LimpidTech/prefer/format"
	"github.com/LimpidTech/prefer/internal/convert"
	"github.com/LimpidTech/prefer/internal/paths"
)

var (
	// ErrInvalidName reports a configuration name that is not a bare
	// identifier (empty, or containing path separators or an extension).
	ErrInvalidName = paths.ErrInvalidName

	// ErrNotFound reports that no candidate file exists in any search
	// location.
	ErrNotFound = errors.New("no configuration file found")

	// ErrUnsupportedFormat reports a file whose extension matches no
	// enabled format. During discovery such files are skipped; it only
	// surfaces when a path is loaded directly.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrPathNotFound reports a dot-notation path whose segments do not
	// all resolve.
	ErrPathNotFound = errors.New("path not found")

	// ErrTypeMismatch reports a value that cannot be coerced to the
	// requested type.
	ErrTypeMismatch = convert.ErrTypeMismatch
)

// ParseError reports that the first-found configuration file is malformed.
//
// The search stops at the first existing file, so a malformed
// highest-priority file masks lower-priority ones: first found, not first
// valid. Distinguishing ParseError from ErrNotFound lets callers alert the
// user to fix a syntax error instead of silently falling back to defaults.
type ParseError struct {
	Format format.Tag
	Path   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s as %s: %v", e.Path, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
