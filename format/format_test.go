// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format_test

import (
	"testing"

	"github.com/LimpidTech/prefer/format"
	"github.com/LimpidTech/prefer/internal/assert"
)

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		registry    *format.Registry
		path        string
		expected    format.Tag
		found       bool
	}{
		{
			description: "json",
			registry:    format.Default(),
			path:        "/etc/settings.json",
			expected:    format.JSON,
			found:       true,
		},
		{
			description: "extension is case-insensitive",
			registry:    format.Default(),
			path:        "settings.YAML",
			expected:    format.YAML,
			found:       true,
		},
		{
			description: "yml aliases yaml",
			registry:    format.Default(),
			path:        "settings.yml",
			expected:    format.YAML,
			found:       true,
		},
		{
			description: "jsonc aliases json5",
			registry:    format.Default(),
			path:        "settings.jsonc",
			expected:    format.JSON5,
			found:       true,
		},
		{
			description: "unknown extension",
			registry:    format.Default(),
			path:        "settings.properties",
			found:       false,
		},
		{
			description: "no extension",
			registry:    format.Default(),
			path:        "settings",
			found:       false,
		},
		{
			description: "disabled format is absent",
			registry:    format.New(format.JSON),
			path:        "settings.toml",
			found:       false,
		},
	}

	for _, testcase := range testcases {
		testcase := testcase

		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			tag, found := testcase.registry.ForPath(testcase.path)
			assert.Equal(t, testcase.found, found)
			assert.Equal(t, testcase.expected, tag)
		})
	}
}

func TestRegistry_Extensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"json", "json5", "jsonc", "yaml", "yml", "toml", "ini", "xml"},
		format.Default().Extensions(),
	)
	assert.Equal(t,
		[]string{"json", "ini"},
		format.New(format.INI, format.JSON).Extensions(),
	)
}

func TestRegistry_Parser(t *testing.T) {
	t.Parallel()

	registry := format.New(format.JSON)

	parser, ok := registry.Parser(format.JSON)
	assert.True(t, ok)
	assert.True(t, parser != nil)

	_, ok = registry.Parser(format.TOML)
	assert.True(t, !ok)
}
