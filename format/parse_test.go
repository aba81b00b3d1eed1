// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format_test

import (
	"testing"

	"github.com/LimpidTech/prefer/format"
	"github.com/LimpidTech/prefer/internal/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		tag         format.Tag
		source      string
		expected    map[string]any
	}{
		{
			description: "json",
			tag:         format.JSON,
			source: `{
				"server": {"port": 8080, "ratio": 0.5, "tls": false},
				"tags": ["a", "b"],
				"note": null
			}`,
			expected: map[string]any{
				"server": map[string]any{"port": int64(8080), "ratio": 0.5, "tls": false},
				"tags":   []any{"a", "b"},
				"note":   nil,
			},
		},
		{
			description: "json5 with comments and trailing commas",
			tag:         format.JSON5,
			source: `{
				// listening port
				"server": {"port": 8080,},
				"tags": ["a", "b",],
			}`,
			expected: map[string]any{
				"server": map[string]any{"port": int64(8080)},
				"tags":   []any{"a", "b"},
			},
		},
		{
			description: "yaml",
			tag:         format.YAML,
			source: `
server:
  port: 8080
  ratio: 0.5
  tls: false
tags: [a, b]
note: null
`,
			expected: map[string]any{
				"server": map[string]any{"port": 8080, "ratio": 0.5, "tls": false},
				"tags":   []any{"a", "b"},
				"note":   nil,
			},
		},
		{
			description: "toml",
			tag:         format.TOML,
			source: `
tags = ["a", "b"]

[server]
port = 8080
ratio = 0.5
tls = false
`,
			expected: map[string]any{
				"server": map[string]any{"port": int64(8080), "ratio": 0.5, "tls": false},
				"tags":   []any{"a", "b"},
			},
		},
		{
			description: "ini sections nest and scalars are typed",
			tag:         format.INI,
			source: `
owner = admin

[server]
port = 8080
ratio = 0.5
tls = false
host = localhost
`,
			expected: map[string]any{
				"default": map[string]any{"owner": "admin"},
				"server": map[string]any{
					"port":  int64(8080),
					"ratio": 0.5,
					"tls":   false,
					"host":  "localhost",
				},
			},
		},
		{
			description: "xml attributes are prefixed and text is typed",
			tag:         format.XML,
			source: `<config>
				<server enabled="true">
					<port>8080</port>
					<host>localhost</host>
				</server>
				<tag>a</tag>
				<tag>b</tag>
			</config>`,
			expected: map[string]any{
				"server": map[string]any{
					"@enabled": "true",
					"port":     int64(8080),
					"host":     "localhost",
				},
				"tag": []any{"a", "b"},
			},
		},
	}

	for _, testcase := range testcases {
		testcase := testcase

		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			parser, ok := format.Default().Parser(testcase.tag)
			assert.True(t, ok)
			values, err := parser([]byte(testcase.source))
			assert.NoError(t, err)
			assert.Equal(t, testcase.expected, values)
		})
	}
}

func TestParse_malformed(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		tag         format.Tag
		source      string
	}{
		{
			description: "json syntax error",
			tag:         format.JSON,
			source:      `{"server":`,
		},
		{
			description: "json non-object root",
			tag:         format.JSON,
			source:      `[1, 2]`,
		},
		{
			description: "yaml non-mapping root",
			tag:         format.YAML,
			source:      "- a\n- b\n",
		},
		{
			description: "toml syntax error",
			tag:         format.TOML,
			source:      "server = = 1",
		},
		{
			description: "xml unclosed element",
			tag:         format.XML,
			source:      "<config><port>8080</config>",
		},
	}

	for _, testcase := range testcases {
		testcase := testcase

		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			parser, ok := format.Default().Parser(testcase.tag)
			assert.True(t, ok)
			_, err := parser([]byte(testcase.source))
			assert.True(t, err != nil)
		})
	}
}
