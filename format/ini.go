// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format

import (
	"gopkg.in/ini.v1"
)

// parseINI lifts INI's flat string-only sections into nested mappings:
// each section becomes a mapping under its name, keys before any section
// header go under "default", and every value is typed by sniffScalar.
func parseINI(data []byte) (map[string]any, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, err
	}

	root := make(map[string]any)
	for _, section := range file.Sections() {
		keys := section.Keys()
		if len(keys) == 0 {
			continue
		}

		name := section.Name()
		if name == ini.DefaultSection {
			name = "default"
		}

		values := make(map[string]any, len(keys))
		for _, key := range keys {
			values[key.Name()] = sniffScalar(key.Value())
		}
		root[name] = values
	}

	return root, nil
}
