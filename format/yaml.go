// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format

import (
	"gopkg.in/yaml.v3"
)

func parseYAML(data []byte) (map[string]any, error) {
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return map[string]any{}, nil
	}

	return rootMapping(out)
}
