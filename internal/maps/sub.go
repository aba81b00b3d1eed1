// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package maps traverses the nested map[string]any value tree.
package maps

import "strconv"

// Sub returns the value under the given path segments.
//
// At each segment a map[string]any is looked up by exact key and an []any is
// indexed when the segment is a non-negative integer. The second return
// reports whether every segment resolved, so a present nil value is
// distinguishable from a missing one.
func Sub(values map[string]any, path []string) (any, bool) {
	var value any = values
	for _, segment := range path {
		switch node := value.(type) {
		case map[string]any:
			v, ok := node[segment]
			if !ok {
				return nil, false
			}
			value = v
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			value = node[i]
		default:
			return nil, false
		}
	}

	return value, true
}
