// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// parseJSON decodes with json.Number so integers survive as int64
// instead of collapsing to float64.
func parseJSON(data []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var out any
	if err := decoder.Decode(&out); err != nil {
		return nil, err
	}

	return rootMapping(normalizeJSON(out))
}

// parseJSON5 strips JSON5/JSONC comments and trailing commas,
// then takes the JSON path.
func parseJSON5(data []byte) (map[string]any, error) {
	return parseJSON(jsonc.ToJSON(data))
}

func normalizeJSON(value any) any {
	switch value := value.(type) {
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return i
		}
		if f, err := value.Float64(); err == nil {
			return f
		}

		return value.String()
	case map[string]any:
		for key, element := range value {
			value[key] = normalizeJSON(element)
		}

		return value
	case []any:
		for i, element := range value {
			value[i] = normalizeJSON(element)
		}

		return value
	default:
		return value
	}
}

// rootMapping asserts the parsed document is a mapping at the top level.
func rootMapping(value any) (map[string]any, error) {
	values, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level value must be a mapping, got %T", value)
	}

	return values, nil
}
