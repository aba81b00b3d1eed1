// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format

import (
	"errors"
	"strings"
	"sync"

	"github.com/clbanning/mxj/v2"
)

// Attributes are prefixed with "@" so they can never collide with child
// element keys; mixed element text lands under "#text".
const (
	attrPrefix = "@"
	textKey    = "#text"
)

var xmlSetup sync.Once //nolint:gochecknoglobals

// parseXML lifts an XML document onto the unified tree: the root element's
// children form the root mapping, repeated sibling elements become a
// sequence, and text-only elements are typed by sniffScalar. Attribute
// values stay strings.
func parseXML(data []byte) (map[string]any, error) {
	xmlSetup.Do(func() {
		mxj.SetAttrPrefix(attrPrefix)
	})

	parsed, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, err
	}
	if len(parsed) != 1 {
		return nil, errors.New("expected a single document root element")
	}

	for _, doc := range parsed {
		switch doc := liftXML("", doc).(type) {
		case map[string]any:
			return doc, nil
		default:
			// A text-only root has no children to form a mapping.
			return map[string]any{textKey: doc}, nil
		}
	}

	return nil, errors.New("empty document")
}

func liftXML(key string, value any) any {
	switch value := value.(type) {
	case map[string]any:
		for k, v := range value {
			value[k] = liftXML(k, v)
		}

		return value
	case []any:
		for i, v := range value {
			value[i] = liftXML(key, v)
		}

		return value
	case string:
		// Attribute values and mixed text stay strings for round-trip
		// fidelity; element text is typed like INI values.
		if strings.HasPrefix(key, attrPrefix) || key == textKey {
			return value
		}

		return sniffScalar(value)
	default:
		return value
	}
}
