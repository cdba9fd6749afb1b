package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

var logger = zerolog.Nop()

// SetLogger sets the logger used to report tolerated irregularities while decoding.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Attributes is a flattened attribute block, keyed by attribute name.
type Attributes map[string]json.RawMessage

// Flatten merges a JSON array of single-key objects into one attribute block.
// Later keys overwrite earlier ones. Empty arrays are skipped; a bare object is
// treated as a one element sequence.
func Flatten(raw json.RawMessage) (Attributes, error) {
	switch kind(raw) {
	case '{':
		var obj Attributes
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, err
		}
		return FlattenValues(elems), nil
	case 0:
		return Attributes{}, nil
	default:
		return nil, ErrUnexpectedShape
	}
}

// FlattenValues merges a sequence of attribute fragments. Fragments that are
// neither objects nor empty arrays are skipped.
func FlattenValues(elems []json.RawMessage) Attributes {
	attrs := make(Attributes, len(elems))
	for i, elem := range elems {
		switch kind(elem) {
		case '{':
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(elem, &obj); err != nil {
				logger.Debug().Err(err).Int("index", i).Msg("Skipping unreadable attribute fragment")
				continue
			}
			for k, v := range obj {
				attrs[k] = v
			}
		case '[':
			if !isEmpty(elem) {
				logger.Debug().Int("index", i).Str("fragment", truncate(elem)).
					Msg("Skipping non-empty list in attribute block")
			}
		default:
			logger.Debug().Int("index", i).Str("fragment", truncate(elem)).
				Msg("Skipping malformed attribute fragment")
		}
	}
	return attrs
}

// Has reports whether the attribute block carries key.
func (a Attributes) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// String returns the attribute as a string, empty when absent.
func (a Attributes) String(key string) string {
	return AsString(a[key])
}

// Int coerces the attribute with AsInt.
func (a Attributes) Int(key string) *int {
	return AsInt(a[key])
}

// IntOr coerces the attribute with AsInt and falls back to def when absent.
func (a Attributes) IntOr(key string, def int) int {
	if v := AsInt(a[key]); v != nil {
		return *v
	}
	return def
}

// Float coerces the attribute with AsFloat.
func (a Attributes) Float(key string) *float64 {
	return AsFloat(a[key])
}

// Bool coerces the attribute with AsBool.
func (a Attributes) Bool(key string) bool {
	return AsBool(a[key])
}

// AsInt converts a raw JSON scalar into an int. null, "", "-" and a missing
// value map to nil, as do strings that are not numeric. Floats are truncated.
func AsInt(raw json.RawMessage) *int {
	f := AsFloat(raw)
	if f == nil {
		return nil
	}
	if s, ok := scalarString(raw); ok {
		if n, err := strconv.Atoi(s); err == nil {
			return &n
		}
	}
	n := int(*f)
	return &n
}

// AsFloat converts a raw JSON scalar into a float64 using the same absent set as AsInt.
func AsFloat(raw json.RawMessage) *float64 {
	s, ok := scalarString(raw)
	if !ok || isSentinel(s) {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// AsBool reports whether a "0"/"1" style flag is set. Absent values are false.
func AsBool(raw json.RawMessage) bool {
	n := AsInt(raw)
	return n != nil && *n != 0
}

// AsString returns the text of a JSON string or number. Anything else yields "",
// including the false the service sends for unset URLs.
func AsString(raw json.RawMessage) string {
	switch kind(raw) {
	case 't', 'f':
		return ""
	}
	s, ok := scalarString(raw)
	if !ok {
		return ""
	}
	return s
}

// scalarString extracts the textual form of a string, number or boolean.
func scalarString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	case 't':
		return "1", true
	case 'f':
		return "0", true
	case 'n', '{', '[':
		return "", false
	default:
		return string(raw), true
	}
}

func isSentinel(s string) bool {
	return s == "" || s == "-"
}

// kind returns the first significant byte of a JSON value, or 0 for null and empty input.
func kind(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	return raw[0]
}

// isEmpty reports whether raw is absent, null, an empty array, object or string.
func isEmpty(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	switch string(raw) {
	case "", "null", "[]", "{}", `""`:
		return true
	}
	if raw[0] == '[' || raw[0] == '{' {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return false
		}
		switch t := v.(type) {
		case []any:
			return len(t) == 0
		case map[string]any:
			return len(t) == 0
		}
	}
	return false
}

func truncate(raw json.RawMessage) string {
	const max = 64
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
