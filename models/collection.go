package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Indexed reads an indexed mapping collection: an object holding the entries
// "0".."count-1" plus a "count" key. Exactly count entries are returned, in
// index order. Absent, null, empty-list and empty-object encodings yield an
// empty slice.
func Indexed(raw json.RawMessage) ([]json.RawMessage, error) {
	if isEmpty(raw) || kind(raw) == '[' {
		if !isEmpty(raw) {
			return nil, ErrUnexpectedShape
		}
		return []json.RawMessage{}, nil
	}

	obj, err := object(raw)
	if err != nil {
		return nil, err
	}

	countRaw, ok := obj["count"]
	if !ok {
		return nil, &DecodeError{Entity: "collection", Key: "count", Err: ErrMissingKey}
	}
	count := AsInt(countRaw)
	if count == nil || *count < 0 {
		return nil, &DecodeError{Entity: "collection", Key: "count", Err: ErrUnexpectedShape}
	}

	entries := make([]json.RawMessage, 0, *count)
	for i := 0; i < *count; i++ {
		key := strconv.Itoa(i)
		entry, ok := obj[key]
		if !ok {
			return nil, &DecodeError{Entity: "collection", Key: key, Err: ErrMissingKey}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// indexedOf decodes every entry of an indexed collection, unwrapping the
// per-entry key (for example "player" in {"0": {"player": ...}}).
func indexedOf[T any](raw json.RawMessage, entity, entryKey string, decode func(json.RawMessage) (T, error)) ([]T, error) {
	entries, err := Indexed(raw)
	if err != nil {
		return nil, badShape(entity, entryKey, err)
	}

	out := make([]T, 0, len(entries))
	for i, entry := range entries {
		obj, err := object(entry)
		if err != nil {
			return nil, badShape(entity, strconv.Itoa(i), err)
		}
		inner, ok := obj[entryKey]
		if !ok {
			return nil, missing(entity, fmt.Sprintf("%d.%s", i, entryKey))
		}
		v, err := decode(inner)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// listOf decodes a plain JSON array of single-key wrappers such as
// [{"roster_position": {...}}, ...].
func listOf[T any](raw json.RawMessage, entity, entryKey string, decode func(json.RawMessage) (T, error)) ([]T, error) {
	if isEmpty(raw) {
		return []T{}, nil
	}
	elems, err := array(raw)
	if err != nil {
		return nil, badShape(entity, entryKey, err)
	}

	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		obj, err := object(elem)
		if err != nil {
			return nil, badShape(entity, strconv.Itoa(i), err)
		}
		inner, ok := obj[entryKey]
		if !ok {
			return nil, missing(entity, fmt.Sprintf("%d.%s", i, entryKey))
		}
		v, err := decode(inner)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func object(raw json.RawMessage) (map[string]json.RawMessage, error) {
	if kind(raw) != '{' {
		return nil, ErrUnexpectedShape
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func array(raw json.RawMessage) ([]json.RawMessage, error) {
	if kind(raw) != '[' {
		return nil, ErrUnexpectedShape
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}
	return elems, nil
}

// field looks up a required key in an object value.
func field(raw json.RawMessage, entity, key string) (json.RawMessage, error) {
	obj, err := object(raw)
	if err != nil {
		return nil, badShape(entity, key, err)
	}
	v, ok := obj[key]
	if !ok {
		return nil, missing(entity, key)
	}
	return v, nil
}

// dig walks nested object keys, failing on the first absent one.
func dig(raw json.RawMessage, entity string, keys ...string) (json.RawMessage, error) {
	cur := raw
	for _, key := range keys {
		v, err := field(cur, entity, key)
		if err != nil {
			return nil, err
		}
		cur = v
	}
	return cur, nil
}

// requireKey returns attrs[key] or a missing key error.
func requireKey(attrs Attributes, entity, key string) (json.RawMessage, error) {
	v, ok := attrs[key]
	if !ok {
		return nil, missing(entity, key)
	}
	return v, nil
}

// requireString returns a required attribute as a string.
func requireString(attrs Attributes, entity, key string) (string, error) {
	v, err := requireKey(attrs, entity, key)
	if err != nil {
		return "", err
	}
	return AsString(v), nil
}

// subResources splits an entity array into its info block and the remaining
// single-key sub-resource elements. A bare object is an info block with no
// sub-resources.
func subResources(raw json.RawMessage, entity string) (json.RawMessage, []map[string]json.RawMessage, error) {
	switch kind(raw) {
	case '{':
		return raw, nil, nil
	case '[':
	default:
		return nil, nil, badShape(entity, entity, nil)
	}

	elems, err := array(raw)
	if err != nil {
		return nil, nil, badShape(entity, entity, err)
	}
	if len(elems) == 0 {
		return nil, nil, missing(entity, "0")
	}

	subs := make([]map[string]json.RawMessage, 0, len(elems)-1)
	for _, elem := range elems[1:] {
		if kind(elem) != '{' {
			continue
		}
		obj, err := object(elem)
		if err != nil {
			return nil, nil, badShape(entity, entity, err)
		}
		subs = append(subs, obj)
	}
	return elems[0], subs, nil
}
