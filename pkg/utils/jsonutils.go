package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyObject is returned when a JSON object has no keys
var ErrEmptyObject = errors.New("object is empty")

// FirstObjectMember returns the first key and raw value of a JSON object
// in document order. Go maps do not keep insertion order, so the object is
// walked token by token instead of being unmarshalled.
func FirstObjectMember(raw json.RawMessage) (string, json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return "", nil, fmt.Errorf("error reading JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	if !dec.More() {
		return "", nil, ErrEmptyObject
	}

	keyTok, err := dec.Token()
	if err != nil {
		return "", nil, fmt.Errorf("error reading JSON key: %w", err)
	}
	key, ok := keyTok.(string)
	if !ok {
		return "", nil, fmt.Errorf("unexpected JSON key %v", keyTok)
	}

	var value json.RawMessage
	if err := dec.Decode(&value); err != nil {
		return "", nil, fmt.Errorf("error reading value of %q: %w", key, err)
	}

	return key, value, nil
}

// ObjectMember returns the raw value stored under key in a JSON object
func ObjectMember(raw json.RawMessage, key string) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}
	value, ok := obj[key]
	if !ok {
		return nil, fmt.Errorf("%s field not found", key)
	}
	return value, nil
}
