package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NullableID tracks whether an integer id was explicitly present in JSON.
// Browser forms post select values as strings, so both 5 and "5" decode.
type NullableID struct {
	Valid bool
	Value *int64
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	if bytes.Equal(trimmed, []byte("null")) {
		n.Valid = true
		n.Value = nil
		return nil
	}

	parsed, err := parseID(trimmed)
	if err != nil {
		return err
	}
	n.Valid = true
	n.Value = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NullableID) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(*n.Value, 10)), nil
}

// Set reports whether the field carried a non-null id.
func (n NullableID) Set() bool {
	return n.Valid && n.Value != nil
}

// Int64 returns the id or zero.
func (n NullableID) Int64() int64 {
	if n.Value == nil {
		return 0
	}
	return *n.Value
}

// ID is a non-nullable id that accepts JSON numbers or numeric strings.
type ID int64

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	parsed, err := parseID(bytes.TrimSpace(data))
	if err != nil {
		return err
	}
	if parsed == nil {
		*id = 0
		return nil
	}
	*id = ID(*parsed)
	return nil
}

func parseID(data []byte) (*int64, error) {
	if bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", raw)
		}
		return &v, nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid id %s", string(data))
	}
	return &v, nil
}
