package dto

import (
	"bytes"
	"encoding/json"
)

// NullableString distinguishes an absent JSON field from an explicit null.
// Set is true whenever the key was present in the payload.
type NullableString struct {
	Value *string
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// NewNullableString returns a set NullableString holding s.
func NewNullableString(s string) NullableString {
	return NullableString{Value: &s, Set: true}
}
