package types

import "encoding/json"

// NullableString is a string that distinguishes "absent" from the empty
// string. The catalog uses it for optional policy fields where a document may
// legitimately carry an empty value.
type NullableString struct {
	Value string
	Valid bool // Valid is false when the value is absent
}

// String returns the value, or "" when absent.
func (ns NullableString) String() string {
	if ns.Valid {
		return ns.Value
	}
	return ""
}

// IsNil reports whether the value is absent. An empty string with Valid set
// is present, not nil.
func (ns NullableString) IsNil() bool {
	return !ns.Valid
}

// Set assigns a value and marks it present.
func (ns *NullableString) Set(value string) {
	ns.Value = value
	ns.Valid = true
}

// MarshalJSON writes the string value, or null when absent.
func (ns NullableString) MarshalJSON() ([]byte, error) {
	if ns.Valid {
		return json.Marshal(ns.Value)
	}
	return json.Marshal(nil)
}

// UnmarshalJSON treats JSON null (and empty input) as absent.
func (ns *NullableString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		ns.Value = ""
		ns.Valid = false
		return nil
	}
	ns.Valid = true
	return json.Unmarshal(data, &ns.Value)
}

// NullableStringFrom returns a present NullableString holding s.
func NullableStringFrom(s string) NullableString {
	return NullableString{Value: s, Valid: true}
}

// NullString returns an absent NullableString.
func NullString() NullableString {
	return NullableString{}
}

var _ json.Marshaler = &NullableString{}
var _ json.Unmarshaler = &NullableString{}
var _ Nullable = &NullableString{}
