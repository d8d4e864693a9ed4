package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FlexNumber keeps the textual form of a JSON number or numeric string.
// Parsing is left to the normalizer so a bad value never fails decoding.
type FlexNumber struct {
	Raw string
	Set bool
}

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = FlexNumber{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = FlexNumber{Raw: string(b), Set: true}
			return nil
		}
		*n = FlexNumber{Raw: s, Set: true}
		return nil
	}
	*n = FlexNumber{Raw: string(b), Set: true}
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Raw)
}

// Num builds a FlexNumber from its textual form.
func Num(raw string) FlexNumber {
	return FlexNumber{Raw: raw, Set: true}
}

// FlexString accepts strings and numbers (numeric ids are common upstream).
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			*s = FlexString(b)
			return nil
		}
		*s = FlexString(str)
		return nil
	}
	*s = FlexString(b)
	return nil
}

func (s FlexString) String() string { return strings.TrimSpace(string(s)) }

// FlexBool accepts true/false, "true"/"false", "yes"/"no" and 1/0. Anything else is false.
type FlexBool bool

func (v *FlexBool) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(strings.ToLower(strings.TrimSpace(string(b))), `"`)
	switch raw {
	case "true", "1", "yes":
		*v = true
	default:
		*v = false
	}
	return nil
}
