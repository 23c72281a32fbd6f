package domain

import (
	"encoding/json"
	"fmt"
)

// Tags is an ordered list of free-form labels. On input it accepts either a
// native JSON array or a JSON-encoded string containing an array (some
// upstream clients double-encode), and normalizes both to a plain slice.
type Tags []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err == nil {
		*t = raw
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return fmt.Errorf("tags must be an array of strings or a JSON-encoded array: %w", err)
	}
	if err := json.Unmarshal([]byte(encoded), &raw); err != nil {
		return fmt.Errorf("tags string is not a JSON array: %w", err)
	}
	*t = raw
	return nil
}
