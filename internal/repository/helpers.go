package repository

import (
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout is used for every stored timestamp.
const timeLayout = time.RFC3339Nano

// encodeStrings renders a string slice as a JSON array column value.
func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encoding list column: %w", err)
	}
	return string(data), nil
}

// decodeStrings parses a JSON array column value. Empty input yields an
// empty slice.
func decodeStrings(s string) ([]string, error) {
	out := []string{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decoding list column: %w", err)
	}
	return out, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t, nil
}
