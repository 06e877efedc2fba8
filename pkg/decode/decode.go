// Package decode converts loosely typed JSON maps into typed values.
package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownField is returned by FromMap when a key is not in the allowed set.
var ErrUnknownField = errors.New("unknown field")

// FromMap round-trips data through JSON into T. When allowed is non-empty,
// keys outside the set are rejected with ErrUnknownField.
func FromMap[T any](data map[string]any, allowed ...string) (T, error) {
	var result T

	if len(allowed) > 0 {
		for key := range data {
			if !slices.Contains(allowed, key) {
				return result, fmt.Errorf("%w: %s", ErrUnknownField, key)
			}
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}
