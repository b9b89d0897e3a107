package domain

import (
	"fmt"
	"sort"
)

// Theme maps CSS variable names to colour values
type Theme map[string]string

// DefaultTheme returns the colour set given to every new user
func DefaultTheme() Theme {
	return Theme{
		"--primary-bg":        "#f3f3f4",
		"--primary-text":      "#34312d",
		"--secondary-bg":      "#d9c5b2",
		"--button-bg":         "#34312d",
		"--button-text":       "#f3f3f4",
		"--button-hover-bg":   "#7e7f83",
		"--button-hover-text": "#14110f",
	}
}

// Merge returns a copy of t with the entries of patch applied on top.
// Only keys present in DefaultTheme are accepted and values must be non-empty.
func (t Theme) Merge(patch Theme) (Theme, error) {
	known := DefaultTheme()
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Stable error messages

	merged := DefaultTheme()
	for k, v := range t {
		merged[k] = v
	}
	for _, k := range keys {
		if _, ok := known[k]; !ok {
			return nil, fmt.Errorf("%w: unknown theme key %q", ErrValidation, k)
		}
		if patch[k] == "" {
			return nil, fmt.Errorf("%w: empty value for theme key %q", ErrValidation, k)
		}
		merged[k] = patch[k]
	}
	return merged, nil
}
