// Package normalization maps loosely written configuration strings onto enums.
package normalization

import (
	"sort"
	"strings"
)

// Normalizer provides type-safe string-to-enum normalization.
type Normalizer[T comparable] struct {
	validValues  map[string]T
	defaultValue T
	validKeys    []string // Cached for messages
}

// NewNormalizer creates a normalizer with a map of valid string->value pairs.
// Several keys may map to the same value to express aliases.
func NewNormalizer[T comparable](values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))

	for k, v := range values {
		key := defaultNormalization(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize converts raw to the enum type, or returns the default.
func (n *Normalizer[T]) Normalize(raw string) T {
	v, _ := n.Lookup(raw)
	return v
}

// Lookup converts raw to the enum type. The bool reports whether raw was
// recognized; when it is false the default value is returned.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	if value, exists := n.validValues[defaultNormalization(raw)]; exists {
		return value, true
	}
	return n.defaultValue, false
}

// ValidKeys returns all valid normalized keys, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	return append([]string(nil), n.validKeys...)
}

func defaultNormalization(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
