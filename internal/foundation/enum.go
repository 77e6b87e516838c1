package foundation

import (
	"fmt"
	"strings"
)

// Normalizer maps free-form strings onto a closed enum set. Lookup is
// case-insensitive and whitespace-tolerant; unknown input resolves to the
// configured fallback or to an error depending on the call.
type Normalizer[T comparable] struct {
	byName   map[string]T
	fallback T
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewNormalizer builds a normalizer from the canonical name set.
func NewNormalizer[T comparable](names map[string]T, fallback T) *Normalizer[T] {
	byName := make(map[string]T, len(names))
	for name, value := range names {
		byName[fold(name)] = value
	}
	return &Normalizer[T]{byName: byName, fallback: fallback}
}

// Normalize resolves raw to its enum value, falling back on unknown input.
// Used where any input must yield a usable value, like environment resolution.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, ok := n.byName[fold(raw)]; ok {
		return value
	}
	return n.fallback
}

// NormalizeWithError resolves raw to its enum value, rejecting unknown input.
// Used where the caller supplied the value explicitly and typos must surface.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	if value, ok := n.byName[fold(raw)]; ok {
		return value, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid value: %s", raw)
}
