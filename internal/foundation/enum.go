package foundation

import (
	"fmt"
	"slices"
	"strings"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
)

// Normalizer maps loosely spelled configuration values (any case, padded
// with spaces) onto a closed set.
type Normalizer[T comparable] struct {
	values map[string]T
}

func canonical(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func NewNormalizer[T comparable](values map[string]T) *Normalizer[T] {
	n := &Normalizer[T]{values: make(map[string]T, len(values))}
	for k, v := range values {
		n.values[canonical(k)] = v
	}
	return n
}

// NormalizeWithError returns the value spelled raw, or a validation error
// naming the accepted spellings.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	if v, ok := n.values[canonical(raw)]; ok {
		return v, nil
	}
	var zero T
	accepted := make([]string, 0, len(n.values))
	for k := range n.values {
		accepted = append(accepted, k)
	}
	slices.Sort(accepted)
	return zero, errors.ValidationError(
		fmt.Sprintf("unsupported value %q (expected one of: %s)", raw, strings.Join(accepted, ", "))).
		WithContext("value", raw).
		Build()
}
