package foundation

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Option holds a value that may be absent. Absent stays distinguishable
// from the zero value, so Some("") and None differ.
type Option[T any] struct {
	value   T
	present bool
}

func Some[T any](value T) Option[T] { return Option[T]{value: value, present: true} }

func None[T any]() Option[T] { return Option[T]{} }

func (o Option[T]) IsNone() bool { return !o.present }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.present }

func (o Option[T]) UnwrapOr(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

func (o Option[T]) String() string {
	if o.present {
		return fmt.Sprintf("Some(%v)", o.value)
	}
	return "None"
}

// MarshalYAML writes None as null.
func (o Option[T]) MarshalYAML() (any, error) {
	if !o.present {
		return nil, nil
	}
	return o.value, nil
}

// UnmarshalYAML is not called by yaml.v3 for an explicit null, so a
// missing key and `null` both leave the Option as None.
func (o *Option[T]) UnmarshalYAML(node *yaml.Node) error {
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
