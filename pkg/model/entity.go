package model

import (
	"fmt"
	"slices"

	"github.com/mitchellh/mapstructure"
)

// Entity holds the attributes resolved from a payload by a schema. Every
// declared key is present, holding nil when no rule produced a value.
type Entity struct {
	fragment any
	input    Payload
	keys     []string
	values   map[string]any
}

// New resolves input against schema. The first rule error aborts the
// resolution and is returned as is, no partially resolved entity is returned.
func New(input Payload, schema Schema) (*Entity, error) {
	if input == nil {
		input = Payload{}
	}

	e := &Entity{
		fragment: input,
		input:    input,
		keys:     schema.Keys(),
		values:   make(map[string]any, len(schema)),
	}

	for _, f := range schema {
		v, err := f.resolve(input)
		if err != nil {
			return nil, err
		}
		e.values[f.Key] = v
	}

	return e, nil
}

// NewFromFragment resolves a payload fragment that may not be object shaped.
// Non object fragments resolve as an empty payload and are kept available
// through Fragment for post construction handling.
func NewFromFragment(fragment any, schema Schema) (*Entity, error) {
	input, _ := PayloadOf(fragment)

	e, err := New(input, schema)
	if err != nil {
		return nil, err
	}

	e.fragment = fragment

	return e, nil
}

func (e *Entity) Keys() []string {
	return slices.Clone(e.keys)
}

func (e *Entity) Attribute(key string) (any, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Set replaces a resolved attribute. Only declared keys can be set.
func (e *Entity) Set(key string, value any) error {
	if _, ok := e.values[key]; !ok {
		return NewUnknownFieldError(key)
	}

	e.values[key] = value
	return nil
}

func (e *Entity) Input() Payload {
	return e.input
}

func (e *Entity) Fragment() any {
	return e.fragment
}

// Bind decodes the resolved attributes into target, a pointer to a struct
// whose fields are tagged with `mapstructure:"<key>"`. Scalars are weakly
// typed, so "5" binds to an int field. Related entities are expected to be
// picked up with As, their struct fields should be tagged `mapstructure:"-"`.
func (e *Entity) Bind(target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder for %T: %w", target, err)
	}

	err = decoder.Decode(e.values)
	if err != nil {
		return NewMalformedInputError(fmt.Sprintf("%T", target), err)
	}

	return nil
}

// As returns the attribute stored under key as a T, or the zero value of T
// if the attribute is missing or of another type.
func As[T any](e *Entity, key string) T {
	v, _ := e.values[key].(T)
	return v
}
