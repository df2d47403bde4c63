package model

import (
	"bytes"
	"encoding/json"
)

// OutputFunc derives one outbound value from an already resolved entity.
type OutputFunc[T any] func(item T) (any, error)

// OutputField is a rule for one outbound field. A nil Value passes the
// attribute with the same key through, if the entity is an Attributer.
type OutputField[T any] struct {
	Key   string
	Value OutputFunc[T]
}

func Out[T any](key string, fn OutputFunc[T]) OutputField[T] {
	return OutputField[T]{Key: key, Value: fn}
}

func Pass[T any](key string) OutputField[T] {
	return OutputField[T]{Key: key}
}

// OutputSchema is an ordered list of output rules, declared independently
// of the schema the entity was resolved with.
type OutputSchema[T any] []OutputField[T]

func (s OutputSchema[T]) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, f := range s {
		keys = append(keys, f.Key)
	}
	return keys
}

// Apply evaluates every rule against item. All declared keys are emitted,
// in order. Rule errors are returned as is.
func (s OutputSchema[T]) Apply(item T) (FieldSet, error) {
	fields := make(FieldSet, 0, len(s))

	for _, f := range s {
		var v any

		if f.Value != nil {
			var err error
			v, err = f.Value(item)
			if err != nil {
				return nil, err
			}
		} else if a, ok := any(item).(Attributer); ok {
			v, _ = a.Attribute(f.Key)
		}

		fields = append(fields, FieldValue{Key: f.Key, Value: v})
	}

	return fields, nil
}

type FieldValue struct {
	Key   string
	Value any
}

// FieldSet is a flat, ordered list of outbound fields.
type FieldSet []FieldValue

func (fs FieldSet) Get(key string) (any, bool) {
	for _, f := range fs {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (fs FieldSet) Keys() []string {
	keys := make([]string, 0, len(fs))
	for _, f := range fs {
		keys = append(keys, f.Key)
	}
	return keys
}

func (fs FieldSet) Map() map[string]any {
	m := make(map[string]any, len(fs))
	for _, f := range fs {
		m[f.Key] = f.Value
	}
	return m
}

// MarshalJSON encodes the field set as a JSON object, keeping field order.
func (fs FieldSet) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')

	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
