package model

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
)

// Factory constructs one element of a collection from its payload.
type Factory[T any] func(Payload) (T, error)

// Collection is an ordered, homogeneous sequence of entities. Elements are
// kept in payload order and are never deduplicated, reordered or mutated.
type Collection[T any] struct {
	items []T
}

// NewCollection constructs one element per payload. The first factory error
// aborts construction and is returned as is.
func NewCollection[T any](payloads []Payload, factory Factory[T]) (*Collection[T], error) {
	c := &Collection[T]{
		items: make([]T, 0, len(payloads)),
	}

	for _, p := range payloads {
		item, err := factory(p)
		if err != nil {
			return nil, err
		}
		c.items = append(c.items, item)
	}

	return c, nil
}

func (c *Collection[T]) Len() int {
	return len(c.items)
}

func (c *Collection[T]) At(idx int) T {
	return c.items[idx]
}

// Items returns a copy of the element slice.
func (c *Collection[T]) Items() []T {
	return slices.Clone(c.items)
}

func (c *Collection[T]) All() iter.Seq2[int, T] {
	return slices.All(c.items)
}

// Filter returns the elements matching pred, in collection order.
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	matching := make([]T, 0, len(c.items))

	for _, item := range c.items {
		if pred(item) {
			matching = append(matching, item)
		}
	}

	return matching
}

func PayloadFromJSON(body []byte) (Payload, error) {
	p := Payload{}

	err := json.Unmarshal(body, &p)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return p, nil
}

func PayloadsFromJSON(body []byte) ([]Payload, error) {
	payloads := []Payload{}

	err := json.Unmarshal(body, &payloads)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal payloads: %w", err)
	}

	return payloads, nil
}
