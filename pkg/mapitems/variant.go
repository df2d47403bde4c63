package mapitems

import (
	"fmt"
	"slices"
)

// Variant identifies a kind of map item both by name and by code. Two
// variants are the same variant only if both agree.
type Variant struct {
	Code int
	Name string
}

var (
	Marker   = Variant{Code: 1, Name: "marker"}
	Polyline = Variant{Code: 2, Name: "polyline"}
)

func (v Variant) String() string {
	return fmt.Sprintf("%s(%d)", v.Name, v.Code)
}

var ErrUnknownVariant = fmt.Errorf("unknown variant")

func NewUnknownVariantError(nameOrCode any) error {
	return fmt.Errorf("%w: %v", ErrUnknownVariant, nameOrCode)
}

// ActionDef describes an action that can be attached to a map item.
type ActionDef struct {
	ID    int
	Name  string
	Title string
}

var NoAction = ActionDef{ID: 0, Name: "noAction", Title: "بدون فعالیت"}

// Registry holds the known variants and actions. It is not modified after
// construction and can be shared between goroutines.
type Registry struct {
	variants []Variant
	actions  []ActionDef
}

func NewRegistry(variants []Variant, actions []ActionDef) *Registry {
	return &Registry{
		variants: slices.Clone(variants),
		actions:  slices.Clone(actions),
	}
}

var defaultRegistry = NewRegistry([]Variant{Marker, Polyline}, []ActionDef{NoAction})

// DefaultRegistry returns a registry with the markers, polylines and the
// noAction action.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Variant resolves a variant from a name, a code or a string holding a code.
func (r *Registry) Variant(nameOrCode any) (Variant, bool) {
	switch v := nameOrCode.(type) {
	case Variant:
		if slices.Contains(r.variants, v) {
			return v, true
		}
		return Variant{}, false
	case string:
		if variant, ok := r.VariantByName(v); ok {
			return variant, true
		}
	}

	code, ok := parseInt(nameOrCode)
	if !ok {
		return Variant{}, false
	}

	return r.VariantByCode(code)
}

func (r *Registry) VariantByName(name string) (Variant, bool) {
	idx := slices.IndexFunc(r.variants, func(v Variant) bool { return v.Name == name })
	if idx < 0 {
		return Variant{}, false
	}
	return r.variants[idx], true
}

func (r *Registry) VariantByCode(code int) (Variant, bool) {
	idx := slices.IndexFunc(r.variants, func(v Variant) bool { return v.Code == code })
	if idx < 0 {
		return Variant{}, false
	}
	return r.variants[idx], true
}

func (r *Registry) Variants() []Variant {
	return slices.Clone(r.variants)
}

func (r *Registry) Action(id int) (ActionDef, bool) {
	idx := slices.IndexFunc(r.actions, func(a ActionDef) bool { return a.ID == id })
	if idx < 0 {
		return ActionDef{}, false
	}
	return r.actions[idx], true
}

func (r *Registry) ActionByName(name string) (ActionDef, bool) {
	idx := slices.IndexFunc(r.actions, func(a ActionDef) bool { return a.Name == name })
	if idx < 0 {
		return ActionDef{}, false
	}
	return r.actions[idx], true
}

func (r *Registry) Actions() []ActionDef {
	return slices.Clone(r.actions)
}

type options struct {
	registry *Registry
}

type Option func(*options)

// WithRegistry makes constructors resolve variants and actions through r
// instead of the default registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{registry: defaultRegistry}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
