package mapitems

import (
	"encoding/json"

	"github.com/diwise/map-items/pkg/model"
)

// ItemType is the type of a map item. It is resolved from either an object
// holding an id and a name, or from a bare name or code.
type ItemType struct {
	ID   int    `mapstructure:"id"`
	Name string `mapstructure:"name"`

	registry *Registry
}

var itemTypeSchema = model.Schema{
	model.Verbatim("id"),
	model.Verbatim("name"),
}

var itemTypeOutput = model.OutputSchema[*ItemType]{
	model.Out("id", func(t *ItemType) (any, error) { return t.ID, nil }),
	model.Out("name", func(t *ItemType) (any, error) { return t.Name, nil }),
}

func NewItemType(fragment any, opts ...Option) (*ItemType, error) {
	return newItemType(fragment, newOptions(opts))
}

func newItemType(fragment any, o *options) (*ItemType, error) {
	switch fragment.(type) {
	case map[string]any, model.Payload:
	case string, json.Number, int, int32, int64, float32, float64:
		fragment = model.Payload{"name": fragment}
	default:
		return nil, model.NewUnresolvableRelationError("type", fragment)
	}

	e, err := model.NewFromFragment(fragment, itemTypeSchema)
	if err != nil {
		return nil, err
	}

	t := &ItemType{registry: o.registry}

	err = e.Bind(t)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// ConvertToValidValue completes the type from the registry, looking it up by
// code when there is one and by name (or numeric name) otherwise. Unknown
// types are left as they are.
func (t *ItemType) ConvertToValidValue() {
	var v Variant
	var ok bool

	if t.ID != 0 {
		v, ok = t.registry.VariantByCode(t.ID)
	} else {
		v, ok = t.registry.Variant(t.Name)
	}

	if ok {
		t.ID = v.Code
		t.Name = v.Name
	}
}

func (t *ItemType) Variant() Variant {
	return Variant{Code: t.ID, Name: t.Name}
}

func (t *ItemType) Is(v Variant) bool {
	return t.Variant() == v
}

func (t *ItemType) APIResource() (model.FieldSet, error) {
	return itemTypeOutput.Apply(t)
}
