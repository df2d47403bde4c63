package mapitems

import (
	"strings"

	"github.com/diwise/map-items/pkg/model"
)

// NothingEntityType marks a map item as explicitly not linked to anything.
const NothingEntityType string = "nothing"

// LinkedEntity points out an entity in another system that a map item
// represents.
type LinkedEntity struct {
	EntityType string `mapstructure:"entity_type"`
	EntityID   any    `mapstructure:"entity_id"`
}

var linkedEntitySchema = model.Schema{
	model.Verbatim("entity_type"),
	model.Verbatim("entity_id"),
}

var linkedEntityOutput = model.OutputSchema[*LinkedEntity]{
	model.Out("entity_type", func(le *LinkedEntity) (any, error) { return le.EntityType, nil }),
	model.Out("entity_id", func(le *LinkedEntity) (any, error) { return le.EntityID, nil }),
}

func NewLinkedEntity(fragment any) (*LinkedEntity, error) {
	if _, ok := model.PayloadOf(fragment); !ok {
		return nil, model.NewUnresolvableRelationError("entity", fragment)
	}

	e, err := model.NewFromFragment(fragment, linkedEntitySchema)
	if err != nil {
		return nil, err
	}

	le := &LinkedEntity{}

	err = e.Bind(le)
	if err != nil {
		return nil, err
	}

	return le, nil
}

func (le *LinkedEntity) IsNothing() bool {
	return le.EntityType == NothingEntityType
}

func (le *LinkedEntity) ConvertToValidValue() {
	le.EntityType = strings.TrimSpace(le.EntityType)
}

func (le *LinkedEntity) APIResource() (model.FieldSet, error) {
	return linkedEntityOutput.Apply(le)
}
