package mapitems

import (
	"github.com/diwise/map-items/pkg/model"
)

// Action is what happens when a map item is clicked on.
type Action struct {
	ID    int            `mapstructure:"id"`
	Title string         `mapstructure:"title"`
	Name  string         `mapstructure:"name"`
	Data  map[string]any `mapstructure:"data"`

	fragment any
	registry *Registry
}

var actionSchema = model.Schema{
	model.Default("id", 0),
	model.Verbatim("title"),
	model.Verbatim("name"),
	model.Default("data", map[string]any{}),
}

var actionOutput = model.OutputSchema[*Action]{
	model.Pass[*Action]("id"),
	model.Pass[*Action]("name"),
	model.Pass[*Action]("title"),
	model.Pass[*Action]("data"),
}

// NewAction resolves an action from an object. A string fragment is kept
// as is and leaves the action pending, see Pending.
func NewAction(fragment any, opts ...Option) (*Action, error) {
	return newAction(fragment, newOptions(opts))
}

func newAction(fragment any, o *options) (*Action, error) {
	switch fragment.(type) {
	case map[string]any, model.Payload, string:
	default:
		return nil, model.NewUnresolvableRelationError("action", fragment)
	}

	e, err := model.NewFromFragment(fragment, actionSchema)
	if err != nil {
		return nil, err
	}

	a := &Action{fragment: fragment, registry: o.registry}

	err = e.Bind(a)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// Pending reports whether the action was handed over as a JSON encoded
// string that has not been resolved yet.
func (a *Action) Pending() bool {
	_, isString := a.fragment.(string)
	return isString && a.Name == ""
}

// ConvertToValidValue fills in name and title from the registry. An action
// with a known name gets the id of that name, otherwise name and title are
// looked up by id.
func (a *Action) ConvertToValidValue() {
	if a.Data == nil {
		a.Data = map[string]any{}
	}

	var def ActionDef
	var ok bool

	if a.Name != "" {
		def, ok = a.registry.ActionByName(a.Name)
	} else {
		def, ok = a.registry.Action(a.ID)
	}

	if !ok {
		return
	}

	a.ID = def.ID
	a.Name = def.Name

	if a.Title == "" {
		a.Title = def.Title
	}
}

func (a *Action) Attribute(key string) (any, bool) {
	switch key {
	case "id":
		return a.ID, true
	case "title":
		return a.Title, true
	case "name":
		return a.Name, true
	case "data":
		return a.Data, true
	default:
		return nil, false
	}
}

func (a *Action) APIResource() (model.FieldSet, error) {
	return actionOutput.Apply(a)
}
