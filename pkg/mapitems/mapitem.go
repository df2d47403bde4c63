package mapitems

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/diwise/map-items/pkg/form"
	"github.com/diwise/map-items/pkg/model"
)

const (
	// ActionURL is where the map client posts map item forms.
	ActionURL string = "/mapDetail"
	// SendType is the encoding of an outbound map item.
	SendType string = "form-data"
)

// MapItem is a marker or polyline drawn on a map.
type MapItem struct {
	ID      any            `mapstructure:"id"`
	MapID   any            `mapstructure:"map_id"`
	MinZoom any            `mapstructure:"min_zoom"`
	MaxZoom any            `mapstructure:"max_zoom"`
	Tags    []string       `mapstructure:"tags"`
	Enable  *bool          `mapstructure:"enable"`
	Data    map[string]any `mapstructure:"data"`

	Action   *Action       `mapstructure:"-"`
	Type     *ItemType     `mapstructure:"-"`
	Entity   *LinkedEntity `mapstructure:"-"`
	FileData *form.File    `mapstructure:"-"`

	input    model.Payload
	registry *Registry
}

func schema(o *options) model.Schema {
	return model.Schema{
		model.Verbatim("id"),
		model.Default("map_id", 1),
		model.Default("min_zoom", 0),
		model.Default("max_zoom", 10),
		model.Related("action", func(fragment any) (any, error) {
			return newAction(fragment, o)
		}),
		model.Related("type", func(fragment any) (any, error) {
			return newItemType(fragment, o)
		}),
		model.Default("tags", []string{}),
		model.Related("entity", func(fragment any) (any, error) {
			return NewLinkedEntity(fragment)
		}),
		model.Computed("enable", resolveEnable),
		model.Computed("data", resolveData),
		model.Verbatim("fileData"),
	}
}

// resolveEnable maps true, 1 and "1" to true and false, 0 and "0" to false.
// Anything else resolves to nil.
func resolveEnable(current any, _ model.Payload) (any, error) {
	if b, ok := current.(bool); ok {
		return b, nil
	}

	n, ok := parseInt(current)
	if !ok {
		return nil, nil
	}

	switch n {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return nil, nil
	}
}

// resolveData accepts an object, or a string holding one. Values of any
// other type resolve to nil.
func resolveData(current any, _ model.Payload) (any, error) {
	switch v := current.(type) {
	case string:
		var parsed any
		err := json.Unmarshal([]byte(v), &parsed)
		if err != nil {
			return nil, model.NewMalformedInputError("data", err)
		}
		if obj, ok := parsed.(map[string]any); ok {
			return obj, nil
		}
		return nil, nil
	case map[string]any:
		return model.CopyValue(v), nil
	case model.Payload:
		return model.CopyValue(map[string]any(v)), nil
	default:
		return nil, nil
	}
}

// New resolves a map item from a payload and normalizes it. The first error
// encountered aborts construction.
func New(input model.Payload, opts ...Option) (*MapItem, error) {
	o := newOptions(opts)

	e, err := model.New(input, schema(o))
	if err != nil {
		return nil, err
	}

	mi := &MapItem{
		input:    e.Input(),
		registry: o.registry,
	}

	err = e.Bind(mi)
	if err != nil {
		return nil, err
	}

	mi.Action = model.As[*Action](e, "action")
	mi.Type = model.As[*ItemType](e, "type")
	mi.Entity = model.As[*LinkedEntity](e, "entity")

	fileData, _ := e.Attribute("fileData")
	mi.FileData, err = form.AsFile(fileData)
	if err != nil {
		return nil, model.NewMalformedInputError("fileData", err)
	}

	err = mi.loadType(o)
	if err != nil {
		return nil, err
	}

	err = mi.loadAction(o)
	if err != nil {
		return nil, err
	}

	mi.Normalize()

	return mi, nil
}

// loadType lets a type_id in the payload take precedence over the type.
func (mi *MapItem) loadType(o *options) error {
	typeID := mi.input["type_id"]
	if !truthy(typeID) {
		return nil
	}

	t, err := newItemType(typeID, o)
	if err != nil {
		return err
	}

	t.ConvertToValidValue()
	mi.Type = t

	return nil
}

// loadAction resolves an action that was handed over as a JSON string.
func (mi *MapItem) loadAction(o *options) error {
	if mi.Action == nil || !mi.Action.Pending() {
		return nil
	}

	var fragment any
	err := json.Unmarshal([]byte(mi.Action.fragment.(string)), &fragment)
	if err != nil {
		return model.NewMalformedInputError("action", err)
	}

	if _, ok := model.PayloadOf(fragment); !ok {
		return model.NewUnresolvableRelationError("action", fragment)
	}

	a, err := newAction(fragment, o)
	if err != nil {
		return err
	}

	mi.Action = a

	return nil
}

// Normalize completes the related entities from the registry and makes sure
// a marker icon has an icon url. It can be run again after the item has been
// modified.
func (mi *MapItem) Normalize() {
	for _, r := range mi.related() {
		r.ConvertToValidValue()
	}

	if mi.IsMarker() {
		if options := iconOptions(mi.Data); options != nil {
			if _, ok := options["iconUrl"].(string); !ok {
				options["iconUrl"] = ""
			}
		}
	}
}

var (
	_ model.Related = (*Action)(nil)
	_ model.Related = (*ItemType)(nil)
	_ model.Related = (*LinkedEntity)(nil)
)

// related returns the related entities the item carries, in schema order.
func (mi *MapItem) related() []model.Related {
	related := []model.Related{}

	if mi.Action != nil {
		related = append(related, mi.Action)
	}
	if mi.Type != nil {
		related = append(related, mi.Type)
	}
	if mi.Entity != nil {
		related = append(related, mi.Entity)
	}

	return related
}

func iconOptions(data map[string]any) map[string]any {
	icon, ok := data["icon"].(map[string]any)
	if !ok {
		return nil
	}

	options, _ := icon["options"].(map[string]any)
	return options
}

// IconURL returns the url of the marker icon, or an empty string.
func (mi *MapItem) IconURL() string {
	url, _ := iconOptions(mi.Data)["iconUrl"].(string)
	return url
}

func (mi *MapItem) Is(v Variant) bool {
	return mi.Type != nil && mi.Type.Is(v)
}

func (mi *MapItem) IsMarker() bool {
	return mi.Is(Marker)
}

func (mi *MapItem) IsPolyline() bool {
	return mi.Is(Polyline)
}

func (mi *MapItem) Input() model.Payload {
	return mi.input
}

func (mi *MapItem) Attribute(key string) (any, bool) {
	switch key {
	case "id":
		return mi.ID, true
	case "map_id":
		return mi.MapID, true
	case "min_zoom":
		return mi.MinZoom, true
	case "max_zoom":
		return mi.MaxZoom, true
	case "tags":
		return mi.Tags, true
	case "enable":
		if mi.Enable == nil {
			return nil, true
		}
		return *mi.Enable, true
	case "data":
		return mi.Data, true
	default:
		return nil, false
	}
}

// Output flattens a map item into the fields of the map detail form.
var Output = model.OutputSchema[*MapItem]{
	model.Pass[*MapItem]("id"),
	model.Pass[*MapItem]("map_id"),
	model.Pass[*MapItem]("min_zoom"),
	model.Pass[*MapItem]("max_zoom"),
	model.Out("enable", func(mi *MapItem) (any, error) {
		if mi.Enable != nil && *mi.Enable {
			return 1, nil
		}
		return 0, nil
	}),
	model.Out("tags", func(mi *MapItem) (any, error) {
		return joinTags(mi.Tags), nil
	}),
	model.Out("type_id", func(mi *MapItem) (any, error) {
		if mi.Type == nil {
			return "", nil
		}
		return mi.Type.ID, nil
	}),
	model.Out("data", func(mi *MapItem) (any, error) {
		b, err := json.Marshal(mi.Data)
		if err != nil {
			return nil, model.NewMalformedInputError("data", err)
		}
		return string(b), nil
	}),
	model.Out("action", func(mi *MapItem) (any, error) {
		if mi.Action == nil {
			return nil, nil
		}

		fields, err := mi.Action.APIResource()
		if err != nil {
			return nil, err
		}

		b, err := json.Marshal(fields)
		if err != nil {
			return nil, model.NewMalformedInputError("action", err)
		}
		return string(b), nil
	}),
	model.Out("photo_address", func(mi *MapItem) (any, error) {
		return mi.IconURL(), nil
	}),
	model.Out("photo", func(mi *MapItem) (any, error) {
		if mi.FileData == nil {
			return nil, nil
		}
		return mi.FileData, nil
	}),
	model.Out("entity_type", func(mi *MapItem) (any, error) {
		if mi.Entity == nil || mi.Entity.IsNothing() {
			return "", nil
		}
		return mi.Entity.EntityType, nil
	}),
	model.Out("entity_id", func(mi *MapItem) (any, error) {
		if mi.Entity == nil || mi.Entity.IsNothing() || mi.Entity.EntityID == nil {
			return "", nil
		}
		return mi.Entity.EntityID, nil
	}),
}

func (mi *MapItem) APIResource() (model.FieldSet, error) {
	return Output.Apply(mi)
}

func joinTags(tags []string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, strings.Join(tags, ","))
}

// FeatureID is the id of the item as a string, or an empty string for items
// that have not been stored yet.
func (mi *MapItem) FeatureID() string {
	switch id := mi.ID.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprint(id)
	}
}
