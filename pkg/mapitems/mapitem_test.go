package mapitems

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/diwise/map-items/pkg/form"
	"github.com/diwise/map-items/pkg/model"
	"github.com/matryer/is"
)

func TestEnableCoercion(t *testing.T) {
	is := is.New(t)

	cases := map[string]struct {
		input    model.Payload
		expected *bool
	}{
		"true":          {model.Payload{"enable": true}, ptr(true)},
		"one":           {model.Payload{"enable": 1}, ptr(true)},
		"float one":     {model.Payload{"enable": 1.0}, ptr(true)},
		"string one":    {model.Payload{"enable": "1"}, ptr(true)},
		"false":         {model.Payload{"enable": false}, ptr(false)},
		"zero":          {model.Payload{"enable": 0}, ptr(false)},
		"string zero":   {model.Payload{"enable": "0"}, ptr(false)},
		"yes":           {model.Payload{"enable": "yes"}, nil},
		"two":           {model.Payload{"enable": 2}, nil},
		"null":          {model.Payload{"enable": nil}, nil},
		"omitted":       {model.Payload{}, nil},
		"leading digit": {model.Payload{"enable": "1abc"}, ptr(true)},
		"2^64":          {model.Payload{"enable": "18446744073709551616"}, nil},
		"2^64 + 1":      {model.Payload{"enable": "18446744073709551617"}, nil},
		"huge float":    {model.Payload{"enable": 1.8446744073709552e19}, nil},
	}

	for name, tc := range cases {
		mi, err := New(tc.input)
		is.NoErr(err)

		if tc.expected == nil {
			is.True(mi.Enable == nil) // unrecognized encodings stay unset
			continue
		}

		is.True(mi.Enable != nil)
		if *mi.Enable != *tc.expected {
			t.Errorf("%s: expected enable to be %v", name, *tc.expected)
		}
	}
}

func TestDataStringAndObjectResolveEqually(t *testing.T) {
	is := is.New(t)

	fromString, err := New(model.Payload{"data": `{"a":1}`})
	is.NoErr(err)

	fromObject, err := New(model.Payload{"data": map[string]any{"a": 1.0}})
	is.NoErr(err)

	is.Equal(fromString.Data, fromObject.Data)
	is.Equal(fromString.Data, map[string]any{"a": 1.0})
}

func TestDataOfOtherTypesResolvesToNil(t *testing.T) {
	is := is.New(t)

	for _, data := range []any{42, 4.2, true, nil, []any{1, 2}, `[1,2]`, `null`} {
		mi, err := New(model.Payload{"data": data})
		is.NoErr(err)
		is.True(mi.Data == nil)
	}
}

func TestMalformedDataAbortsConstruction(t *testing.T) {
	is := is.New(t)

	mi, err := New(model.Payload{"data": `{"a":`})

	is.True(mi == nil)
	is.True(errors.Is(err, model.ErrMalformedInput))
}

func TestObjectDataIsNotShared(t *testing.T) {
	is := is.New(t)

	data := map[string]any{"icon": map[string]any{"options": map[string]any{}}}

	mi, err := New(model.Payload{"type": "marker", "data": data})
	is.NoErr(err)

	is.Equal(mi.IconURL(), "")
	_, changed := data["icon"].(map[string]any)["options"].(map[string]any)["iconUrl"]
	is.True(!changed) // the input payload must be left untouched
}

func TestDefaults(t *testing.T) {
	is := is.New(t)

	mi, err := New(nil)
	is.NoErr(err)

	is.True(mi.ID == nil)
	is.Equal(mi.MapID, 1)
	is.Equal(mi.MinZoom, 0)
	is.Equal(mi.MaxZoom, 10)
	is.Equal(mi.Tags, []string{})
	is.True(mi.Type == nil)
	is.True(mi.Action == nil)
	is.True(mi.Entity == nil)
	is.True(mi.FileData == nil)
}

func TestExplicitZeroZoomIsKept(t *testing.T) {
	is := is.New(t)

	mi, err := New(model.Payload{"max_zoom": 0, "map_id": "4"})
	is.NoErr(err)

	is.Equal(mi.MaxZoom, 0)
	is.Equal(mi.MapID, "4")
}

func TestIDAndZoomsArePassedThroughUnchanged(t *testing.T) {
	is := is.New(t)

	mi, err := New(model.Payload{"id": "a1b2-c3", "min_zoom": 2.5, "max_zoom": "12", "map_id": 7.9})
	is.NoErr(err)

	is.Equal(mi.ID, "a1b2-c3")
	is.Equal(mi.FeatureID(), "a1b2-c3")

	fields, err := mi.APIResource()
	is.NoErr(err)

	expect := func(key string, value any) {
		v, _ := fields.Get(key)
		is.Equal(v, value)
	}

	expect("id", "a1b2-c3")
	expect("min_zoom", 2.5)
	expect("max_zoom", "12")
	expect("map_id", 7.9)
}

func TestTypeIDRoundTrip(t *testing.T) {
	is := is.New(t)

	mi, err := New(model.Payload{"type_id": 1})
	is.NoErr(err)

	is.Equal(mi.Type.ID, 1)
	is.Equal(mi.Type.Name, "marker")

	fields, err := mi.APIResource()
	is.NoErr(err)

	typeID, _ := fields.Get("type_id")
	is.Equal(typeID, 1)
}

func TestTypeIDTakesPrecedenceOverType(t *testing.T) {
	is := is.New(t)

	mi, err := New(model.Payload{"type": map[string]any{"id": 1, "name": "marker"}, "type_id": "polyline"})
	is.NoErr(err)

	is.True(mi.IsPolyline())
}

func TestTypeShorthands(t *testing.T) {
	is := is.New(t)

	for _, shorthand := range []any{"marker", 1, int32(1), 1.0, "1", json.Number("1")} {
		mi, err := New(model.Payload{"type": shorthand})
		is.NoErr(err)
		is.Equal(mi.Type.Variant(), Marker)
	}
}

func TestNumbersDecodedWithUseNumberResolveTheType(t *testing.T) {
	is := is.New(t)

	d := json.NewDecoder(strings.NewReader(`{"type_id": 2, "type": 1}`))
	d.UseNumber()

	p := model.Payload{}
	is.NoErr(d.Decode(&p))

	mi, err := New(p)
	is.NoErr(err)
	is.True(mi.IsPolyline())

	mi, err = New(model.Payload{"type": 1, "type_id": json.Number("0")})
	is.NoErr(err)
	is.True(mi.IsMarker()) // a zero type_id does not override the type
}

func TestUnresolvableType(t *testing.T) {
	is := is.New(t)

	mi, err := New(model.Payload{"type": []any{1}})

	is.True(mi == nil)
	is.True(errors.Is(err, model.ErrUnresolvableRelation))
}

func TestPendingActionIsResolvedFromJSON(t *testing.T) {
	is := is.New(t)

	mi, err := New(model.Payload{"action": `{"id":0,"data":{"url":"x"}}`})
	is.NoErr(err)

	is.True(!mi.Action.Pending())
	is.Equal(mi.Action.Name, NoAction.Name)
	is.Equal(mi.Action.Title, NoAction.Title)
	is.Equal(mi.Action.Data, map[string]any{"url": "x"})
}

func TestMalformedPendingAction(t *testing.T) {
	is := is.New(t)

	_, err := New(model.Payload{"action": `{"id":`})
	is.True(errors.Is(err, model.ErrMalformedInput))

	_, err = New(model.Payload{"action": `[1,2]`})
	is.True(errors.Is(err, model.ErrUnresolvableRelation))
}

func TestActionIsCompletedByName(t *testing.T) {
	is := is.New(t)

	mi, err := New(model.Payload{"action": map[string]any{"id": 5, "name": "noAction"}})
	is.NoErr(err)

	is.Equal(mi.Action.ID, 0)
	is.Equal(mi.Action.Title, NoAction.Title)
	is.Equal(mi.Action.Data, map[string]any{})
}

func TestMapItemOutput(t *testing.T) {
	is := is.New(t)

	p, err := model.PayloadFromJSON([]byte(markerJSON))
	is.NoErr(err)

	mi, err := New(p)
	is.NoErr(err)

	fields, err := mi.APIResource()
	is.NoErr(err)

	is.Equal(fields.Keys(), []string{
		"id", "map_id", "min_zoom", "max_zoom", "enable", "tags", "type_id", "data",
		"action", "photo_address", "photo", "entity_type", "entity_id",
	})

	expect := func(key string, value any) {
		v, _ := fields.Get(key)
		is.Equal(v, value)
	}

	expect("id", 12.0)
	expect("map_id", 3.0)
	expect("min_zoom", 0)
	expect("max_zoom", 10)
	expect("enable", 1)
	expect("tags", "old_town,cafe")
	expect("type_id", 1)
	expect("data", `{"icon":{"options":{"iconUrl":""}},"latlng":[62.39,17.3]}`)
	expect("action", `{"id":0,"name":"noAction","title":"بدون فعالیت","data":{}}`)
	expect("photo_address", "")
	expect("photo", nil)
	expect("entity_type", "Beach")
	expect("entity_id", "urn:beach:1")
}

func TestOutputIsIdempotent(t *testing.T) {
	is := is.New(t)

	p, _ := model.PayloadFromJSON([]byte(markerJSON))
	mi, err := New(p)
	is.NoErr(err)

	first, err := mi.APIResource()
	is.NoErr(err)
	second, err := mi.APIResource()
	is.NoErr(err)

	b1, _ := json.Marshal(first)
	b2, _ := json.Marshal(second)
	is.Equal(string(b1), string(b2))
}

func TestOutputOfAnItemWithoutRelatedEntities(t *testing.T) {
	is := is.New(t)

	mi, err := New(model.Payload{"entity": map[string]any{"entity_type": "nothing", "entity_id": 7}})
	is.NoErr(err)

	fields, err := mi.APIResource()
	is.NoErr(err)

	typeID, _ := fields.Get("type_id")
	action, _ := fields.Get("action")
	entityType, _ := fields.Get("entity_type")
	entityID, _ := fields.Get("entity_id")
	enable, _ := fields.Get("enable")

	is.Equal(typeID, "")
	is.Equal(action, nil)
	is.Equal(entityType, "")
	is.Equal(entityID, "")
	is.Equal(enable, 0)
}

func TestNormalizeCanBeRerunAfterMutation(t *testing.T) {
	is := is.New(t)

	mi, err := CleanMarker()
	is.NoErr(err)

	delete(mi.Data["icon"].(map[string]any)["options"].(map[string]any), "iconUrl")
	mi.Action.Name = ""

	mi.Normalize()
	mi.Normalize()

	is.Equal(mi.IconURL(), "")
	_, ok := iconOptions(mi.Data)["iconUrl"]
	is.True(ok)
	is.Equal(mi.Action.Name, NoAction.Name)
}

func TestRelatedEntitiesAreCollectedInSchemaOrder(t *testing.T) {
	is := is.New(t)

	p, _ := model.PayloadFromJSON([]byte(markerJSON))
	mi, err := New(p)
	is.NoErr(err)

	related := mi.related()
	is.Equal(len(related), 3)
	is.Equal(related[0], model.Related(mi.Action))
	is.Equal(related[1], model.Related(mi.Type))
	is.Equal(related[2], model.Related(mi.Entity))

	for _, r := range related {
		_, err := r.APIResource()
		is.NoErr(err)
	}

	empty, err := New(nil)
	is.NoErr(err)
	is.Equal(len(empty.related()), 0)
}

func TestFileDataIsUsedAsPhoto(t *testing.T) {
	is := is.New(t)

	mi, err := New(model.Payload{"fileData": []byte("png")})
	is.NoErr(err)

	fields, _ := mi.APIResource()
	photo, _ := fields.Get("photo")
	is.Equal(string(photo.(*form.File).Content), "png")
}

func TestUnusableFileDataIsMalformed(t *testing.T) {
	is := is.New(t)

	_, err := New(model.Payload{"fileData": 42})
	is.True(errors.Is(err, model.ErrMalformedInput))
}

func TestCustomRegistry(t *testing.T) {
	is := is.New(t)

	area := Variant{Code: 3, Name: "area"}
	popup := ActionDef{ID: 1, Name: "popup", Title: "Popup"}
	reg := NewRegistry([]Variant{Marker, Polyline, area}, []ActionDef{NoAction, popup})

	mi, err := New(model.Payload{"type_id": "3", "action": map[string]any{"id": 1}}, WithRegistry(reg))
	is.NoErr(err)

	is.True(mi.Is(area))
	is.Equal(mi.Action.Name, "popup")

	mi, err = New(model.Payload{"type_id": "3"})
	is.NoErr(err)
	is.True(!mi.Is(area)) // unknown to the default registry
}

func ptr[T any](v T) *T {
	return &v
}

const markerJSON string = `{
	"id": 12,
	"map_id": 3,
	"enable": "1",
	"tags": ["old town", "cafe"],
	"type": {"id": 1},
	"data": "{\"latlng\":[62.39,17.30],\"icon\":{\"options\":{}}}",
	"action": "{\"id\":0}",
	"entity": {"entity_type": "Beach", "entity_id": "urn:beach:1"}
}`
