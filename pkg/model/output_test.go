package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/matryer/is"
)

type testItem struct {
	name  string
	count int
}

func (ti *testItem) Attribute(key string) (any, bool) {
	if key == "name" {
		return ti.name, true
	}
	return nil, false
}

var testOutput = OutputSchema[*testItem]{
	Pass[*testItem]("name"),
	Out("count", func(ti *testItem) (any, error) { return ti.count * 2, nil }),
	Pass[*testItem]("missing"),
}

func TestOutputSchemaEmitsEveryKeyInOrder(t *testing.T) {
	is := is.New(t)

	fields, err := testOutput.Apply(&testItem{name: "n", count: 2})
	is.NoErr(err)

	is.Equal(fields.Keys(), []string{"name", "count", "missing"})

	v, _ := fields.Get("name")
	is.Equal(v, "n")
	v, _ = fields.Get("count")
	is.Equal(v, 4)
	v, ok := fields.Get("missing")
	is.True(ok)
	is.Equal(v, nil)
}

func TestOutputSchemaIsIdempotent(t *testing.T) {
	is := is.New(t)

	item := &testItem{name: "n", count: 2}

	first, err := testOutput.Apply(item)
	is.NoErr(err)
	second, err := testOutput.Apply(item)
	is.NoErr(err)

	b1, _ := json.Marshal(first)
	b2, _ := json.Marshal(second)
	is.Equal(string(b1), string(b2))
}

func TestOutputRuleErrorsArePassedThrough(t *testing.T) {
	is := is.New(t)

	failure := errors.New("boom")
	schema := OutputSchema[*testItem]{
		Out("x", func(*testItem) (any, error) { return nil, failure }),
	}

	_, err := schema.Apply(&testItem{})
	is.Equal(err, failure)
}

func TestFieldSetMarshalsAsOrderedObject(t *testing.T) {
	is := is.New(t)

	fs := FieldSet{{Key: "z", Value: 1}, {Key: "a", Value: "x"}, {Key: "m", Value: nil}}

	b, err := json.Marshal(fs)
	is.NoErr(err)
	is.Equal(string(b), `{"z":1,"a":"x","m":null}`)

	b, err = json.Marshal(FieldSet{})
	is.NoErr(err)
	is.Equal(string(b), `{}`)
}
