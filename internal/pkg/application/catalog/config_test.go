package catalog

import (
	"bytes"
	"testing"

	"github.com/diwise/map-items/pkg/mapitems"
	"github.com/matryer/is"
)

func TestLoadConfig(t *testing.T) {
	is, config := setupConfigTest(t)

	is.Equal(len(config.ItemTypes), 3) // should find three item types
	is.Equal(len(config.Actions), 2)   // should find two actions
}

func TestLoadItemTypes(t *testing.T) {
	is, config := setupConfigTest(t)

	is.Equal(config.ItemTypes[2].Code, 3)
	is.Equal(config.ItemTypes[2].Name, "area")
}

func TestRegistryHoldsConfiguredVariants(t *testing.T) {
	is, config := setupConfigTest(t)
	reg := config.Registry()

	is.Equal(len(reg.Variants()), 3) // built in variants should not be registered twice

	v, ok := reg.Variant("area")
	is.True(ok)
	is.Equal(v, mapitems.Variant{Code: 3, Name: "area"})

	v, ok = reg.Variant(1)
	is.True(ok)
	is.Equal(v, mapitems.Marker)
}

func TestRegistryHoldsConfiguredActions(t *testing.T) {
	is, config := setupConfigTest(t)
	reg := config.Registry()

	noAction, ok := reg.Action(0)
	is.True(ok)
	is.Equal(noAction.Title, "No action") // title should be overridden by the catalogue

	popup, ok := reg.ActionByName("popup")
	is.True(ok)
	is.Equal(popup.ID, 1)
}

func TestEmptyCatalogueGivesDefaultRegistry(t *testing.T) {
	is := is.New(t)

	config, err := LoadConfiguration(bytes.NewBufferString(""))
	is.NoErr(err)

	reg := config.Registry()
	is.Equal(reg.Variants(), mapitems.DefaultRegistry().Variants())
	is.Equal(reg.Actions(), mapitems.DefaultRegistry().Actions())
}

func TestDuplicateCodesAreRejected(t *testing.T) {
	is := is.New(t)

	_, err := LoadConfiguration(bytes.NewBufferString(duplicateConfigFile))
	is.True(err != nil) // duplicate codes should not be accepted
}

func setupConfigTest(t *testing.T) (*is.I, *Config) {
	is := is.New(t)
	cfgData := bytes.NewBuffer([]byte(configFile))
	config, err := LoadConfiguration(cfgData)
	is.NoErr(err)

	return is, config
}

var configFile string = `
itemTypes:
  - code: 1
    name: marker
  - code: 2
    name: polyline
  - code: 3
    name: area
actions:
  - id: 0
    name: noAction
    title: No action
  - id: 1
    name: popup
    title: Show popup
`

var duplicateConfigFile string = `
itemTypes:
  - code: 3
    name: area
  - code: 3
    name: zone
`
