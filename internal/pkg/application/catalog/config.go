package catalog

import (
	"fmt"
	"io"

	"github.com/diwise/map-items/pkg/mapitems"
	yaml "gopkg.in/yaml.v2"
)

type ItemTypeInfo struct {
	Code int    `yaml:"code"`
	Name string `yaml:"name"`
}

type ActionInfo struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
}

type Config struct {
	ItemTypes []ItemTypeInfo `yaml:"itemTypes"`
	Actions   []ActionInfo   `yaml:"actions"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	err = cfg.validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	codes := map[int]struct{}{}
	names := map[string]struct{}{}

	for _, t := range cfg.ItemTypes {
		if t.Name == "" {
			return fmt.Errorf("item type with code %d has no name", t.Code)
		}
		if _, ok := codes[t.Code]; ok {
			return fmt.Errorf("duplicate item type code %d", t.Code)
		}
		if _, ok := names[t.Name]; ok {
			return fmt.Errorf("duplicate item type name %q", t.Name)
		}
		codes[t.Code] = struct{}{}
		names[t.Name] = struct{}{}
	}

	ids := map[int]struct{}{}
	actionNames := map[string]struct{}{}

	for _, a := range cfg.Actions {
		if a.Name == "" {
			return fmt.Errorf("action with id %d has no name", a.ID)
		}
		if _, ok := ids[a.ID]; ok {
			return fmt.Errorf("duplicate action id %d", a.ID)
		}
		if _, ok := actionNames[a.Name]; ok {
			return fmt.Errorf("duplicate action name %q", a.Name)
		}
		ids[a.ID] = struct{}{}
		actionNames[a.Name] = struct{}{}
	}

	return nil
}

// Registry returns a registry with the configured item types and actions.
// Markers, polylines and the noAction action are always registered, but can
// be given other titles in the catalogue.
func (cfg *Config) Registry() *mapitems.Registry {
	variants := []mapitems.Variant{mapitems.Marker, mapitems.Polyline}
	for _, t := range cfg.ItemTypes {
		v := mapitems.Variant{Code: t.Code, Name: t.Name}
		if v == mapitems.Marker || v == mapitems.Polyline {
			continue
		}
		variants = append(variants, v)
	}

	noAction := mapitems.NoAction
	actions := []mapitems.ActionDef{}

	for _, a := range cfg.Actions {
		def := mapitems.ActionDef{ID: a.ID, Name: a.Name, Title: a.Title}
		if def.ID == noAction.ID && def.Name == noAction.Name {
			noAction.Title = def.Title
			continue
		}
		actions = append(actions, def)
	}

	return mapitems.NewRegistry(variants, append([]mapitems.ActionDef{noAction}, actions...))
}
