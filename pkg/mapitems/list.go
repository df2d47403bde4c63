package mapitems

import (
	"github.com/diwise/map-items/pkg/geojson"
	"github.com/diwise/map-items/pkg/model"
)

// MapItemList is an ordered list of map items.
type MapItemList struct {
	*model.Collection[*MapItem]

	registry *Registry
}

func NewList(payloads []model.Payload, opts ...Option) (*MapItemList, error) {
	o := newOptions(opts)

	c, err := model.NewCollection(payloads, func(p model.Payload) (*MapItem, error) {
		return New(p, opts...)
	})
	if err != nil {
		return nil, err
	}

	return &MapItemList{Collection: c, registry: o.registry}, nil
}

func (l *MapItemList) Markers() []*MapItem {
	return l.ByVariant(Marker)
}

func (l *MapItemList) Polylines() []*MapItem {
	return l.ByVariant(Polyline)
}

func (l *MapItemList) ByVariant(v Variant) []*MapItem {
	return l.Filter(func(mi *MapItem) bool {
		return mi.Is(v)
	})
}

// ByType returns the items of the variant with the given name or code.
func (l *MapItemList) ByType(nameOrCode any) ([]*MapItem, error) {
	v, ok := l.registry.Variant(nameOrCode)
	if !ok {
		return nil, NewUnknownVariantError(nameOrCode)
	}

	return l.ByVariant(v), nil
}

func (l *MapItemList) FeatureCollection() (*geojson.FeatureCollection, error) {
	return FeatureCollection(l.Items())
}

// FeatureCollection exports items as GeoJSON features.
func FeatureCollection(items []*MapItem) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()

	for _, mi := range items {
		f, err := mi.Feature()
		if err != nil {
			return nil, err
		}
		fc.Features = append(fc.Features, f)
	}

	return fc, nil
}
