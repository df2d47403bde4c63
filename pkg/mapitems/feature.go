package mapitems

import (
	"fmt"

	"github.com/diwise/map-items/pkg/geojson"
)

// Feature exports the item as a GeoJSON feature. Markers become points and
// polylines line strings. Items of other types, or without coordinates,
// get a null geometry. The first point of the geometry is also put in the
// lat and lng properties.
func (mi *MapItem) Feature() (*geojson.Feature, error) {
	var geometry geojson.Geometry

	switch {
	case mi.IsMarker():
		if latlng, ok := mi.Data["latlng"]; ok && latlng != nil {
			p, err := geojson.PointFromLatLng(latlng)
			if err != nil {
				return nil, fmt.Errorf("failed to export marker %s: %w", mi.FeatureID(), err)
			}
			geometry = p
		}
	case mi.IsPolyline():
		if latlngs, ok := mi.Data["latlngs"]; ok && latlngs != nil {
			ls, err := geojson.LineStringFromLatLngs(latlngs)
			if err != nil {
				return nil, fmt.Errorf("failed to export polyline %s: %w", mi.FeatureID(), err)
			}
			geometry = ls
		}
	}

	properties := map[string]any{
		"map_id":   mi.MapID,
		"min_zoom": mi.MinZoom,
		"max_zoom": mi.MaxZoom,
		"tags":     mi.Tags,
		"enable":   mi.Enable != nil && *mi.Enable,
	}

	if mi.Type != nil {
		properties["type"] = mi.Type.Name
	}

	if geometry != nil {
		if p, ok := geometry.AsPoint(); ok {
			properties["lat"] = p.Latitude()
			properties["lng"] = p.Longitude()
		}
	}

	if url := mi.IconURL(); url != "" {
		properties["iconUrl"] = url
	}

	if mi.Entity != nil && !mi.Entity.IsNothing() {
		properties["entity_type"] = mi.Entity.EntityType
		properties["entity_id"] = mi.Entity.EntityID
	}

	return geojson.NewFeature(mi.FeatureID(), geometry, properties), nil
}
