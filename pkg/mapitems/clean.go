package mapitems

import (
	"github.com/diwise/map-items/pkg/leaflet"
	"github.com/diwise/map-items/pkg/model"
)

func noActionPayload() map[string]any {
	return map[string]any{
		"id":    NoAction.ID,
		"title": NoAction.Title,
		"name":  NoAction.Name,
		"data":  map[string]any{},
	}
}

// CleanMarker returns a new, not yet stored, marker without an action.
func CleanMarker(opts ...Option) (*MapItem, error) {
	return New(model.Payload{
		"id":       nil,
		"min_zoom": 0,
		"max_zoom": 10,
		"type": map[string]any{
			"id":   Marker.Code,
			"name": Marker.Name,
		},
		"data":   leaflet.MarkerData(leaflet.NewIcon(), leaflet.Headline{}),
		"action": noActionPayload(),
	}, opts...)
}

// CleanPolyline returns a new, not yet stored, polyline without points or
// an action.
func CleanPolyline(opts ...Option) (*MapItem, error) {
	return New(model.Payload{
		"id":       nil,
		"min_zoom": 0,
		"max_zoom": 10,
		"type": map[string]any{
			"id":   Polyline.Code,
			"name": Polyline.Name,
		},
		"data":   leaflet.PolylineData(leaflet.NewLine()),
		"action": noActionPayload(),
	}, opts...)
}

// Clean returns a clean item of the given variant.
func Clean(v Variant, opts ...Option) (*MapItem, error) {
	switch v {
	case Marker:
		return CleanMarker(opts...)
	case Polyline:
		return CleanPolyline(opts...)
	default:
		return nil, NewUnknownVariantError(v)
	}
}
