package geojson

import (
	"fmt"
)

type FeatureCollection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

func NewFeatureCollection(features ...*Feature) *FeatureCollection {
	fc := &FeatureCollection{
		Type:     "FeatureCollection",
		Features: []*Feature{},
	}

	fc.Features = append(fc.Features, features...)

	return fc
}

type Feature struct {
	ID         string         `json:"id,omitempty"`
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

func NewFeature(id string, geometry Geometry, properties map[string]any) *Feature {
	if properties == nil {
		properties = map[string]any{}
	}

	return &Feature{
		ID:         id,
		Type:       "Feature",
		Geometry:   geometry,
		Properties: properties,
	}
}

type Geometry interface {
	GeometryType() string
	AsPoint() (Point, bool)
}

// Point is used as the value object for a GeoJSON Point
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewPoint creates a Point from a WGS84 coordinate
func NewPoint(longitude, latitude float64) *Point {
	return &Point{
		Type:        "Point",
		Coordinates: [2]float64{longitude, latitude},
	}
}

func (p *Point) GeometryType() string {
	return p.Type
}

func (p *Point) AsPoint() (Point, bool) {
	// Return a copy of this point to prevent mutation
	return Point{
		Type:        p.Type,
		Coordinates: [2]float64{p.Coordinates[0], p.Coordinates[1]},
	}, true
}

func (p Point) Latitude() float64 {
	return p.Coordinates[1]
}

func (p Point) Longitude() float64 {
	return p.Coordinates[0]
}

// LineString is used as the value object for a GeoJSON LineString
type LineString struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

func NewLineString(coordinates [][2]float64) *LineString {
	if coordinates == nil {
		coordinates = [][2]float64{}
	}

	return &LineString{
		Type:        "LineString",
		Coordinates: coordinates,
	}
}

func (ls *LineString) GeometryType() string {
	return ls.Type
}

// AsPoint returns the first point of the line, if there is one
func (ls *LineString) AsPoint() (Point, bool) {
	if len(ls.Coordinates) == 0 {
		return Point{}, false
	}

	return *NewPoint(ls.Coordinates[0][0], ls.Coordinates[0][1]), true
}

// PointFromLatLng creates a Point from a map client coordinate, either a
// [lat, lng] array or a {"lat": .., "lng": ..} object.
func PointFromLatLng(value any) (*Point, error) {
	lat, lng, err := latLng(value)
	if err != nil {
		return nil, err
	}

	return NewPoint(lng, lat), nil
}

// LineStringFromLatLngs creates a LineString from an array of map client
// coordinates.
func LineStringFromLatLngs(value any) (*LineString, error) {
	points, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("unable to create line string from value of type %T", value)
	}

	coords := make([][2]float64, 0, len(points))

	for _, p := range points {
		lat, lng, err := latLng(p)
		if err != nil {
			return nil, fmt.Errorf("malformed line string coordinates: %w", err)
		}

		coords = append(coords, [2]float64{lng, lat})
	}

	return NewLineString(coords), nil
}

func latLng(value any) (lat, lng float64, err error) {
	switch typedValue := value.(type) {
	case []any:
		if len(typedValue) < 2 {
			return 0, 0, fmt.Errorf("coordinates array has insufficient length (%d < 2)", len(typedValue))
		}

		lat, okLat := toFloat(typedValue[0])
		lng, okLng := toFloat(typedValue[1])

		if !okLat || !okLng {
			return 0, 0, fmt.Errorf("coordinates not convertible to float64")
		}

		return lat, lng, nil
	case map[string]any:
		lat, okLat := toFloat(typedValue["lat"])
		lng, okLng := toFloat(typedValue["lng"])

		if !okLat || !okLng {
			return 0, 0, fmt.Errorf("coordinate object without numeric lat and lng")
		}

		return lat, lng, nil
	default:
		return 0, 0, fmt.Errorf("unable to parse coordinate of unknown value type %T", typedValue)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
