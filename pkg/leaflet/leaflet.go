// Package leaflet builds the icon and line style structures the map client
// expects to find in the data of markers and polylines.
package leaflet

type Point [2]int

func (p Point) slice() []any {
	return []any{p[0], p[1]}
}

// IconOptions mirrors the options of a leaflet icon.
type IconOptions struct {
	IconURL      string
	ShadowURL    string
	IconSize     Point
	ShadowSize   Point
	IconAnchor   Point
	ShadowAnchor Point
	PopupAnchor  Point
}

type IconOption func(*IconOptions)

func WithIconURL(url string) IconOption {
	return func(o *IconOptions) {
		o.IconURL = url
	}
}

func WithIconSize(width, height int) IconOption {
	return func(o *IconOptions) {
		o.IconSize = Point{width, height}
	}
}

func WithIconAnchor(x, y int) IconOption {
	return func(o *IconOptions) {
		o.IconAnchor = Point{x, y}
	}
}

type Icon struct {
	Options IconOptions
}

// NewIcon returns a 70x70 icon without image, shadow or offsets unless
// told otherwise.
func NewIcon(options ...IconOption) Icon {
	opts := IconOptions{
		IconSize: Point{70, 70},
	}

	for _, o := range options {
		o(&opts)
	}

	return Icon{Options: opts}
}

// Map returns the icon the way it is serialized by the map client,
// i.e. {"options": {...}}.
func (i Icon) Map() map[string]any {
	return map[string]any{
		"options": map[string]any{
			"iconUrl":      i.Options.IconURL,
			"shadowUrl":    i.Options.ShadowURL,
			"iconSize":     i.Options.IconSize.slice(),
			"shadowSize":   i.Options.ShadowSize.slice(),
			"iconAnchor":   i.Options.IconAnchor.slice(),
			"shadowAnchor": i.Options.ShadowAnchor.slice(),
			"popupAnchor":  i.Options.PopupAnchor.slice(),
		},
	}
}

// Headline is the text label drawn next to a marker.
type Headline struct {
	Text        string
	FontSize    string
	StrokeWidth string
	FillColor   string
	StrokeColor string
}

func (h Headline) Map() map[string]any {
	return map[string]any{
		"text":        h.Text,
		"fontSize":    h.FontSize,
		"strokeWidth": h.StrokeWidth,
		"fillColor":   h.FillColor,
		"strokeColor": h.StrokeColor,
	}
}
