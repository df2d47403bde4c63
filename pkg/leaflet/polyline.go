package leaflet

type FlowDirection string

const (
	Flowing FlowDirection = "flowing"
	Reverse FlowDirection = "reverse"
	Fixed   FlowDirection = "fixed"
)

// LineOptions is the style of a polyline, including the flow animation
// used by the map client.
type LineOptions struct {
	Color               string
	BubblingMouseEvents bool
	Weight              int
	DashArray           string
	DashOffset          string
	AnimationDuration   int
	Direction           FlowDirection
}

type LineOption func(*LineOptions)

func WithColor(color string) LineOption {
	return func(lo *LineOptions) {
		lo.Color = color
	}
}

func WithWeight(weight int) LineOption {
	return func(lo *LineOptions) {
		lo.Weight = weight
	}
}

func WithFlow(dir FlowDirection, duration int) LineOption {
	return func(lo *LineOptions) {
		lo.Direction = dir
		lo.AnimationDuration = duration
	}
}

func NewLine(options ...LineOption) LineOptions {
	lo := LineOptions{
		Color:               "red",
		BubblingMouseEvents: true,
		Weight:              5,
		DashArray:           "10 15",
		DashOffset:          "0",
		AnimationDuration:   5,
		Direction:           Fixed,
	}

	for _, o := range options {
		o(&lo)
	}

	return lo
}

func (lo LineOptions) Map() map[string]any {
	return map[string]any{
		"color":               lo.Color,
		"bubblingMouseEvents": lo.BubblingMouseEvents,
		"weight":              lo.Weight,
		"dashArray":           lo.DashArray,
		"dashOffset":          lo.DashOffset,
		"options": map[string]any{
			"flowing": map[string]any{
				"style": map[string]any{
					"animation-duration": lo.AnimationDuration,
				},
				"dir": string(lo.Direction),
			},
		},
	}
}

// PolylineData returns the data of a polyline without any points, drawn
// with the given line style.
func PolylineData(line LineOptions) map[string]any {
	return map[string]any{
		"latlngs":     []any{},
		"line":        line.Map(),
		"displayZoom": 6,
		"iconSize":    []any{16, 16},
		"iconAnchor":  []any{10, 10},
	}
}

// MarkerData returns the data of a marker placed at 0,0.
func MarkerData(icon Icon, headline Headline) map[string]any {
	return map[string]any{
		"latlng":   []any{0, 0},
		"headline": headline.Map(),
		"icon":     icon.Map(),
	}
}
