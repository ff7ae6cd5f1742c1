// Package figures turns fertility tables into chart specs a plotting front end
// can draw directly. Nothing here renders
package figures

// Kind names the shape of a chart
type Kind string

// Chart kinds
const (
	KindLine    Kind = "line"
	KindLines   Kind = "lines"
	KindBars    Kind = "bars"
	KindScatter Kind = "scatter"
)

// Trace types and modes as the front end understands them
const (
	TypeScatter = "scatter"
	TypeBar     = "bar"

	ModeLines   = "lines"
	ModeMarkers = "markers"
)

// Series is one trace. X holds years or country names; a nil Y entry is an
// absent value and serialises as null
type Series struct {
	Name string     `json:"name,omitempty"`
	Type string     `json:"type"`
	Mode string     `json:"mode,omitempty"`
	X    []any      `json:"x"`
	Y    []*float64 `json:"y"`
}

// Axis carries an axis title
type Axis struct {
	Title string `json:"title"`
}

// Layout is the chart chrome. XAxis is nil for the category charts
type Layout struct {
	Title string `json:"title"`
	XAxis *Axis  `json:"xaxis,omitempty"`
	YAxis *Axis  `json:"yaxis,omitempty"`
}

// ChartSpec is one assembled chart
type ChartSpec struct {
	Kind   Kind     `json:"kind"`
	Series []Series `json:"data"`
	Layout Layout   `json:"layout"`
}

// Len is the number of series
func (c ChartSpec) Len() int { return len(c.Series) }
