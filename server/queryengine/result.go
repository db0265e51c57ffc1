package queryengine

// ResultType tags a query result so the renderer can pick a layout.
type ResultType string

const (
	ResultTypeParcelDetail  ResultType = "parcel-detail"
	ResultTypeRanking       ResultType = "ranking"
	ResultTypeStatistic     ResultType = "statistic"
	ResultTypeCategory      ResultType = "category"
	ResultTypeFacility      ResultType = "facility"
	ResultTypeRelationship  ResultType = "relationship"
	ResultTypeComparison    ResultType = "comparison"
	ResultTypeMethodology   ResultType = "methodology"
	ResultTypeOverview      ResultType = "overview"
	ResultTypeFacilityTypes ResultType = "facility-types"
	ResultTypeEdgeTypes     ResultType = "edge-types"
	ResultTypeError         ResultType = "error"
)

// ChartKind selects the chart drawn by the external charting collaborator.
type ChartKind string

const (
	ChartBar      ChartKind = "bar"
	ChartLine     ChartKind = "line"
	ChartRadar    ChartKind = "radar"
	ChartPie      ChartKind = "pie"
	ChartDoughnut ChartKind = "doughnut"
)

// ChartDataset is one labeled numeric series. Color styles the whole
// series; Colors styles individual points and takes precedence for
// bar/pie/doughnut charts.
type ChartDataset struct {
	Label  string    `json:"label,omitempty"`
	Data   []float64 `json:"data"`
	Color  string    `json:"color,omitempty"`
	Colors []string  `json:"colors,omitempty"`
}

// ChartSpec is a declarative chart description. The engine never renders
// pixels; the renderer owns axes, legends, and drawing.
type ChartSpec struct {
	Kind     ChartKind      `json:"kind"`
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// QueryResult is the output contract of every handler. HTML is a
// pre-built fragment with untrusted text already escaped; MapHighlights
// is an ordered, not necessarily deduplicated, list of parcel ids for
// the map collaborator to emphasize.
type QueryResult struct {
	Title         string     `json:"title"`
	Type          ResultType `json:"type"`
	HTML          string     `json:"html"`
	Chart         *ChartSpec `json:"chartConfig,omitempty"`
	MapHighlights []string   `json:"mapHighlights,omitempty"`

	// Intent records which handler produced the result. It is kept out
	// of the wire contract.
	Intent Intent `json:"-"`
}
