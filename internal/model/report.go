package model

// ReportTable is the stable tabular projection handed to export adapters.
// The same rows back the on-screen report views.
type ReportTable struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// LeaderProgressStats aggregates one leader's projects and progress log.
type LeaderProgressStats struct {
	LeaderID             string           `json:"leaderId"`
	ProjectCount         int              `json:"projectCount"`
	TotalDistance        float64          `json:"totalDistance"` // sum of all completedWork deltas, meters
	TotalTime            float64          `json:"totalTime"`     // sum of all timeTaken, hours
	CompletionPercentage int              `json:"completionPercentage"`
	RecentUpdates        []ProgressUpdate `json:"recentUpdates"`
}

// PurposeTotal is one chart-facing slice of payment totals.
type PurposeTotal struct {
	Type  PurposeType `json:"type"`
	Total float64     `json:"total"`
}

// PaymentTotals carries both the raw per-type totals (every type present,
// zeros included) and the chart rows (zero totals omitted).
type PaymentTotals struct {
	Status PaymentStatus           `json:"status"`
	Raw    map[PurposeType]float64 `json:"raw"`
	Chart  []PurposeTotal          `json:"chart"`
}
