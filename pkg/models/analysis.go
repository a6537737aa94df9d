package models

import "math"

// MetricSeries is the cross-file comparison for one (category, metric)
// pair that exists in every compared report. Values and Flags hold one
// entry per input file, in file order. Delta and PercentChange are set
// only for two-file comparisons; StdDev whenever two or more files are
// compared. Nil means not applicable and serializes as JSON null.
type MetricSeries struct {
	Values        []float64 `json:"values"`
	Flags         []bool    `json:"flags"`
	Delta         *float64  `json:"delta"`
	PercentChange *float64  `json:"percent_change"`
	StdDev        *float64  `json:"std_dev"`
}

// Analysis is the full result of comparing a set of reports.
type Analysis struct {
	ByCategory map[string]map[string]MetricSeries `json:"by_category"`
	Summary    AnalysisSummary                    `json:"summary"`
}

// AnalysisSummary carries the aggregate counts used by presentation layers.
type AnalysisSummary struct {
	FileCount    int `json:"file_count"`
	Categories   int `json:"categories"`
	TotalMetrics int `json:"total_metrics"`
}

// NewAnalysis returns an empty analysis for the given file count.
func NewAnalysis(fileCount int) *Analysis {
	return &Analysis{
		ByCategory: make(map[string]map[string]MetricSeries),
		Summary:    AnalysisSummary{FileCount: fileCount},
	}
}

// ChangeType classifies the direction of a two-file comparison.
type ChangeType string

const (
	ChangeIncreased ChangeType = "increased"
	ChangeDecreased ChangeType = "decreased"
	ChangeStable    ChangeType = "stable"
	ChangeUnknown   ChangeType = "unknown"
)

// ClassifyChange buckets a percent change. A nil or non-finite percent
// change is unknown; a magnitude within stableBand counts as stable.
func ClassifyChange(pct *float64, stableBand float64) ChangeType {
	if pct == nil || math.IsNaN(*pct) || math.IsInf(*pct, 0) {
		return ChangeUnknown
	}
	switch {
	case math.Abs(*pct) <= stableBand:
		return ChangeStable
	case *pct > 0:
		return ChangeIncreased
	default:
		return ChangeDecreased
	}
}
