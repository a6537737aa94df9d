// Package analyzer computes cross-file comparative statistics over the
// metrics common to every report in a set.
package analyzer

import (
	"github.com/oculab/vng/pkg/models"
	"github.com/oculab/vng/pkg/stats"
)

// Analyzer intersects metric sets across reports and derives statistics.
type Analyzer struct{}

// New creates a comparison analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Compare builds a MetricSeries for every (category, metric) pair that
// exists in all reports. Values and flags are collected in report input
// order. Delta and percent change are computed only when exactly two
// reports are compared, with the first as baseline; standard deviation
// whenever two or more are. An empty input yields an empty analysis.
func (a *Analyzer) Compare(reports []models.FileReport) *models.Analysis {
	analysis := models.NewAnalysis(len(reports))
	if len(reports) == 0 {
		return analysis
	}

	common := make(map[models.MetricKey]struct{})
	for _, key := range reports[0].Categories.Keys() {
		common[key] = struct{}{}
	}
	for _, report := range reports[1:] {
		seen := make(map[models.MetricKey]struct{})
		for _, key := range report.Categories.Keys() {
			seen[key] = struct{}{}
		}
		for key := range common {
			if _, ok := seen[key]; !ok {
				delete(common, key)
			}
		}
	}

	for key := range common {
		values := make([]float64, 0, len(reports))
		flags := make([]bool, 0, len(reports))
		for _, report := range reports {
			r, ok := report.Categories.Lookup(key.Category, key.Metric)
			if !ok {
				break
			}
			values = append(values, r.Value)
			flags = append(flags, r.Flagged)
		}
		// Intersection guarantees one reading per report; drop the
		// metric entirely if that ever fails to hold.
		if len(values) != len(reports) {
			continue
		}

		series := models.MetricSeries{Values: values, Flags: flags}
		if len(reports) == 2 {
			delta := values[1] - values[0]
			series.Delta = &delta
			series.PercentChange = stats.PercentChange(values[0], values[1])
		}
		if len(reports) >= 2 {
			sd := stats.SampleStdDev(values)
			series.StdDev = &sd
		}

		metrics, ok := analysis.ByCategory[key.Category]
		if !ok {
			metrics = make(map[string]models.MetricSeries)
			analysis.ByCategory[key.Category] = metrics
		}
		metrics[key.Metric] = series
		analysis.Summary.TotalMetrics++
	}

	analysis.Summary.Categories = len(analysis.ByCategory)
	return analysis
}
