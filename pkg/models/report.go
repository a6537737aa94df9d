// Package models defines the data structures shared between the parser,
// the analyzer, and the presentation layers.
package models

import "time"

// MetricReading is a single measurement for one metric in one report.
// Flagged is true when the report marked the value as outside its
// normative range.
type MetricReading struct {
	Value   float64 `json:"value"`
	Flagged bool    `json:"flagged"`
}

// CategoryMap maps category name to metric name to reading. Names are
// case-sensitive; a later occurrence of the same (category, metric)
// pair in a report overwrites the earlier one.
type CategoryMap map[string]map[string]MetricReading

// FileReport is the structured content of one report file.
type FileReport struct {
	Name       string      `json:"name"`
	Categories CategoryMap `json:"categories"`
	SizeBytes  int64       `json:"size_bytes,omitempty"`
	UploadedAt time.Time   `json:"uploaded_at,omitempty"`
}

// MetricKey identifies one metric within one category.
type MetricKey struct {
	Category string `json:"category"`
	Metric   string `json:"metric"`
}

// Lookup returns the reading for a (category, metric) pair and whether
// it exists in this report.
func (m CategoryMap) Lookup(category, metric string) (MetricReading, bool) {
	metrics, ok := m[category]
	if !ok {
		return MetricReading{}, false
	}
	r, ok := metrics[metric]
	return r, ok
}

// Set stores a reading, creating the category bucket on first use.
func (m CategoryMap) Set(category, metric string, r MetricReading) {
	metrics, ok := m[category]
	if !ok {
		metrics = make(map[string]MetricReading)
		m[category] = metrics
	}
	metrics[metric] = r
}

// Keys returns every (category, metric) pair present in the map.
func (m CategoryMap) Keys() []MetricKey {
	keys := make([]MetricKey, 0, len(m))
	for category, metrics := range m {
		for metric := range metrics {
			keys = append(keys, MetricKey{Category: category, Metric: metric})
		}
	}
	return keys
}

// MetricCount returns the total number of metrics across all categories.
func (m CategoryMap) MetricCount() int {
	var n int
	for _, metrics := range m {
		n += len(metrics)
	}
	return n
}
