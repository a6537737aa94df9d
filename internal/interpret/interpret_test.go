package interpret

import (
	"strings"
	"testing"

	"github.com/oculab/vng/pkg/models"
	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func twoFileAnalysis() *models.Analysis {
	a := models.NewAnalysis(2)
	a.ByCategory = map[string]map[string]models.MetricSeries{
		"Saccades": {
			"Latency": {
				Values:        []float64{100, 150},
				Flags:         []bool{false, true},
				Delta:         ptr(50),
				PercentChange: ptr(50),
				StdDev:        ptr(35.36),
			},
		},
		"Pursuit": {
			"Gain": {
				Values: []float64{0.8, 0.9},
				Flags:  []bool{false, false},
				Delta:  ptr(0.1),
				StdDev: ptr(0.07),
			},
		},
	}
	a.Summary.TotalMetrics = 2
	a.Summary.Categories = 2
	return a
}

func TestBuildPromptContainsMetricSummary(t *testing.T) {
	system, user := BuildPrompt(twoFileAnalysis(), 15)

	assert.Contains(t, system, "2 tests")
	assert.Contains(t, system, "not medical advice")

	assert.Contains(t, user, `Category: "Saccades"`)
	assert.Contains(t, user, `Test: "Latency"`)
	assert.Contains(t, user, "Values: [100.00, 150.00]")
	assert.Contains(t, user, "File 2: Flagged")
	assert.Contains(t, user, "Abs. Change (Delta): 50.00")
	assert.Contains(t, user, "Perc. Change: 50.00%")
	assert.Contains(t, user, "Standard Deviation: 35.36")
}

func TestBuildPromptOmitsMissingStats(t *testing.T) {
	a := models.NewAnalysis(1)
	a.ByCategory = map[string]map[string]models.MetricSeries{
		"Saccades": {
			"Latency": {Values: []float64{100}, Flags: []bool{false}},
		},
	}

	_, user := BuildPrompt(a, 15)
	assert.NotContains(t, user, "Delta")
	assert.NotContains(t, user, "Perc. Change")
	assert.NotContains(t, user, "Standard Deviation")
	assert.NotContains(t, user, "Flagged")
}

func TestBuildPromptCapsMetrics(t *testing.T) {
	_, user := BuildPrompt(twoFileAnalysis(), 1)

	assert.Contains(t, user, "... and more ...")
	// Sorted order means Pursuit/Gain is the single included metric.
	assert.Contains(t, user, `Test: "Gain"`)
	assert.NotContains(t, user, `Test: "Latency"`)
}

func TestBuildPromptDeterministicOrder(t *testing.T) {
	_, first := BuildPrompt(twoFileAnalysis(), 15)
	_, second := BuildPrompt(twoFileAnalysis(), 15)
	assert.Equal(t, first, second)

	// Pursuit sorts before Saccades.
	assert.Less(t, strings.Index(first, "Pursuit"), strings.Index(first, "Saccades"))
}
