package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `
VNG Diagnostic Report
Date: 2024-01-05

Saccades:
Latency (ms): 123.4 | FLAG
Peak Velocity (deg/s): 441.0
Accuracy: 94%

VISUOMOTOR //:
Gain: 0.85

Summary of Flagged Findings:
Latency (ms): 123.4 | FLAG
`

func TestParseSampleReport(t *testing.T) {
	data := New().Parse(sampleReport)

	latency, ok := data.Lookup("Saccades", "Latency")
	require.True(t, ok)
	assert.Equal(t, 123.4, latency.Value)
	assert.True(t, latency.Flagged)

	velocity, ok := data.Lookup("Saccades", "Peak Velocity")
	require.True(t, ok)
	assert.Equal(t, 441.0, velocity.Value)
	assert.False(t, velocity.Flagged)

	gain, ok := data.Lookup("VISUOMOTOR", "Gain")
	require.True(t, ok)
	assert.Equal(t, 0.85, gain.Value)
	assert.False(t, gain.Flagged)

	// The findings-summary header must not open a category; the repeated
	// Latency line lands in the still-current VISUOMOTOR category.
	_, ok = data.Lookup("Summary of Flagged Findings", "Latency")
	assert.False(t, ok)
	_, ok = data.Lookup("VISUOMOTOR", "Latency")
	assert.True(t, ok)
}

func TestParseDefaultCategory(t *testing.T) {
	data := New().Parse("Gain: 0.5\n")

	r, ok := data.Lookup("General", "Gain")
	require.True(t, ok)
	assert.Equal(t, 0.5, r.Value)
}

func TestParseCustomDefaultCategory(t *testing.T) {
	data := New(WithDefaultCategory("Uncategorized")).Parse("Gain: 0.5\n")

	_, ok := data.Lookup("General", "Gain")
	assert.False(t, ok)
	_, ok = data.Lookup("Uncategorized", "Gain")
	assert.True(t, ok)
}

func TestParseEmptyInput(t *testing.T) {
	assert.Empty(t, New().Parse(""))
	assert.Empty(t, New().Parse("\n\n  \n"))
}

func TestParseSkipsMalformedLines(t *testing.T) {
	text := `
Saccades:
Latency: not-a-number
Velocity: 1.2.3
Gain: 0.9
`
	data := New().Parse(text)

	assert.Equal(t, 1, data.MetricCount())
	_, ok := data.Lookup("Saccades", "Gain")
	assert.True(t, ok)
}

func TestParseLastWriteWins(t *testing.T) {
	text := `
Saccades:
Latency: 100
Latency: 200 | FLAG
`
	data := New().Parse(text)

	r, ok := data.Lookup("Saccades", "Latency")
	require.True(t, ok)
	assert.Equal(t, 200.0, r.Value)
	assert.True(t, r.Flagged)
}

func TestParseCategoryCursorPersists(t *testing.T) {
	text := `
Pursuit:
Gain: 0.8
Some narrative text that is ignored.
Phase: 3.1
`
	data := New().Parse(text)

	_, ok := data.Lookup("Pursuit", "Gain")
	assert.True(t, ok)
	_, ok = data.Lookup("Pursuit", "Phase")
	assert.True(t, ok)
}
