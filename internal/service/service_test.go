package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oculab/vng/pkg/config"
	"github.com/oculab/vng/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `Saccades:
Latency (ms): 123.4 | FLAG
Gain: 0.85
`

func newTestService() *Service {
	return New(WithConfig(config.DefaultConfig()))
}

func TestParseReport(t *testing.T) {
	svc := newTestService()

	report, err := svc.ParseReport("visit1.txt", []byte(sampleReport))
	require.NoError(t, err)

	assert.Equal(t, "visit1.txt", report.Name)
	assert.Equal(t, int64(len(sampleReport)), report.SizeBytes)
	assert.False(t, report.UploadedAt.IsZero())

	latency, ok := report.Categories.Lookup("Saccades", "Latency")
	require.True(t, ok)
	assert.Equal(t, 123.4, latency.Value)
	assert.True(t, latency.Flagged)
}

func TestParseReportRejectsEmptyContent(t *testing.T) {
	svc := newTestService()

	_, err := svc.ParseReport("visit1.txt", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestParseReportRejectsDisallowedExtension(t *testing.T) {
	svc := newTestService()

	_, err := svc.ParseReport("visit1.pdf", []byte(sampleReport))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestParseReportRejectsOversizedFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Limits.MaxFileSizeMB = 0 // nothing fits
	svc := New(WithConfig(cfg))

	_, err := svc.ParseReport("visit1.txt", []byte(sampleReport))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestLoadReportsPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte("Gain: 0.8\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("Gain: 0.9\n"), 0o644))

	svc := newTestService()
	reports, err := svc.LoadReports([]string{first, second}, nil)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.True(t, strings.HasSuffix(reports[0].Name, "first.txt"))
	assert.True(t, strings.HasSuffix(reports[1].Name, "second.txt"))
}

func TestLoadReportsFailsOnMissingFile(t *testing.T) {
	svc := newTestService()

	_, err := svc.LoadReports([]string{filepath.Join(t.TempDir(), "missing.txt")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading reports")
}

func TestAnalyzeRoundTrip(t *testing.T) {
	svc := newTestService()

	baseline, err := svc.ParseReport("baseline.txt", []byte("Saccades:\nLatency: 100\n"))
	require.NoError(t, err)
	followup, err := svc.ParseReport("followup.txt", []byte("Saccades:\nLatency: 150\n"))
	require.NoError(t, err)

	analysis, err := svc.Analyze([]models.FileReport{baseline, followup})
	require.NoError(t, err)

	series := analysis.ByCategory["Saccades"]["Latency"]
	assert.Equal(t, []float64{100, 150}, series.Values)
	require.NotNil(t, series.Delta)
	assert.Equal(t, series.Values[1]-series.Values[0], *series.Delta)
}

func TestAnalyzeEmptySet(t *testing.T) {
	svc := newTestService()

	analysis, err := svc.Analyze(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, analysis.Summary.FileCount)
	assert.Empty(t, analysis.ByCategory)
}

func TestAnalyzeRejectsUnparsedReport(t *testing.T) {
	svc := newTestService()

	_, err := svc.Analyze([]models.FileReport{{Name: "broken.txt"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parsed data")
}
