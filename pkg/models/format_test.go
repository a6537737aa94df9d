package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "N/A", FormatNumber(nil, 2))
	assert.Equal(t, "1.50", FormatNumber(ptr(1.5), 2))
	assert.Equal(t, "-3.1", FormatNumber(ptr(-3.14), 1))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "N/A", FormatPercent(nil, 2))
	assert.Equal(t, "50.00%", FormatPercent(ptr(50), 2))
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512.0 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
		{int64(1.5 * 1024 * 1024 * 1024), "1.5 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFileSize(tt.size))
	}
}

func TestClassifyChange(t *testing.T) {
	tests := []struct {
		name string
		pct  *float64
		band float64
		want ChangeType
	}{
		{"nil is unknown", nil, 5, ChangeUnknown},
		{"within band is stable", ptr(3.2), 5, ChangeStable},
		{"negative within band is stable", ptr(-4.9), 5, ChangeStable},
		{"above band increased", ptr(12), 5, ChangeIncreased},
		{"below band decreased", ptr(-7), 5, ChangeDecreased},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyChange(tt.pct, tt.band))
		})
	}
}
