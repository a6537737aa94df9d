package models

import "fmt"

// FormatNumber renders an optional value with fixed decimals, or "N/A"
// when the value is not applicable.
func FormatNumber(v *float64, decimals int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

// FormatPercent renders an optional percentage with a trailing % sign.
func FormatPercent(v *float64, decimals int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.*f%%", decimals, *v)
}

// FormatFileSize renders a byte count in human-readable units.
func FormatFileSize(size int64) string {
	s := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if s < 1024.0 {
			return fmt.Sprintf("%.1f %s", s, unit)
		}
		s /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", s)
}
