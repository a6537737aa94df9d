package main

import (
	"fmt"

	"github.com/oculab/vng/internal/output"
	"github.com/oculab/vng/pkg/models"
	"github.com/urfave/cli/v2"
)

// getPaths returns the positional report paths, erroring when none given.
func getPaths(c *cli.Context) ([]string, error) {
	if c.Args().Len() == 0 {
		return nil, fmt.Errorf("at least one report file is required")
	}
	return c.Args().Slice(), nil
}

// getFormat returns the format flag value, checking the command before
// the global flag.
func getFormat(c *cli.Context) string {
	if f := c.String("format"); f != "" {
		return f
	}
	return "text"
}

// getOutputFile returns the output file path from the command.
func getOutputFile(c *cli.Context) string {
	return c.String("output")
}

// newFormatter builds a formatter from the shared output flags.
func newFormatter(c *cli.Context) (*output.Formatter, error) {
	return output.NewFormatter(output.ParseFormat(getFormat(c)), getOutputFile(c), true)
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// flagMarks renders per-file flag markers for a metric series, one
// mark per file in upload order.
func flagMarks(flags []bool) string {
	marks := make([]byte, len(flags))
	for i, f := range flags {
		if f {
			marks[i] = '!'
		} else {
			marks[i] = '-'
		}
	}
	return string(marks)
}

// changeLabel maps a percent change to a human-readable direction.
func changeLabel(pct *float64, stableBand float64) string {
	switch models.ClassifyChange(pct, stableBand) {
	case models.ChangeIncreased:
		return "increased"
	case models.ChangeDecreased:
		return "decreased"
	case models.ChangeStable:
		return "stable"
	default:
		return "n/a"
	}
}
