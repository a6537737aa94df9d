package main

import (
	"fmt"
	"math"

	"github.com/oculab/vng/internal/output"
	"github.com/oculab/vng/internal/service"
	"github.com/oculab/vng/pkg/models"
	"github.com/oculab/vng/pkg/stats"
	"github.com/urfave/cli/v2"
)

func trendCmd() *cli.Command {
	return &cli.Command{
		Name:      "trend",
		Aliases:   []string{"tr"},
		Usage:     "Fit a linear trend to one metric across reports",
		ArgsUsage: "<report.txt> <report.txt>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "category",
				Usage:    "Category containing the metric",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "metric",
				Usage:    "Metric name to trend",
				Required: true,
			},
		},
		Action: runTrendCmd,
	}
}

type trendPoint struct {
	File   string   `json:"file"`
	Value  *float64 `json:"value"`
	Fitted *float64 `json:"fitted"`
}

type trendResult struct {
	Category string       `json:"category"`
	Metric   string       `json:"metric"`
	Points   []trendPoint `json:"points"`
	Slope    *float64     `json:"slope"`
}

func runTrendCmd(c *cli.Context) error {
	paths, err := getPaths(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if len(paths) < cfg.Analysis.MinFilesForTrend {
		return fmt.Errorf("trend requires at least %d report files (got %d)",
			cfg.Analysis.MinFilesForTrend, len(paths))
	}

	category := c.String("category")
	metric := c.String("metric")

	svc := service.New(service.WithConfig(cfg))
	reports, err := svc.LoadReports(paths, nil)
	if err != nil {
		return err
	}

	result, err := buildTrend(reports, category, metric)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText && formatter.Format() != output.FormatMarkdown {
		return formatter.Output(result)
	}
	return formatter.Output(trendTable(result))
}

// buildTrend extracts the metric series in report order and fits a
// line through it. Reports missing the metric contribute a gap rather
// than failing the whole run, but the metric must exist somewhere.
func buildTrend(reports []models.FileReport, category, metric string) (*trendResult, error) {
	series := make([]float64, len(reports))
	found := false
	for i, report := range reports {
		reading, ok := report.Categories.Lookup(category, metric)
		if !ok {
			series[i] = math.NaN()
			continue
		}
		series[i] = reading.Value
		found = true
	}
	if !found {
		return nil, fmt.Errorf("metric %q not found in category %q in any report", metric, category)
	}

	fitted := stats.LinearTrend(series)

	result := &trendResult{
		Category: category,
		Metric:   metric,
		Points:   make([]trendPoint, len(reports)),
	}
	for i, report := range reports {
		point := trendPoint{File: report.Name}
		if !math.IsNaN(series[i]) {
			v := series[i]
			point.Value = &v
		}
		if i < len(fitted) && !math.IsNaN(fitted[i]) {
			f := fitted[i]
			point.Fitted = &f
		}
		result.Points[i] = point
	}

	if len(fitted) >= 2 && !math.IsNaN(fitted[0]) && !math.IsNaN(fitted[len(fitted)-1]) {
		slope := (fitted[len(fitted)-1] - fitted[0]) / float64(len(fitted)-1)
		result.Slope = &slope
	}
	return result, nil
}

func trendTable(result *trendResult) *output.Table {
	rows := make([][]string, len(result.Points))
	for i, point := range result.Points {
		rows[i] = []string{
			point.File,
			models.FormatNumber(point.Value, 2),
			models.FormatNumber(point.Fitted, 2),
		}
	}

	direction := "flat"
	if result.Slope != nil {
		switch {
		case *result.Slope > 0:
			direction = "rising"
		case *result.Slope < 0:
			direction = "falling"
		}
	}

	title := fmt.Sprintf("Trend: %s / %s", result.Category, result.Metric)
	footer := []string{fmt.Sprintf("slope %s per report (%s)",
		models.FormatNumber(result.Slope, 3), direction)}
	return output.NewTable(title, []string{"File", "Value", "Fitted"}, rows, footer, result)
}
