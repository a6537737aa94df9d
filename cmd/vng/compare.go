package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/oculab/vng/internal/output"
	"github.com/oculab/vng/internal/progress"
	"github.com/oculab/vng/internal/service"
	"github.com/oculab/vng/internal/session"
	"github.com/oculab/vng/pkg/config"
	"github.com/oculab/vng/pkg/models"
	"github.com/urfave/cli/v2"
)

func compareCmd() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Aliases:   []string{"cmp"},
		Usage:     "Compare metrics shared by two or more reports",
		ArgsUsage: "<report.txt> <report.txt>...",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "stable-band",
				Usage: "Percent change treated as stable (overrides config)",
			},
		},
		Action: runCompareCmd,
	}
}

func runCompareCmd(c *cli.Context) error {
	paths, err := getPaths(c)
	if err != nil {
		return err
	}
	if len(paths) < 2 {
		return fmt.Errorf("compare requires at least 2 report files (got %d)", len(paths))
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	stableBand := cfg.Analysis.StableBandPercent
	if c.IsSet("stable-band") {
		stableBand = c.Float64("stable-band")
	}

	store, err := loadSession(cfg, paths)
	if err != nil {
		return err
	}
	if store.Len() < 2 {
		return fmt.Errorf("need at least 2 distinct reports after duplicate removal (got %d)", store.Len())
	}

	analysis := store.Analysis()

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText && formatter.Format() != output.FormatMarkdown {
		return formatter.Output(analysis)
	}

	table := comparisonTable(analysis, stableBand)
	if len(table.Rows) == 0 {
		formatter.Warning("No metrics are shared by all %d reports", analysis.Summary.FileCount)
		return nil
	}
	return formatter.Output(table)
}

// loadSession reads, validates, and parses each path into a session
// store, skipping duplicate content with a warning.
func loadSession(cfg *config.Config, paths []string) (*session.Store, error) {
	store := session.New()
	svc := service.New(service.WithConfig(cfg))
	tracker := progress.NewTracker("Parsing reports", len(paths))
	defer tracker.Finish()

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		name := filepath.Base(path)
		report, err := svc.ParseReport(name, content)
		if err != nil {
			return nil, err
		}

		if !store.Add(report, content) {
			color.Yellow("Skipping %s: identical content already loaded", name)
		}
		tracker.Tick()
	}
	return store, nil
}

// comparisonTable flattens an analysis into one row per shared metric.
// Columns adapt to the file count: delta and percent change only make
// sense for exactly two files, standard deviation for two or more.
func comparisonTable(analysis *models.Analysis, stableBand float64) *output.Table {
	twoFiles := analysis.Summary.FileCount == 2

	headers := []string{"Category", "Metric", "Values", "Flags"}
	if twoFiles {
		headers = append(headers, "Delta", "% Change", "Change")
	}
	headers = append(headers, "Std Dev")

	categories := make([]string, 0, len(analysis.ByCategory))
	for category := range analysis.ByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var rows [][]string
	for _, category := range categories {
		metrics := analysis.ByCategory[category]
		names := make([]string, 0, len(metrics))
		for name := range metrics {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			series := metrics[name]
			values := make([]string, len(series.Values))
			for i := range series.Values {
				values[i] = models.FormatNumber(&series.Values[i], 2)
			}

			row := []string{
				category,
				truncate(name, 48),
				strings.Join(values, " -> "),
				flagMarks(series.Flags),
			}
			if twoFiles {
				row = append(row,
					models.FormatNumber(series.Delta, 2),
					models.FormatPercent(series.PercentChange, 1),
					changeLabel(series.PercentChange, stableBand),
				)
			}
			row = append(row, models.FormatNumber(series.StdDev, 2))
			rows = append(rows, row)
		}
	}

	title := fmt.Sprintf("Comparison of %d reports", analysis.Summary.FileCount)
	footer := []string{fmt.Sprintf(
		"%d shared metrics across %d categories",
		analysis.Summary.TotalMetrics, analysis.Summary.Categories,
	)}
	return output.NewTable(title, headers, rows, footer, analysis)
}
