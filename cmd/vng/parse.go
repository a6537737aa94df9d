package main

import (
	"fmt"
	"sort"

	"github.com/oculab/vng/internal/output"
	"github.com/oculab/vng/internal/service"
	"github.com/oculab/vng/pkg/models"
	"github.com/urfave/cli/v2"
)

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Aliases:   []string{"p"},
		Usage:     "Parse a report file into structured metrics",
		ArgsUsage: "<report.txt>...",
		Action:    runParseCmd,
	}
}

func runParseCmd(c *cli.Context) error {
	paths, err := getPaths(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	svc := service.New(service.WithConfig(cfg))
	reports, err := svc.LoadReports(paths, nil)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText && formatter.Format() != output.FormatMarkdown {
		return formatter.Output(reports)
	}

	for _, report := range reports {
		table := reportTable(report)
		if err := formatter.Output(table); err != nil {
			return err
		}
	}
	return nil
}

// reportTable flattens a parsed report into category/metric rows,
// sorted for stable display.
func reportTable(report models.FileReport) *output.Table {
	categories := make([]string, 0, len(report.Categories))
	for category := range report.Categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var rows [][]string
	for _, category := range categories {
		metrics := report.Categories[category]
		names := make([]string, 0, len(metrics))
		for name := range metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			reading := metrics[name]
			flagged := ""
			if reading.Flagged {
				flagged = "FLAG"
			}
			rows = append(rows, []string{
				category,
				truncate(name, 48),
				models.FormatNumber(&reading.Value, 2),
				flagged,
			})
		}
	}

	title := fmt.Sprintf("%s (%s)", report.Name, models.FormatFileSize(report.SizeBytes))
	return output.NewTable(
		title,
		[]string{"Category", "Metric", "Value", "Flagged"},
		rows,
		[]string{fmt.Sprintf("%d metrics in %d categories", report.Categories.MetricCount(), len(report.Categories))},
		report,
	)
}
