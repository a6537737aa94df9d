package main

import (
	"fmt"

	"github.com/oculab/vng/internal/interpret"
	"github.com/oculab/vng/internal/output"
	"github.com/oculab/vng/internal/service"
	"github.com/urfave/cli/v2"
)

func interpretCmd() *cli.Command {
	return &cli.Command{
		Name:      "interpret",
		Usage:     "Generate a clinical narrative for a comparison via OpenAI",
		ArgsUsage: "<report.txt> <report.txt>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "OpenAI API key",
				EnvVars: []string{"OPENAI_API_KEY"},
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "Model to use (overrides config)",
			},
		},
		Action: runInterpretCmd,
	}
}

func runInterpretCmd(c *cli.Context) error {
	apiKey := c.String("api-key")
	if apiKey == "" {
		return fmt.Errorf("an OpenAI API key is required (--api-key or OPENAI_API_KEY)")
	}

	paths, err := getPaths(c)
	if err != nil {
		return err
	}
	if len(paths) < 2 {
		return fmt.Errorf("interpret requires at least 2 report files (got %d)", len(paths))
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

	analysis, err := svc.Analyze(reports)
	if err != nil {
		return err
	}

	model := cfg.Interpret.Model
	if m := c.String("model"); m != "" {
		model = m
	}

	interpreter := interpret.New(apiKey,
		interpret.WithModel(model),
		interpret.WithMaxMetrics(cfg.Interpret.MaxMetrics),
		interpret.WithMaxRetries(cfg.Interpret.MaxRetries),
	)

	narrative, err := interpreter.Interpret(c.Context, analysis)
	if err != nil {
		return fmt.Errorf("interpretation failed: %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	section := &output.Section{
		Title:   fmt.Sprintf("Interpretation of %d reports", analysis.Summary.FileCount),
		Content: narrative,
		Data: map[string]any{
			"model":     model,
			"narrative": narrative,
		},
	}
	return formatter.Output(section)
}
