package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/oculab/vng/pkg/config"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:    "vng",
		Usage:   "Compare VNG diagnostic reports across visits",
		Version: version,
		Description: `vng parses free-text videonystagmography (VNG) report files into
structured metrics and compares the metrics common to every report:
delta and percent change for two files, standard deviation for more.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"VNG_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Commands: []*cli.Command{
			parseCmd(),
			compareCmd(),
			trendCmd(),
			interpretCmd(),
			initCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// loadConfig honors the global --config flag, falling back to the
// standard search locations.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}
