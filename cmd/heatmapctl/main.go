// heatmapctl renders and inspects the global land-surface temperature
// heat-map from the command line.
//
// Usage:
//
//	heatmapctl render --source global-temperature.json --format svg --out chart.svg
//	heatmapctl inspect --source https://example.com/global-temperature.json
//	heatmapctl cell --year 1753 --month 1
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/i474232898/temperature-heatmap/internal/dataset"
	"github.com/i474232898/temperature-heatmap/internal/dataset/sources"
	"github.com/i474232898/temperature-heatmap/internal/heatmap"
	"github.com/i474232898/temperature-heatmap/internal/logger"
	"github.com/i474232898/temperature-heatmap/internal/render"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "heatmapctl",
		Usage:   "Render and inspect the monthly global land-surface temperature heat-map",
		Version: version,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Value:   sources.DefaultURL,
				Usage:   "Dataset URL or path to a local JSON file",
				EnvVars: []string{"DATASET_URL"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "Timeout for fetching a remote dataset",
			},
		},

		Before: func(c *cli.Context) error {
			logger.InitWithWriter(os.Stderr, c.String("log-level"), "text")
			return nil
		},

		Commands: []*cli.Command{
			renderCommand(),
			inspectCommand(),
			cellCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render the chart as JSON, SVG or PNG",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "svg",
				Usage:   "Output format (json, svg, png)",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   "-",
				Usage:   "Output path, - for stdout",
			},
		},
		Action: runRender,
	}
}

func runRender(c *cli.Context) error {
	format := strings.ToLower(c.String("format"))
	write, err := writerFor(format)
	if err != nil {
		return err
	}

	model, err := loadChart(c)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(c.String("out"))
	if err != nil {
		return err
	}
	defer closeOut()

	if err := write(out, model); err != nil {
		return fmt.Errorf("failed to write %s chart: %w", format, err)
	}
	logger.Info("rendered %d cells as %s", len(model.Cells), format)
	return nil
}

func writerFor(format string) (func(io.Writer, heatmap.ChartModel) error, error) {
	switch format {
	case "json":
		return func(w io.Writer, m heatmap.ChartModel) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		}, nil
	case "svg":
		return render.SVG, nil
	case "png":
		return render.PNG, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (use json, svg or png)", format)
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:   "inspect",
		Usage:  "Print year range, record counts and temperature statistics",
		Action: runInspect,
	}
}

func runInspect(c *cli.Context) error {
	ds, err := fetch(c)
	if err != nil {
		return err
	}

	groups, err := heatmap.GroupByYear(ds.MonthlyVariance, ds.BaseTemperature)
	if err != nil {
		return fmt.Errorf("failed to group records: %w", err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Base temperature: %v°C\n", ds.BaseTemperature)
	fmt.Fprintf(w, "Records:          %d\n", len(ds.MonthlyVariance))

	minYear, maxYear, ok := heatmap.YearRange(groups)
	if !ok {
		fmt.Fprintln(w, "Years:            none")
		return nil
	}
	fmt.Fprintf(w, "Years:            %d - %d (%d)\n", minYear, maxYear, len(groups))

	stats := heatmap.ComputeStats(groups)
	fmt.Fprintf(w, "Temperature:      min %v°C, max %v°C, mean %v°C\n",
		stats.MinTemperature, stats.MaxTemperature, stats.MeanTemperature)
	fmt.Fprintf(w, "Variance:         min %v°C, max %v°C\n", stats.MinVariance, stats.MaxVariance)

	var partial []string
	for _, g := range groups {
		if n := len(g.MonthlyData); n != len(heatmap.MonthNames) {
			partial = append(partial, fmt.Sprintf("%d (%d months)", g.Year, n))
		}
	}
	if len(partial) > 0 {
		fmt.Fprintf(w, "Partial years:    %s\n", strings.Join(partial, ", "))
	}
	return nil
}

func cellCommand() *cli.Command {
	return &cli.Command{
		Name:  "cell",
		Usage: "Print the tooltip for one year and month",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "year",
				Aliases:  []string{"y"},
				Usage:    "Year of the cell",
				Required: true,
			},
			&cli.IntFlag{
				Name:     "month",
				Aliases:  []string{"m"},
				Usage:    "Month of the cell (1-12)",
				Required: true,
			},
		},
		Action: runCell,
	}
}

func runCell(c *cli.Context) error {
	year, month := c.Int("year"), c.Int("month")
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", month)
	}

	model, err := loadChart(c)
	if err != nil {
		return err
	}

	cell, ok := model.CellAt(year, month)
	if !ok {
		return fmt.Errorf("%w: %d-%02d", dataset.ErrCellNotFound, year, month)
	}

	tip := cell.Tooltip()
	fmt.Fprintf(c.App.Writer, "%s\n%s\n%s\n", tip.Heading, tip.Temperature, tip.Variance)
	return nil
}

func sourceFor(c *cli.Context) dataset.Source {
	src := c.String("source")
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return sources.NewRemoteSource(&http.Client{Timeout: c.Duration("timeout")}, src)
	}
	return sources.NewFileSource(src)
}

func fetch(c *cli.Context) (heatmap.Dataset, error) {
	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	src := sourceFor(c)
	start := time.Now()
	ds, err := src.Fetch(ctx)
	if err != nil {
		return heatmap.Dataset{}, fmt.Errorf("failed to load dataset from %s: %w", c.String("source"), err)
	}
	logger.Debug("loaded %d records from %s in %v", len(ds.MonthlyVariance), src.Name(), time.Since(start))
	return ds, nil
}

func loadChart(c *cli.Context) (heatmap.ChartModel, error) {
	ds, err := fetch(c)
	if err != nil {
		return heatmap.ChartModel{}, err
	}
	model, err := heatmap.Assemble(ds)
	if err != nil {
		return heatmap.ChartModel{}, fmt.Errorf("failed to assemble chart: %w", err)
	}
	return model, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			logger.Error("failed to close %s: %v", path, err)
		}
	}, nil
}
