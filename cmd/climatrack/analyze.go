package main

import (
	"fmt"

	"github.com/i474232898/climatrack/internal/weather"
)

type AnalyzeCommand struct {
	Args SourceArg `positional-args:"yes" required:"yes"`
	Bins int       `short:"b" long:"bins" description:"rainfall histogram bins" default:"30"`
}

func (c *AnalyzeCommand) Execute(args []string) error {
	if c.Bins < 1 || c.Bins > weather.MaxHistogramBins {
		return fmt.Errorf("--bins must be between 1 and %d", weather.MaxHistogramBins)
	}

	ds, err := loadDataset(c.Args.Source)
	if err != nil {
		return err
	}

	analysis, err := weather.Analyze(ds, c.Bins)
	if err != nil {
		return err
	}
	return writeJSON(analysis)
}

func init() {
	_, err := parser.AddCommand("analyze",
		"prints chart data as JSON",
		"Computes temperature and humidity series, a rainfall histogram, wind speed box statistics and the correlation matrix.",
		&AnalyzeCommand{})
	if err != nil {
		panic(err.Error())
	}
}
