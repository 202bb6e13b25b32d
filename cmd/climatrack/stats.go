package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/i474232898/climatrack/internal/weather"
)

type StatsCommand struct {
	Args SourceArg `positional-args:"yes" required:"yes"`
	JSON bool      `long:"json" description:"print statistics as JSON"`
}

func (c *StatsCommand) Execute(args []string) error {
	ds, err := loadDataset(c.Args.Source)
	if err != nil {
		return err
	}

	summary, err := ds.Summary()
	if errors.Is(err, weather.ErrEmptyDataset) {
		return fmt.Errorf("'%s' has no complete records", c.Args.Source)
	}
	if err != nil {
		return err
	}

	if c.JSON {
		return writeJSON(summary)
	}
	return writeSummary(stdout, summary)
}

func writeSummary(w io.Writer, s weather.Summary) error {
	_, err := fmt.Fprintf(w, `Average Temperature: %.2f °C
Maximum Temperature: %.2f °C
Minimum Temperature: %.2f °C
Total Rainfall: %.2f mm
Most Humid Day: %s (%g%%)
Windiest Day: %s (%g km/h)
`,
		s.AverageTemperature,
		s.MaxTemperature,
		s.MinTemperature,
		s.TotalRainfall,
		s.MostHumidDay.Date.Format(weather.DateLayout), s.MostHumidDay.Humidity,
		s.WindiestDay.Date.Format(weather.DateLayout), s.WindiestDay.WindSpeed,
	)
	return err
}

func init() {
	_, err := parser.AddCommand("stats",
		"shows dataset statistics",
		"Loads a weather CSV and prints average, extreme and total values.",
		&StatsCommand{})
	if err != nil {
		panic(err.Error())
	}
}
