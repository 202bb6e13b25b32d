package main

import (
	"fmt"

	"github.com/i474232898/climatrack/internal/weather"
)

type FilterCommand struct {
	Args  SourceArg `positional-args:"yes" required:"yes"`
	Month int       `short:"m" long:"month" description:"keep records of this month (1-12)"`
	Year  int       `short:"y" long:"year" description:"keep records of this year"`
	JSON  bool      `long:"json" description:"print records as JSON"`
}

func (c *FilterCommand) Execute(args []string) error {
	ds, err := loadDataset(c.Args.Source)
	if err != nil {
		return err
	}

	records := ds.Records()
	if c.Month != 0 {
		records = ds.FilterByMonth(c.Month)
	}
	if c.Year != 0 {
		byYear := make([]weather.Record, 0, len(records))
		for _, r := range records {
			if r.Date.Year() == c.Year {
				byYear = append(byYear, r)
			}
		}
		records = byYear
	}

	if c.JSON {
		return writeJSON(records)
	}

	fmt.Fprintf(stdout, "%-10s %8s %8s %8s %8s\n", "date", "temp", "rain", "humid", "wind")
	for _, r := range records {
		fmt.Fprintf(stdout, "%-10s %8.2f %8.2f %8.2f %8.2f\n",
			r.Date.Format(weather.DateLayout), r.Temperature, r.Rainfall, r.Humidity, r.WindSpeed)
	}
	return nil
}

func init() {
	_, err := parser.AddCommand("filter",
		"lists records by month and year",
		"Loads a weather CSV and lists the records matching --month and --year.",
		&FilterCommand{})
	if err != nil {
		panic(err.Error())
	}
}
