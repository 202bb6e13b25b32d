package main

import (
	"fmt"

	"github.com/jessevdk/go-flags"

	"github.com/i474232898/climatrack/internal/config"
	"github.com/i474232898/climatrack/internal/weather"
)

type PredictCommand struct {
	Args  SourceArg      `positional-args:"yes" required:"yes"`
	Rules flags.Filename `short:"r" long:"rules" description:"YAML file of prediction thresholds"`
	JSON  bool           `long:"json" description:"print the prediction as JSON"`
}

func (c *PredictCommand) Execute(args []string) error {
	rules := weather.DefaultRules()
	if len(c.Rules) > 0 {
		var err error
		if rules, err = config.LoadRules(string(c.Rules)); err != nil {
			return err
		}
	}

	ds, err := loadDataset(c.Args.Source)
	if err != nil {
		return err
	}

	prediction, err := weather.Predict(ds, rules)
	if err != nil {
		return err
	}

	if c.JSON {
		return writeJSON(prediction)
	}
	_, err = fmt.Fprintln(stdout, prediction.Message)
	return err
}

func init() {
	_, err := parser.AddCommand("predict",
		"predicts tomorrow's weather",
		"Applies a simple humidity and temperature heuristic to the last record.",
		&PredictCommand{})
	if err != nil {
		panic(err.Error())
	}
}
