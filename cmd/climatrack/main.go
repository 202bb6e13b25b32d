package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/i474232898/climatrack/internal/logging"
	"github.com/i474232898/climatrack/internal/weather"
	"github.com/i474232898/climatrack/internal/weather/sources"
)

type Options struct {
	Verbose   bool   `short:"v" long:"verbose" description:"enable debug logging"`
	LogFormat string `long:"log-format" description:"log format" choice:"text" choice:"json" default:"text"`
}

var opts = &Options{}

var parser = flags.NewParser(opts, flags.Default)

// stdout is where commands print their results.
var stdout io.Writer = os.Stdout

func Execute() error {
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		level := "info"
		if opts.Verbose {
			level = "debug"
		}
		logging.Setup(level, opts.LogFormat)
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := Execute(); err != nil {
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

// SourceArg is the positional argument shared by the query commands.
type SourceArg struct {
	Source string `positional-arg-name:"FILE|URL" description:"weather CSV to load"`
}

func loadDataset(location string) (*weather.Dataset, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	src := sources.Parse(&http.Client{Timeout: 30 * time.Second}, location, 0)
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	ds := weather.NewDataset()
	if err := ds.Load(rc); err != nil {
		return nil, fmt.Errorf("could not load '%s': %w", location, err)
	}

	report := ds.Report()
	logging.Component("cli").WithField("kept", report.Kept).
		WithField("dropped", report.DroppedMissing+report.DroppedMalformed).
		Debug("dataset loaded")
	return ds, nil
}

func writeJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
