package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/climatrack/internal/weather"
)

const sampleCSV = `date,temperature,rainfall,humidity,wind_speed
2024-01-01,10,5,60,12
2024-01-02,20,0,90,30
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weather.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestWriteSummary(t *testing.T) {
	summary := weather.Summary{
		AverageTemperature: 15,
		MaxTemperature:     20,
		MinTemperature:     10,
		TotalRainfall:      5,
		MostHumidDay: weather.Record{
			Date:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Humidity: 90,
		},
		WindiestDay: weather.Record{
			Date:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			WindSpeed: 30.5,
		},
	}

	var buf bytes.Buffer
	if err := writeSummary(&buf, summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"Average Temperature: 15.00 °C",
		"Total Rainfall: 5.00 mm",
		"Most Humid Day: 2024-01-02 (90%)",
		"Windiest Day: 2024-01-02 (30.5 km/h)",
	}
	for _, line := range want {
		if !strings.Contains(buf.String(), line) {
			t.Errorf("output missing %q:\n%s", line, buf.String())
		}
	}
}

func TestStatsCommand(t *testing.T) {
	out := captureStdout(t)
	cmd := &StatsCommand{}
	cmd.Args.Source = writeSample(t)

	if err := cmd.Execute(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Average Temperature: 15.00 °C") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestFilterCommand(t *testing.T) {
	out := captureStdout(t)
	cmd := &FilterCommand{Month: 2}
	cmd.Args.Source = writeSample(t)

	if err := cmd.Execute(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the header line, got %q", lines)
	}
}

func TestPredictCommand(t *testing.T) {
	out := captureStdout(t)
	cmd := &PredictCommand{}
	cmd.Args.Source = writeSample(t)

	if err := cmd.Execute(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "High chance of rain tomorrow." {
		t.Fatalf("unexpected prediction %q", got)
	}
}

func TestCommandsRejectNonCSV(t *testing.T) {
	captureStdout(t)
	cmd := &StatsCommand{}
	cmd.Args.Source = filepath.Join(t.TempDir(), "weather.txt")

	if err := cmd.Execute(nil); err == nil {
		t.Fatal("expected an error for a non-csv path")
	}
}

func TestAnalyzeCommand(t *testing.T) {
	out := captureStdout(t)
	cmd := &AnalyzeCommand{Bins: 4}
	cmd.Args.Source = writeSample(t)

	if err := cmd.Execute(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `"rainfall"`) {
		t.Fatalf("expected chart data, got %s", out.String())
	}

	for _, bins := range []int{0, -1, weather.MaxHistogramBins + 1, 1000000000} {
		cmd.Bins = bins
		if err := cmd.Execute(nil); err == nil {
			t.Errorf("expected an error for --bins %d", bins)
		}
	}
}
