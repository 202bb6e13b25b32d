package weather

import (
	"errors"
	"fmt"
	"testing"
)

func TestPredict(t *testing.T) {
	cases := []struct {
		name     string
		humidity float64
		temp     float64
		want     Outlook
	}{
		{"humid", 85, 35, OutlookRain},
		{"hot", 60, 31, OutlookHot},
		{"moderate", 60, 20, OutlookModerate},
		{"humidity at threshold", 80, 20, OutlookModerate},
		{"temperature at threshold", 50, 30, OutlookModerate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			content := "date,temperature,rainfall,humidity,wind_speed\n" +
				"2024-01-01,10,0,99,5\n" +
				fmt.Sprintf("2024-01-02,%g,0,%g,5\n", tc.temp, tc.humidity)
			ds := mustLoad(t, content)

			p, err := Predict(ds, DefaultRules())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Outlook != tc.want {
				t.Fatalf("Outlook = %q, want %q", p.Outlook, tc.want)
			}
			if !p.Basis.Date.Equal(day(2024, 1, 2)) {
				t.Fatalf("expected the last record as basis, got %v", p.Basis.Date)
			}
		})
	}
}

func TestPredictCustomRules(t *testing.T) {
	ds := mustLoad(t, scenarioCSV)

	p, err := Predict(ds, Rules{RainHumidity: 95, HotTemperature: 15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Outlook != OutlookHot || p.Message != "Likely sunny and hot tomorrow." {
		t.Fatalf("unexpected prediction %+v", p)
	}
}

func TestPredictEmpty(t *testing.T) {
	if _, err := Predict(NewDataset(), DefaultRules()); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}
