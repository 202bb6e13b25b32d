package weather

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar-date layout used for output.
const DateLayout = "2006-01-02"

// Required CSV column names.
const (
	ColumnDate        = "date"
	ColumnTemperature = "temperature"
	ColumnRainfall    = "rainfall"
	ColumnHumidity    = "humidity"
	ColumnWindSpeed   = "wind_speed"
)

// RequiredColumns lists the header names a weather CSV must carry, in
// canonical order.
var RequiredColumns = []string{
	ColumnDate,
	ColumnTemperature,
	ColumnRainfall,
	ColumnHumidity,
	ColumnWindSpeed,
}

// Outlook represents the normalized result of the next-day heuristic.
type Outlook string

const (
	OutlookRain     Outlook = "rain"
	OutlookHot      Outlook = "hot"
	OutlookModerate Outlook = "moderate"
)

// Record is one validated daily observation. Date is always a UTC midnight.
type Record struct {
	Date        time.Time `json:"date"`
	Temperature float64   `json:"temperatureC"`
	Rainfall    float64   `json:"rainfallMm"`
	Humidity    float64   `json:"humidityPercent"`
	WindSpeed   float64   `json:"windSpeedKmh"`
}

// MarshalJSON renders the date as a plain calendar date.
func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	return json.Marshal(struct {
		plain
		Date string `json:"date"`
	}{
		plain: plain(r),
		Date:  r.Date.Format(DateLayout),
	})
}

// UnmarshalJSON accepts the calendar date written by MarshalJSON.
func (r *Record) UnmarshalJSON(b []byte) error {
	type plain Record
	var aux struct {
		plain
		Date string `json:"date"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	date, err := time.ParseInLocation(DateLayout, aux.Date, time.UTC)
	if err != nil {
		return err
	}
	*r = Record(aux.plain)
	r.Date = date
	return nil
}

// LoadReport counts what happened to the data rows of the last load.
type LoadReport struct {
	Rows             int `json:"rows"`
	Kept             int `json:"kept"`
	DroppedMissing   int `json:"droppedMissing"`
	DroppedMalformed int `json:"droppedMalformed"`
}

// Summary bundles every aggregate of a non-empty dataset.
type Summary struct {
	Records            int     `json:"records"`
	AverageTemperature float64 `json:"averageTemperatureC"`
	MaxTemperature     float64 `json:"maxTemperatureC"`
	MinTemperature     float64 `json:"minTemperatureC"`
	TotalRainfall      float64 `json:"totalRainfallMm"`
	MostHumidDay       Record  `json:"mostHumidDay"`
	WindiestDay        Record  `json:"windiestDay"`
}

// Entry is a dataset registered in a Store.
// Datasets held by an entry must not be loaded again.
type Entry struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Source   string     `json:"source"`
	LoadedAt time.Time  `json:"loadedAt"` // always UTC
	Report   LoadReport `json:"report"`
	Dataset  *Dataset   `json:"-"`
}
