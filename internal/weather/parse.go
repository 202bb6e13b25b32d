package weather

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

const utf8BOM = "\ufeff"

// naMarkers are cell values treated as missing, matching the usual
// spreadsheet and dataframe conventions.
var naMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// dateLayouts are tried in order; the first match wins.
var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"01/02/2006",
	"20060102",
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
}

var (
	errMissingValue = errors.New("missing value")
	errMalformed    = errors.New("malformed value")
)

// columnIndex maps each required column to its position in a row.
type columnIndex struct {
	date, temperature, rainfall, humidity, windSpeed int
}

// parseTable reads a weather CSV and returns the records that survive
// validation, in input order.
func parseTable(r io.Reader) ([]Record, LoadReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, LoadReport{}, &ParseError{Err: ErrNoHeader}
	}
	if err != nil {
		return nil, LoadReport{}, newParseError(err)
	}

	idx, err := indexColumns(header)
	if err != nil {
		return nil, LoadReport{}, &ParseError{Line: 1, Err: err}
	}

	var (
		records []Record
		report  LoadReport
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, LoadReport{}, newParseError(err)
		}
		report.Rows++

		rec, err := parseRow(row, idx)
		switch {
		case errors.Is(err, errMissingValue):
			report.DroppedMissing++
			continue
		case err != nil:
			report.DroppedMalformed++
			continue
		}
		records = append(records, rec)
	}
	report.Kept = len(records)

	return records, report, nil
}

func newParseError(err error) *ParseError {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Err: err}
}

func indexColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		pos, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return pos
	}

	idx := columnIndex{
		date:        lookup(ColumnDate),
		temperature: lookup(ColumnTemperature),
		rainfall:    lookup(ColumnRainfall),
		humidity:    lookup(ColumnHumidity),
		windSpeed:   lookup(ColumnWindSpeed),
	}
	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(row []string, idx columnIndex) (Record, error) {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	fields := [5]string{
		cell(idx.date),
		cell(idx.temperature),
		cell(idx.rainfall),
		cell(idx.humidity),
		cell(idx.windSpeed),
	}
	for _, f := range fields {
		if isMissing(f) {
			return Record{}, errMissingValue
		}
	}

	date, err := ParseDate(fields[0])
	if err != nil {
		return Record{}, err
	}

	var values [4]float64
	for i, f := range fields[1:] {
		v, err := parseNumber(f)
		if err != nil {
			return Record{}, err
		}
		values[i] = v
	}

	return Record{
		Date:        date,
		Temperature: values[0],
		Rainfall:    values[1],
		Humidity:    values[2],
		WindSpeed:   values[3],
	}, nil
}

func isMissing(s string) bool {
	_, ok := naMarkers[s]
	return ok
}

// ParseDate parses an ISO-like date string into a UTC midnight calendar date.
// The calendar date is taken as written, ignoring any time of day or offset.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", errMalformed, s)
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: number %q", errMalformed, s)
	}
	return v, nil
}
