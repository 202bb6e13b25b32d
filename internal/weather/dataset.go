package weather

import (
	"io"
	"os"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/i474232898/climatrack/internal/common"
)

// tableTypes fixes the raw table's column types so gota does not guess.
var tableTypes = map[string]series.Type{
	ColumnDate:        series.String,
	ColumnTemperature: series.Float,
	ColumnRainfall:    series.Float,
	ColumnHumidity:    series.Float,
	ColumnWindSpeed:   series.Float,
}

// Dataset is an ordered sequence of weather records plus the raw table they
// were materialized from. A Dataset is not safe for concurrent Load calls;
// concurrent queries are fine once loading is done.
type Dataset struct {
	records []Record
	table   *dataframe.DataFrame
	report  LoadReport
}

// NewDataset creates an empty Dataset.
func NewDataset() *Dataset {
	return &Dataset{}
}

// LoadFile opens a .csv file and loads it. Failures to open the file are
// reported as *FileError; the content is then handled as in Load.
func (d *Dataset) LoadFile(path string) error {
	if !common.HasAnySuffix(path, ".csv") {
		return &FileError{Path: path, Err: ErrNotCSV}
	}

	f, err := os.Open(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	defer f.Close()

	return d.Load(f)
}

// Load parses a weather CSV and replaces the dataset's contents with it.
// Rows missing any required value, or carrying a malformed date or number,
// are dropped. On error the previous contents are left untouched.
func (d *Dataset) Load(r io.Reader) error {
	records, report, err := parseTable(r)
	if err != nil {
		return err
	}

	table, err := buildTable(records)
	if err != nil {
		return err
	}

	d.records = records
	d.table = table
	d.report = report
	return nil
}

// buildTable materializes the kept records as a typed dataframe with the
// canonical columns. It returns nil for an empty record set.
func buildTable(records []Record) (*dataframe.DataFrame, error) {
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, append([]string(nil), RequiredColumns...))
	for _, r := range records {
		rows = append(rows, []string{
			r.Date.Format(DateLayout),
			formatFloat(r.Temperature),
			formatFloat(r.Rainfall),
			formatFloat(r.Humidity),
			formatFloat(r.WindSpeed),
		})
	}

	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.WithTypes(tableTypes),
	)
	if df.Err != nil {
		return nil, &ParseError{Err: df.Err}
	}
	return &df, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of the records in load order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Report describes the rows seen by the last successful load.
func (d *Dataset) Report() LoadReport {
	return d.report
}

// Table returns a copy of the raw table. The boolean is false when nothing
// has been loaded or every row was dropped.
func (d *Dataset) Table() (dataframe.DataFrame, bool) {
	if d.table == nil {
		return dataframe.DataFrame{}, false
	}
	return d.table.Copy(), true
}

// Last returns the final record in load order.
func (d *Dataset) Last() (Record, bool) {
	if len(d.records) == 0 {
		return Record{}, false
	}
	return d.records[len(d.records)-1], true
}

// FilterByMonth returns the records dated in the given month (1-12).
// Values outside that range match nothing.
func (d *Dataset) FilterByMonth(month int) []Record {
	return d.filter(func(r Record) bool {
		return int(r.Date.Month()) == month
	})
}

// FilterByYear returns the records dated in the given year.
func (d *Dataset) FilterByYear(year int) []Record {
	return d.filter(func(r Record) bool {
		return r.Date.Year() == year
	})
}

func (d *Dataset) filter(keep func(Record) bool) []Record {
	out := make([]Record, 0)
	for _, r := range d.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// AverageTemperature returns the mean temperature, or 0 when empty.
func (d *Dataset) AverageTemperature() float64 {
	if len(d.records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range d.records {
		sum += r.Temperature
	}
	return sum / float64(len(d.records))
}

// TotalRainfall returns the summed rainfall, or 0 when empty.
func (d *Dataset) TotalRainfall() float64 {
	var sum float64
	for _, r := range d.records {
		sum += r.Rainfall
	}
	return sum
}

// MaxTemperature returns the highest temperature, or 0 when empty.
func (d *Dataset) MaxTemperature() float64 {
	if len(d.records) == 0 {
		return 0
	}
	hi := d.records[0].Temperature
	for _, r := range d.records[1:] {
		if r.Temperature > hi {
			hi = r.Temperature
		}
	}
	return hi
}

// MinTemperature returns the lowest temperature, or 0 when empty.
func (d *Dataset) MinTemperature() float64 {
	if len(d.records) == 0 {
		return 0
	}
	lo := d.records[0].Temperature
	for _, r := range d.records[1:] {
		if r.Temperature < lo {
			lo = r.Temperature
		}
	}
	return lo
}

// MostHumidDay returns the record with the highest humidity. Ties go to the
// earliest loaded record. The boolean is false when the dataset is empty.
func (d *Dataset) MostHumidDay() (Record, bool) {
	return d.maxBy(func(r Record) float64 { return r.Humidity })
}

// WindiestDay returns the record with the highest wind speed. Ties go to the
// earliest loaded record. The boolean is false when the dataset is empty.
func (d *Dataset) WindiestDay() (Record, bool) {
	return d.maxBy(func(r Record) float64 { return r.WindSpeed })
}

func (d *Dataset) maxBy(key func(Record) float64) (Record, bool) {
	if len(d.records) == 0 {
		return Record{}, false
	}
	best := d.records[0]
	for _, r := range d.records[1:] {
		if key(r) > key(best) {
			best = r
		}
	}
	return best, true
}

// Summary computes every aggregate at once. Unlike the individual
// accessors it reports an empty dataset as ErrEmptyDataset.
func (d *Dataset) Summary() (Summary, error) {
	humid, ok := d.MostHumidDay()
	if !ok {
		return Summary{}, ErrEmptyDataset
	}
	windy, _ := d.WindiestDay()

	return Summary{
		Records:            len(d.records),
		AverageTemperature: d.AverageTemperature(),
		MaxTemperature:     d.MaxTemperature(),
		MinTemperature:     d.MinTemperature(),
		TotalRainfall:      d.TotalRainfall(),
		MostHumidDay:       humid,
		WindiestDay:        windy,
	}, nil
}
