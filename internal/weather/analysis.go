package weather

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
)

const (
	// DefaultHistogramBins is the bin count used when none is requested.
	DefaultHistogramBins = 30
	// MaxHistogramBins caps the bin count of a histogram.
	MaxHistogramBins = 200
)

// Point is one value of a daily series.
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Bin is one equal-width histogram bucket, [Lower, Upper). The last bin
// also holds values equal to its Upper bound.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// BoxStats summarizes a distribution for a box plot. Whiskers extend to the
// most extreme values within 1.5 IQR of the quartiles.
type BoxStats struct {
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	LowerWhisker float64   `json:"lowerWhisker"`
	UpperWhisker float64   `json:"upperWhisker"`
	Outliers     []float64 `json:"outliers"`
}

// CorrelationMatrix holds pairwise Pearson coefficients. Entries involving a
// constant column are NaN.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// MarshalJSON encodes NaN coefficients as null.
func (m CorrelationMatrix) MarshalJSON() ([]byte, error) {
	values := make([][]*float64, len(m.Values))
	for i, row := range m.Values {
		values[i] = make([]*float64, len(row))
		for j := range row {
			if !math.IsNaN(row[j]) {
				values[i][j] = &row[j]
			}
		}
	}
	return json.Marshal(struct {
		Columns []string     `json:"columns"`
		Values  [][]*float64 `json:"values"`
	}{m.Columns, values})
}

// Analysis gathers the chart data for a dataset.
type Analysis struct {
	Temperature []Point           `json:"temperature"`
	Humidity    []Point           `json:"humidity"`
	Rainfall    []Bin             `json:"rainfall"`
	WindSpeed   BoxStats          `json:"windSpeed"`
	Correlation CorrelationMatrix `json:"correlation"`
}

// Analyze computes every chart series of the dataset. bins <= 0 selects
// DefaultHistogramBins and larger counts are capped at MaxHistogramBins.
func Analyze(d *Dataset, bins int) (Analysis, error) {
	df, ok := d.Table()
	if !ok {
		return Analysis{}, ErrEmptyDataset
	}
	bins = binCount(bins)

	return Analysis{
		Temperature: dailySeries(df, ColumnTemperature),
		Humidity:    dailySeries(df, ColumnHumidity),
		Rainfall:    histogram(df.Col(ColumnRainfall).Float(), bins),
		WindSpeed:   boxStats(df, ColumnWindSpeed),
		Correlation: correlation(df, ColumnTemperature, ColumnRainfall, ColumnHumidity, ColumnWindSpeed),
	}, nil
}

// TemperatureSeries returns the temperature of each record in load order.
func TemperatureSeries(d *Dataset) ([]Point, error) {
	df, ok := d.Table()
	if !ok {
		return nil, ErrEmptyDataset
	}
	return dailySeries(df, ColumnTemperature), nil
}

// HumiditySeries returns the humidity of each record in load order.
func HumiditySeries(d *Dataset) ([]Point, error) {
	df, ok := d.Table()
	if !ok {
		return nil, ErrEmptyDataset
	}
	return dailySeries(df, ColumnHumidity), nil
}

// RainfallHistogram buckets rainfall into equal-width bins.
func RainfallHistogram(d *Dataset, bins int) ([]Bin, error) {
	df, ok := d.Table()
	if !ok {
		return nil, ErrEmptyDataset
	}
	return histogram(df.Col(ColumnRainfall).Float(), binCount(bins)), nil
}

func binCount(bins int) int {
	switch {
	case bins <= 0:
		return DefaultHistogramBins
	case bins > MaxHistogramBins:
		return MaxHistogramBins
	default:
		return bins
	}
}

// WindSpeedBox returns box-plot statistics of the wind speed.
func WindSpeedBox(d *Dataset) (BoxStats, error) {
	df, ok := d.Table()
	if !ok {
		return BoxStats{}, ErrEmptyDataset
	}
	return boxStats(df, ColumnWindSpeed), nil
}

// Correlation returns the Pearson matrix of the four measured variables.
func Correlation(d *Dataset) (CorrelationMatrix, error) {
	df, ok := d.Table()
	if !ok {
		return CorrelationMatrix{}, ErrEmptyDataset
	}
	return correlation(df, ColumnTemperature, ColumnRainfall, ColumnHumidity, ColumnWindSpeed), nil
}

func dailySeries(df dataframe.DataFrame, column string) []Point {
	dates := df.Col(ColumnDate).Records()
	values := df.Col(column).Float()

	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Date: dates[i], Value: v}
	}
	return points
}

func histogram(values []float64, bins int) []Bin {
	if len(values) == 0 {
		return []Bin{}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return []Bin{{Lower: lo, Upper: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

func boxStats(df dataframe.DataFrame, column string) BoxStats {
	col := df.Col(column)
	q1 := col.Quantile(0.25)
	q3 := col.Quantile(0.75)
	iqr := q3 - q1
	lowFence := q1 - 1.5*iqr
	highFence := q3 + 1.5*iqr

	values := col.Float()
	sort.Float64s(values)

	stats := BoxStats{
		Min:          values[0],
		Q1:           q1,
		Median:       col.Median(),
		Q3:           q3,
		Max:          values[len(values)-1],
		LowerWhisker: q1,
		UpperWhisker: q3,
		Outliers:     []float64{},
	}
	for _, v := range values {
		if v < lowFence || v > highFence {
			stats.Outliers = append(stats.Outliers, v)
			continue
		}
		stats.LowerWhisker = math.Min(stats.LowerWhisker, v)
		stats.UpperWhisker = math.Max(stats.UpperWhisker, v)
	}
	return stats
}

func correlation(df dataframe.DataFrame, columns ...string) CorrelationMatrix {
	data := make([][]float64, len(columns))
	for i, c := range columns {
		data[i] = df.Col(c).Float()
	}

	values := make([][]float64, len(columns))
	for i := range columns {
		values[i] = make([]float64, len(columns))
		for j := range columns {
			values[i][j] = pearson(data[i], data[j])
			if i == j && !math.IsNaN(values[i][j]) {
				values[i][j] = 1
			}
		}
	}
	return CorrelationMatrix{Columns: columns, Values: values}
}

func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return math.NaN()
	}

	var meanX, meanY float64
	for i := range x {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range x {
		dx, dy := x[i]-meanX, y[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
