package weather

// Rules holds the thresholds of the next-day heuristic.
type Rules struct {
	// RainHumidity is the humidity (%) above which rain is expected.
	RainHumidity float64 `yaml:"rain_humidity" json:"rainHumidity" validate:"gte=0,lte=100"`
	// HotTemperature is the temperature (°C) above which a hot day is expected.
	HotTemperature float64 `yaml:"hot_temperature" json:"hotTemperature"`
}

// DefaultRules returns the stock thresholds: 80% humidity, 30 °C.
func DefaultRules() Rules {
	return Rules{
		RainHumidity:   80,
		HotTemperature: 30,
	}
}

// Prediction is the outcome of the next-day heuristic.
type Prediction struct {
	Outlook Outlook `json:"outlook"`
	Message string  `json:"message"`
	// Basis is the observation the prediction was derived from.
	Basis Record `json:"basis"`
}

// Predict applies the rules to the last record of the dataset. Humidity is
// checked before temperature.
func Predict(d *Dataset, rules Rules) (Prediction, error) {
	last, ok := d.Last()
	if !ok {
		return Prediction{}, ErrEmptyDataset
	}

	p := Prediction{Basis: last}
	switch {
	case last.Humidity > rules.RainHumidity:
		p.Outlook = OutlookRain
		p.Message = "High chance of rain tomorrow."
	case last.Temperature > rules.HotTemperature:
		p.Outlook = OutlookHot
		p.Message = "Likely sunny and hot tomorrow."
	default:
		p.Outlook = OutlookModerate
		p.Message = "Moderate weather expected."
	}
	return p, nil
}
