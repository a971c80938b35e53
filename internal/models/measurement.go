package models

import "webbaby/internal/growth"

// Weight is a body weight record; at most one exists per date
type Weight struct {
	ID          int64 `json:"id"`
	MeasuredAt  Date  `json:"measuredAt"`
	WeightGrams int   `json:"weightGrams"`
}

// Height is a body length record; at most one exists per date
type Height struct {
	ID         int64   `json:"id"`
	MeasuredAt Date    `json:"measuredAt"`
	HeightCm   float64 `json:"heightCm"`
}

func (w Weight) Measurement() growth.Measurement {
	return growth.Measurement{MeasuredAt: w.MeasuredAt.Time, Value: float64(w.WeightGrams)}
}

func (h Height) Measurement() growth.Measurement {
	return growth.Measurement{MeasuredAt: h.MeasuredAt.Time, Value: h.HeightCm}
}

// ChartPoint is one day of a growth chart series. Actual and Percentile are
// set only on days with a record. Without a birth date only Day and Actual
// are set.
type ChartPoint struct {
	Day        string   `json:"day"`
	AgeDays    *int     `json:"ageDays"`
	Actual     *float64 `json:"actual"`
	Expected   *float64 `json:"expected"`
	Upper      *float64 `json:"upper,omitempty"`
	Lower      *float64 `json:"lower,omitempty"`
	Percentile *float64 `json:"percentile"`
}

// Chart is a full growth series for one curve
type Chart struct {
	Curve  string       `json:"curve"`
	Unit   string       `json:"unit"`
	Sex    growth.Sex   `json:"sex"`
	Points []ChartPoint `json:"points"`
}

// PercentileResult answers a single percentile lookup
type PercentileResult struct {
	Curve      string  `json:"curve"`
	AgeDays    int     `json:"ageDays"`
	Value      float64 `json:"value"`
	Median     float64 `json:"median"`
	Percentile float64 `json:"percentile"`
}
