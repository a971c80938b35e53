package service

import (
	"math"
	"time"

	"webbaby/internal/growth"
	"webbaby/internal/models"
	"webbaby/internal/validation"
)

// heightBand is the relative width of the band drawn around expected height
const heightBand = 0.03

// MeasurementStore is the persistence GrowthService needs
type MeasurementStore interface {
	MeasurementLister
	UpsertWeight(day models.Date, grams int) (*models.Weight, error)
	GetWeight(id int64) (*models.Weight, error)
	GetWeightByDate(day models.Date) (*models.Weight, error)
	UpdateWeight(w *models.Weight) error
	DeleteWeight(id int64) (bool, error)
	UpsertHeight(day models.Date, cm float64) (*models.Height, error)
	GetHeight(id int64) (*models.Height, error)
	GetHeightByDate(day models.Date) (*models.Height, error)
	UpdateHeight(h *models.Height) error
	DeleteHeight(id int64) (bool, error)
}

// WeightInput is the body of a weight write. On update, zero fields keep the
// stored value.
type WeightInput struct {
	MeasuredAt  models.Date `json:"measuredAt"`
	WeightGrams int         `json:"weightGrams"`
}

// HeightInput is the body of a height write. On update, zero fields keep the
// stored value.
type HeightInput struct {
	MeasuredAt models.Date `json:"measuredAt"`
	HeightCm   float64     `json:"heightCm"`
}

// GrowthService manages weight and height records and their charts
type GrowthService struct {
	store    MeasurementStore
	profiles ProfileSource
	table    *growth.Table
	loc      *time.Location
	now      func() time.Time
}

// NewGrowthService creates a new growth service
func NewGrowthService(store MeasurementStore, profiles ProfileSource, loc *time.Location) *GrowthService {
	if loc == nil {
		loc = time.Local
	}
	return &GrowthService{
		store:    store,
		profiles: profiles,
		table:    growth.WHOTable(),
		loc:      loc,
		now:      time.Now,
	}
}

// SaveWeight stores the weight of a day, replacing an existing record
func (s *GrowthService) SaveWeight(in WeightInput) (*models.Weight, error) {
	if err := validation.ValidateWeight(in.MeasuredAt, in.WeightGrams); err != nil {
		return nil, err
	}
	return s.store.UpsertWeight(in.MeasuredAt, in.WeightGrams)
}

// ListWeights returns weights between from and to, newest first
func (s *GrowthService) ListWeights(from, to models.Date) ([]models.Weight, error) {
	return s.store.ListWeights(from, to)
}

// UpdateWeight edits a weight record. Moving it onto a date that already has
// a record is a conflict.
func (s *GrowthService) UpdateWeight(id int64, in WeightInput) (*models.Weight, error) {
	w, err := s.store.GetWeight(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrNotFound
	}

	if !in.MeasuredAt.IsZero() && !in.MeasuredAt.Equal(w.MeasuredAt.Time) {
		other, err := s.store.GetWeightByDate(in.MeasuredAt)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrConflict
		}
		w.MeasuredAt = in.MeasuredAt
	}
	if in.WeightGrams != 0 {
		w.WeightGrams = in.WeightGrams
	}
	if err := validation.ValidateWeight(w.MeasuredAt, w.WeightGrams); err != nil {
		return nil, err
	}

	if err := s.store.UpdateWeight(w); err != nil {
		return nil, err
	}
	return w, nil
}

// DeleteWeight removes a weight record
func (s *GrowthService) DeleteWeight(id int64) error {
	deleted, err := s.store.DeleteWeight(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// SaveHeight stores the height of a day, replacing an existing record
func (s *GrowthService) SaveHeight(in HeightInput) (*models.Height, error) {
	if err := validation.ValidateHeight(in.MeasuredAt, in.HeightCm); err != nil {
		return nil, err
	}
	return s.store.UpsertHeight(in.MeasuredAt, in.HeightCm)
}

// ListHeights returns heights between from and to, newest first
func (s *GrowthService) ListHeights(from, to models.Date) ([]models.Height, error) {
	return s.store.ListHeights(from, to)
}

// UpdateHeight edits a height record. Moving it onto a date that already has
// a record is a conflict.
func (s *GrowthService) UpdateHeight(id int64, in HeightInput) (*models.Height, error) {
	h, err := s.store.GetHeight(id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, ErrNotFound
	}

	if !in.MeasuredAt.IsZero() && !in.MeasuredAt.Equal(h.MeasuredAt.Time) {
		other, err := s.store.GetHeightByDate(in.MeasuredAt)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrConflict
		}
		h.MeasuredAt = in.MeasuredAt
	}
	if in.HeightCm != 0 {
		h.HeightCm = in.HeightCm
	}
	if err := validation.ValidateHeight(h.MeasuredAt, h.HeightCm); err != nil {
		return nil, err
	}

	if err := s.store.UpdateHeight(h); err != nil {
		return nil, err
	}
	return h, nil
}

// DeleteHeight removes a height record
func (s *GrowthService) DeleteHeight(id int64) error {
	deleted, err := s.store.DeleteHeight(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// WeightChart returns one point per day with the recorded weight in grams,
// the expected weight and the percentile of each record
func (s *GrowthService) WeightChart() (*models.Chart, error) {
	profile, err := s.profiles.Profile()
	if err != nil {
		return nil, err
	}
	weights, err := s.store.ListWeights(models.Date{}, models.Date{})
	if err != nil {
		return nil, err
	}

	records := make(map[string]float64, len(weights))
	for _, w := range weights {
		records[w.MeasuredAt.String()] = float64(w.WeightGrams)
	}

	birthGrams := profile.BirthGrams()
	points := s.series(profile, records, func(p *models.ChartPoint, age int) {
		expected := float64(s.table.ExpectedWeightGrams(birthGrams, profile.Sex, age))
		p.Expected = &expected
		if p.Actual != nil {
			p.Percentile = s.percentile(growth.CurveWeight, profile.Sex, age, *p.Actual/1000)
		}
	})

	return &models.Chart{Curve: growth.CurveWeight.String(), Unit: "g", Sex: profile.Sex, Points: points}, nil
}

// HeightChart returns one point per day with the recorded height, the length
// median with a band of 3% either side and the percentile of each record
func (s *GrowthService) HeightChart() (*models.Chart, error) {
	profile, err := s.profiles.Profile()
	if err != nil {
		return nil, err
	}
	heights, err := s.store.ListHeights(models.Date{}, models.Date{})
	if err != nil {
		return nil, err
	}

	records := make(map[string]float64, len(heights))
	for _, h := range heights {
		records[h.MeasuredAt.String()] = h.HeightCm
	}

	points := s.series(profile, records, func(p *models.ChartPoint, age int) {
		median := s.table.ExpectedHeightCm(profile.Sex, age)
		expected := round1(median)
		upper := round1(median * (1 + heightBand))
		lower := round1(median * (1 - heightBand))
		p.Expected = &expected
		p.Upper = &upper
		p.Lower = &lower
		if p.Actual != nil {
			p.Percentile = s.percentile(growth.CurveLength, profile.Sex, age, *p.Actual)
		}
	})

	return &models.Chart{Curve: growth.CurveLength.String(), Unit: "cm", Sex: profile.Sex, Points: points}, nil
}

// series walks every day from the birth date, or the first record when the
// birth date is unknown, to today or the last record. fill adds the
// age-relative values and runs only when the birth date is known.
func (s *GrowthService) series(profile growth.ChildProfile, records map[string]float64, fill func(p *models.ChartPoint, age int)) []models.ChartPoint {
	var origin, first, last models.Date
	for key := range records {
		d, err := models.ParseDate(key)
		if err != nil {
			continue
		}
		if first.IsZero() || d.Before(first.Time) {
			first = d
		}
		if last.IsZero() || d.After(last.Time) {
			last = d
		}
	}

	switch {
	case profile.BirthDate != nil:
		origin = models.NewDate(profile.BirthDate.In(s.loc))
	case !first.IsZero():
		origin = first
	default:
		return []models.ChartPoint{}
	}

	start := origin
	if !first.IsZero() && first.Before(start.Time) {
		start = first
	}
	end := models.NewDate(s.now().In(s.loc))
	if last.After(end.Time) {
		end = last
	}

	points := make([]models.ChartPoint, 0, int(end.Sub(start.Time)/(24*time.Hour))+1)
	for day := start.Time; !day.After(end.Time); day = day.AddDate(0, 0, 1) {
		key := day.Format(models.DateLayout)
		p := models.ChartPoint{Day: key}
		if v, ok := records[key]; ok {
			actual := v
			p.Actual = &actual
		}
		if profile.BirthDate != nil {
			age := growth.AgeDays(origin.Time, day)
			if age < 0 {
				age = 0
			}
			p.AgeDays = &age
			fill(&p, age)
		}
		points = append(points, p)
	}
	return points
}

// Percentile places a single value on a curve at the child's age on day.
// Weight values are in grams, length values in centimetres.
func (s *GrowthService) Percentile(curveName string, day models.Date, value float64) (*models.PercentileResult, error) {
	curve, err := growth.ParseCurve(curveName)
	if err != nil {
		return nil, validation.ValidationError{Field: "curve", Message: err.Error()}
	}
	if day.IsZero() {
		return nil, validation.ValidationError{Field: "date", Message: "date required"}
	}
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, validation.ValidationError{Field: "value", Message: "value must be a positive number"}
	}

	profile, err := s.profiles.Profile()
	if err != nil {
		return nil, err
	}
	if profile.BirthDate == nil {
		return nil, ErrBirthDateUnknown
	}
	age := growth.AgeDays(profile.BirthDate.In(s.loc), day.Time)
	if age < 0 {
		age = 0
	}

	observed, scale := value, 1.0
	if curve == growth.CurveWeight {
		observed, scale = value/1000, 1000
	}
	pct, ok := s.table.Percentile(curve, profile.Sex, age, observed)
	if !ok {
		return nil, validation.ValidationError{Field: "value", Message: "value cannot be placed on the curve"}
	}

	return &models.PercentileResult{
		Curve:      curve.String(),
		AgeDays:    age,
		Value:      value,
		Median:     round1(s.table.MedianValue(curve, profile.Sex, age) * scale),
		Percentile: round1(pct),
	}, nil
}

func (s *GrowthService) percentile(c growth.Curve, sex growth.Sex, ageDays int, observed float64) *float64 {
	pct, ok := s.table.Percentile(c, sex, ageDays, observed)
	if !ok {
		return nil
	}
	pct = round1(pct)
	return &pct
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
