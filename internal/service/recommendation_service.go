package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"webbaby/internal/growth"
	"webbaby/internal/models"
)

// ProfileSource returns the child data of the household
type ProfileSource interface {
	Profile() (growth.ChildProfile, error)
}

// MeasurementLister lists weight and height records between two dates
type MeasurementLister interface {
	ListWeights(from, to models.Date) ([]models.Weight, error)
	ListHeights(from, to models.Date) ([]models.Height, error)
}

// GenericSource lists the stored age-only table
type GenericSource interface {
	List() ([]growth.GenericRow, error)
}

// PersonalRecommendation is the intake advice for one date. AgeDays, Adjusted
// and Generic are nil when the birth date is unknown. Generic is also nil
// past the end of the age-only table.
type PersonalRecommendation struct {
	Date     string                 `json:"date"`
	AgeDays  *int                   `json:"ageDays"`
	Adjusted *growth.Recommendation `json:"adjusted"`
	Generic  *growth.GenericRow     `json:"generic"`
}

// RecommendationService combines the profile and the latest measurements into
// a personalized daily intake
type RecommendationService struct {
	profiles     ProfileSource
	measurements MeasurementLister
	generic      GenericSource
	table        *growth.Table
	loc          *time.Location
	debug        bool
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(profiles ProfileSource, measurements MeasurementLister, generic GenericSource, loc *time.Location, debug bool) *RecommendationService {
	if loc == nil {
		loc = time.Local
	}
	return &RecommendationService{
		profiles:     profiles,
		measurements: measurements,
		generic:      generic,
		table:        growth.WHOTable(),
		loc:          loc,
		debug:        debug,
	}
}

// Generic returns the age-only table. The built-in table is used when nothing
// has been stored.
func (s *RecommendationService) Generic() ([]growth.GenericRow, error) {
	if s.generic != nil {
		rows, err := s.generic.List()
		if err != nil {
			return nil, fmt.Errorf("failed to load recommendations: %w", err)
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}
	return growth.GenericTable(), nil
}

// ForDate computes both the adjusted and the generic recommendation for day
func (s *RecommendationService) ForDate(ctx context.Context, day models.Date) (*PersonalRecommendation, error) {
	var (
		profile growth.ChildProfile
		weights []models.Weight
		heights []models.Height
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := s.profiles.Profile()
		profile = p
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		w, err := s.measurements.ListWeights(models.Date{}, models.Date{})
		weights = w
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		h, err := s.measurements.ListHeights(models.Date{}, models.Date{})
		heights = h
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load recommendation inputs: %w", err)
	}

	result := &PersonalRecommendation{Date: day.String()}
	if profile.BirthDate == nil {
		return result, nil
	}

	birth := profile.BirthDate.In(s.loc)
	target := day.Time
	age := growth.AgeDays(birth, target)
	if age < 0 {
		age = 0
	}
	result.AgeDays = &age

	if row, ok := growth.GenericFor(age); ok {
		result.Generic = &row
	}

	in := growth.RecommendationInput{
		AgeDays:    age,
		Sex:        profile.Sex,
		BirthGrams: profile.BirthGrams(),
	}

	weightRecords := make([]growth.Measurement, len(weights))
	for i, w := range weights {
		weightRecords[i] = w.Measurement()
	}
	if anchor, ok := growth.NearestAnchor(weightRecords, target); ok {
		in.EstWeightGrams = int(math.Round(s.table.Project(growth.CurveWeight, profile.Sex, birth, anchor, target)))
		daysAgo := growth.AgeDays(anchor.MeasuredAt, target)
		in.EstWeightDaysAgo = &daysAgo
	}

	heightRecords := make([]growth.Measurement, len(heights))
	for i, h := range heights {
		heightRecords[i] = h.Measurement()
	}
	if anchor, ok := growth.NearestAnchor(heightRecords, target); ok {
		in.EstHeightCm = math.Round(s.table.Project(growth.CurveLength, profile.Sex, birth, anchor, target)*10) / 10
		daysAgo := growth.AgeDays(anchor.MeasuredAt, target)
		in.EstHeightDaysAgo = &daysAgo
	}

	rec := s.table.Recommend(in)
	result.Adjusted = &rec

	if s.debug {
		log.Printf("[DEBUG] Recommendation for %s: age=%d est=%dg/%.1fcm total=%dml", result.Date, age,
			rec.Inputs.EstWeightGrams, rec.Inputs.EstHeightCm, rec.TotalMl)
	}

	return result, nil
}
