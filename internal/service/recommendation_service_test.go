package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webbaby/internal/growth"
	"webbaby/internal/models"
)

var testBirth = time.Date(2024, time.March, 1, 6, 30, 0, 0, time.UTC)

func boyProfile() growth.ChildProfile {
	birth := testBirth
	return growth.ChildProfile{Sex: growth.SexBoy, BirthDate: &birth, BirthWeightGrams: 3300}
}

func TestForDateWithoutBirthDate(t *testing.T) {
	s := NewRecommendationService(fakeProfile{}, &fakeMeasurements{}, nil, time.UTC, false)

	rec, err := s.ForDate(context.Background(), mustDate("2024-05-01"))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", rec.Date)
	assert.Nil(t, rec.AgeDays)
	assert.Nil(t, rec.Adjusted)
	assert.Nil(t, rec.Generic)
}

func TestForDateWithoutMeasurements(t *testing.T) {
	s := NewRecommendationService(fakeProfile{profile: boyProfile()}, &fakeMeasurements{}, nil, time.UTC, false)

	rec, err := s.ForDate(context.Background(), mustDate("2024-03-11"))
	require.NoError(t, err)
	require.NotNil(t, rec.AgeDays)
	assert.Equal(t, 10, *rec.AgeDays)

	want, ok := growth.GenericFor(10)
	require.True(t, ok)
	require.NotNil(t, rec.Generic)
	assert.Equal(t, want, *rec.Generic)

	require.NotNil(t, rec.Adjusted)
	inputs := rec.Adjusted.Inputs
	assert.Equal(t, inputs.ExpectedWeightGrams, inputs.EstWeightGrams)
	assert.Equal(t, inputs.ExpectedHeightCm, inputs.EstHeightCm)
	assert.Nil(t, inputs.EstWeightDaysAgo)
	assert.Nil(t, inputs.EstHeightDaysAgo)
	assert.Equal(t, rec.Adjusted.MealsPerDay, growth.MealsPerDay(10))
}

func TestForDateProjectsFromNearestAnchor(t *testing.T) {
	measurements := &fakeMeasurements{
		weights: []models.Weight{
			{ID: 1, MeasuredAt: mustDate("2024-03-01"), WeightGrams: 3300},
			{ID: 2, MeasuredAt: mustDate("2024-04-30"), WeightGrams: 5000},
		},
		heights: []models.Height{
			{ID: 1, MeasuredAt: mustDate("2024-03-01"), HeightCm: 50},
		},
	}
	s := NewRecommendationService(fakeProfile{profile: boyProfile()}, measurements, nil, time.UTC, false)

	// 2024-03-31 is day 30; the March 1 record is the latest one before it
	rec, err := s.ForDate(context.Background(), mustDate("2024-03-31"))
	require.NoError(t, err)
	require.NotNil(t, rec.Adjusted)

	table := growth.WHOTable()
	wantGrams := int(math.Round(3300 * table.MedianValue(growth.CurveWeight, growth.SexBoy, 30) / table.MedianValue(growth.CurveWeight, growth.SexBoy, 0)))
	inputs := rec.Adjusted.Inputs
	assert.Equal(t, wantGrams, inputs.EstWeightGrams)
	require.NotNil(t, inputs.EstWeightDaysAgo)
	assert.Equal(t, 30, *inputs.EstWeightDaysAgo)
	require.NotNil(t, inputs.EstHeightDaysAgo)
	assert.Equal(t, 30, *inputs.EstHeightDaysAgo)
	assert.Greater(t, inputs.EstHeightCm, 50.0)
}

func TestForDateBeforeBirthClampsAge(t *testing.T) {
	s := NewRecommendationService(fakeProfile{profile: boyProfile()}, &fakeMeasurements{}, nil, time.UTC, false)

	rec, err := s.ForDate(context.Background(), mustDate("2024-02-20"))
	require.NoError(t, err)
	require.NotNil(t, rec.AgeDays)
	assert.Equal(t, 0, *rec.AgeDays)
	assert.Equal(t, 0, rec.Adjusted.AgeDays)
}

func TestForDatePastGenericTable(t *testing.T) {
	s := NewRecommendationService(fakeProfile{profile: boyProfile()}, &fakeMeasurements{}, nil, time.UTC, false)

	rec, err := s.ForDate(context.Background(), mustDate("2025-06-01"))
	require.NoError(t, err)
	assert.Nil(t, rec.Generic)
	assert.NotNil(t, rec.Adjusted)
}

func TestForDateUsesConfiguredZoneForBirth(t *testing.T) {
	// Born 23:30 UTC on Feb 29, which is already March 1 in UTC+2
	birth := time.Date(2024, time.February, 29, 23, 30, 0, 0, time.UTC)
	profile := growth.ChildProfile{Sex: growth.SexGirl, BirthDate: &birth}
	zone := time.FixedZone("UTC+2", 2*3600)
	s := NewRecommendationService(fakeProfile{profile: profile}, &fakeMeasurements{}, nil, zone, false)

	rec, err := s.ForDate(context.Background(), mustDate("2024-03-02"))
	require.NoError(t, err)
	require.NotNil(t, rec.AgeDays)
	assert.Equal(t, 1, *rec.AgeDays)
}

func TestForDatePropagatesStoreErrors(t *testing.T) {
	boom := errors.New("database is locked")
	s := NewRecommendationService(fakeProfile{profile: boyProfile()}, &fakeMeasurements{err: boom}, nil, time.UTC, false)

	_, err := s.ForDate(context.Background(), mustDate("2024-03-11"))
	assert.ErrorIs(t, err, boom)
}

func TestGenericFallsBackToBuiltInTable(t *testing.T) {
	s := NewRecommendationService(fakeProfile{}, &fakeMeasurements{}, fakeGeneric{}, time.UTC, false)
	rows, err := s.Generic()
	require.NoError(t, err)
	assert.Len(t, rows, growth.GenericDays)

	stored := []growth.GenericRow{{AgeDays: 0, TotalMl: 1, MealsPerDay: 1, PerMealMl: 1}}
	s = NewRecommendationService(fakeProfile{}, &fakeMeasurements{}, fakeGeneric{rows: stored}, time.UTC, false)
	rows, err = s.Generic()
	require.NoError(t, err)
	assert.Equal(t, stored, rows)
}
