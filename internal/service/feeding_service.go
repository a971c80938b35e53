package service

import (
	"context"
	"fmt"
	"time"

	"webbaby/internal/growth"
	"webbaby/internal/models"
	"webbaby/internal/validation"
)

// FeedStore is the persistence FeedingService needs
type FeedStore interface {
	Create(fedAt time.Time, amountMl int, feedingType growth.FeedingType) (*models.Feed, error)
	GetByID(id int64) (*models.Feed, error)
	GetLast() (*models.Feed, error)
	List(from, to time.Time) ([]models.Feed, error)
	Update(feed *models.Feed) error
	Delete(id int64) (bool, error)
}

// Recommender produces the personalized recommendation for a date
type Recommender interface {
	ForDate(ctx context.Context, day models.Date) (*PersonalRecommendation, error)
}

// FeedInput is the body of a feed create request
type FeedInput struct {
	FedAt       time.Time `json:"fedAt"`
	AmountMl    int       `json:"amountMl"`
	FeedingType string    `json:"feedingType"`
}

// FeedPatch is the body of a feed update request; nil fields are kept
type FeedPatch struct {
	FedAt       *time.Time `json:"fedAt"`
	AmountMl    *int       `json:"amountMl"`
	FeedingType *string    `json:"feedingType"`
}

// NightWindow configures the overnight sleep window of the day summaries
type NightWindow struct {
	StartHour int
	EndHour   int
}

// FeedingService handles feed logging and daily aggregation
type FeedingService struct {
	feeds       FeedStore
	recommender Recommender
	loc         *time.Location
	night       NightWindow
	now         func() time.Time
}

// NewFeedingService creates a new feeding service
func NewFeedingService(feeds FeedStore, recommender Recommender, loc *time.Location, night NightWindow) *FeedingService {
	if loc == nil {
		loc = time.Local
	}
	return &FeedingService{
		feeds:       feeds,
		recommender: recommender,
		loc:         loc,
		night:       night,
		now:         time.Now,
	}
}

// Create logs a new feed
func (s *FeedingService) Create(in FeedInput) (*models.Feed, error) {
	ft, err := validation.ValidateFeed(in.FedAt, in.AmountMl, in.FeedingType)
	if err != nil {
		return nil, err
	}
	return s.feeds.Create(in.FedAt.Truncate(time.Second), in.AmountMl, ft)
}

// Get returns a single feed
func (s *FeedingService) Get(id int64) (*models.Feed, error) {
	feed, err := s.feeds.GetByID(id)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, ErrNotFound
	}
	return feed, nil
}

// Update applies a partial update to an existing feed
func (s *FeedingService) Update(id int64, patch FeedPatch) (*models.Feed, error) {
	feed, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	fedAt := feed.FedAt
	if patch.FedAt != nil {
		fedAt = *patch.FedAt
	}
	amount := feed.AmountMl
	if patch.AmountMl != nil {
		amount = *patch.AmountMl
	}
	typeName := feed.FeedingType.String()
	if patch.FeedingType != nil {
		typeName = *patch.FeedingType
	}

	ft, err := validation.ValidateFeed(fedAt, amount, typeName)
	if err != nil {
		return nil, err
	}
	feed.FedAt = fedAt.Truncate(time.Second).UTC()
	feed.AmountMl = amount
	feed.FeedingType = ft

	if err := s.feeds.Update(feed); err != nil {
		return nil, err
	}
	return feed, nil
}

// Delete removes a feed
func (s *FeedingService) Delete(id int64) error {
	deleted, err := s.feeds.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// List returns feeds between from and to, both inclusive, oldest first
func (s *FeedingService) List(from, to time.Time) ([]models.Feed, error) {
	return s.feeds.List(from, to)
}

// Last returns the most recent feed, or nil when nothing has been logged
func (s *FeedingService) Last() (*models.Feed, error) {
	return s.feeds.GetLast()
}

// DaySummaries aggregates every calendar day from the day of from to the day
// of to. Feeds of the following day are loaded so the last night can be
// measured.
func (s *FeedingService) DaySummaries(from, to time.Time, descending bool) ([]growth.DaySummary, error) {
	first := startOfDay(from, s.loc)
	last := startOfDay(to, s.loc)
	if first.After(last) {
		return []growth.DaySummary{}, nil
	}

	feeds, err := s.feeds.List(first, last.AddDate(0, 0, 2).Add(-time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to load feeds for summary: %w", err)
	}

	events := make([]growth.FeedEvent, len(feeds))
	for i, f := range feeds {
		events[i] = f.Event()
	}

	return growth.Summarize(events, first, last, growth.SummaryOptions{
		Location:       s.loc,
		NightStartHour: s.night.StartHour,
		NightEndHour:   s.night.EndHour,
		Now:            s.now(),
		Descending:     descending,
	}), nil
}

// Today builds the dashboard banner: time since the last feed, what has been
// consumed since local midnight and how much should have been by now
func (s *FeedingService) Today(ctx context.Context) (*models.TodayStatus, error) {
	now := s.now().In(s.loc)
	dayStart := startOfDay(now, s.loc)

	status := &models.TodayStatus{Now: now}

	last, err := s.feeds.GetLast()
	if err != nil {
		return nil, err
	}
	if last != nil {
		status.LastFeed = last
		if !last.FedAt.After(now) {
			minutes := int(now.Sub(last.FedAt) / time.Minute)
			status.MinutesSinceLastFeed = &minutes
		}
	}

	feeds, err := s.feeds.List(dayStart, now)
	if err != nil {
		return nil, err
	}
	for _, f := range feeds {
		status.ConsumedMl += f.AmountMl
	}

	if s.recommender != nil {
		rec, err := s.recommender.ForDate(ctx, models.NewDate(now))
		if err != nil {
			return nil, err
		}
		switch {
		case rec.Adjusted != nil:
			status.MealsPerDay = rec.Adjusted.MealsPerDay
			status.PerMealMl = rec.Adjusted.PerMealMl
		case rec.Generic != nil:
			status.MealsPerDay = rec.Generic.MealsPerDay
			status.PerMealMl = rec.Generic.PerMealMl
		}
	}

	status.ExpectedByNowMl = ExpectedByNow(now.Hour()*60+now.Minute(), status.MealsPerDay, status.PerMealMl)

	return status, nil
}

// ExpectedByNow is the number of meals due by the given wall-clock minute of
// the day, capped at mealsPerDay, times the per-meal amount
func ExpectedByNow(minutesIntoDay, mealsPerDay, perMealMl int) int {
	if mealsPerDay <= 0 || perMealMl <= 0 || minutesIntoDay < 0 {
		return 0
	}
	meals := minutesIntoDay * mealsPerDay / 1440
	if meals > mealsPerDay {
		meals = mealsPerDay
	}
	return meals * perMealMl
}
