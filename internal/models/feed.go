package models

import (
	"time"

	"webbaby/internal/growth"
)

// Feed is one logged feeding
type Feed struct {
	ID          int64              `json:"id"`
	FedAt       time.Time          `json:"fedAt"`
	AmountMl    int                `json:"amountMl"`
	FeedingType growth.FeedingType `json:"feedingType"`
}

// Event converts the feed to the aggregation input
func (f Feed) Event() growth.FeedEvent {
	return growth.FeedEvent{
		ID:          f.ID,
		FedAt:       f.FedAt,
		AmountMl:    f.AmountMl,
		FeedingType: f.FeedingType,
	}
}

// TodayStatus is the dashboard banner for the current day
type TodayStatus struct {
	Now                  time.Time `json:"now"`
	LastFeed             *Feed     `json:"lastFeed"`
	MinutesSinceLastFeed *int      `json:"minutesSinceLastFeed"`
	ConsumedMl           int       `json:"consumedMl"`
	MealsPerDay          int       `json:"mealsPerDay"`
	PerMealMl            int       `json:"perMealMl"`
	ExpectedByNowMl      int       `json:"expectedByNowMl"`
}
