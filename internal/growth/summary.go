package growth

import (
	"sort"
	"time"
)

const (
	DefaultNightStartHour = 20
	DefaultNightEndHour   = 8

	dayLayout = "2006-01-02"
)

// FeedEvent is a single logged feed.
type FeedEvent struct {
	ID          int64
	FedAt       time.Time
	AmountMl    int
	FeedingType FeedingType
}

// DaySummary aggregates the feeds of one calendar day. SleepHours is nil when
// the night has no data or has not finished yet.
type DaySummary struct {
	Day          string              `json:"day"`
	TotalsByType map[FeedingType]int `json:"totalsByType"`
	FeedCount    int                 `json:"feedCount"`
	SleepHours   *float64            `json:"sleepHours"`
}

// SummaryOptions controls day boundaries and the overnight window. The window
// starts at NightStartHour on each day and ends at NightEndHour, on the next
// day when NightEndHour <= NightStartHour. Zero hours select the defaults.
type SummaryOptions struct {
	Location       *time.Location
	NightStartHour int
	NightEndHour   int
	Now            time.Time
	Descending     bool
}

// DefaultSummaryOptions returns the 20:00-08:00 window in local time.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{
		Location:       time.Local,
		NightStartHour: DefaultNightStartHour,
		NightEndHour:   DefaultNightEndHour,
	}
}

func (o SummaryOptions) withDefaults() SummaryOptions {
	if o.Location == nil {
		o.Location = time.Local
	}
	// A zero window means unset; equal hours are rejected at startup
	if o.NightStartHour == 0 && o.NightEndHour == 0 {
		o.NightStartHour = DefaultNightStartHour
		o.NightEndHour = DefaultNightEndHour
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Summarize returns one summary per calendar day from the day of `from` to
// the day of `to`, both inclusive. Events of the day after `to` should be
// included so the last night can be measured.
func Summarize(events []FeedEvent, from, to time.Time, opts SummaryOptions) []DaySummary {
	opts = opts.withDefaults()
	loc := opts.Location

	sorted := make([]FeedEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FedAt.Before(sorted[j].FedAt)
	})

	byDay := make(map[string][]FeedEvent)
	for _, e := range sorted {
		key := e.FedAt.In(loc).Format(dayLayout)
		byDay[key] = append(byDay[key], e)
	}

	today := opts.Now.In(loc).Format(dayLayout)
	first := startOfDay(from, loc)
	last := startOfDay(to, loc)

	summaries := make([]DaySummary, 0)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayLayout)
		feeds := byDay[key]

		s := DaySummary{
			Day:          key,
			TotalsByType: make(map[FeedingType]int, numFeedingTypes),
			FeedCount:    len(feeds),
		}
		for _, t := range FeedingTypes() {
			s.TotalsByType[t] = 0
		}
		for _, f := range feeds {
			s.TotalsByType[f.FeedingType] += f.AmountMl
		}

		// The current night is still unfolding, and a day without any feed
		// has no data rather than a perfect night.
		if key < today && len(feeds) > 0 {
			next := byDay[day.AddDate(0, 0, 1).Format(dayLayout)]
			hours := longestNightGap(day, feeds, next, opts)
			s.SleepHours = &hours
		}

		summaries = append(summaries, s)
	}

	if opts.Descending {
		for i, j := 0, len(summaries)-1; i < j; i, j = i+1, j-1 {
			summaries[i], summaries[j] = summaries[j], summaries[i]
		}
	}
	return summaries
}

// longestNightGap returns the longest feed-free stretch in hours, rounded to
// one decimal, inside the night window that starts on day.
func longestNightGap(day time.Time, today, tomorrow []FeedEvent, opts SummaryOptions) float64 {
	start, end := nightWindow(day, opts)

	var inWindow []time.Time
	for _, group := range [][]FeedEvent{today, tomorrow} {
		for _, f := range group {
			if !f.FedAt.Before(start) && !f.FedAt.After(end) {
				inWindow = append(inWindow, f.FedAt)
			}
		}
	}

	if len(inWindow) == 0 {
		return round1(end.Sub(start).Hours())
	}

	sort.Slice(inWindow, func(i, j int) bool { return inWindow[i].Before(inWindow[j]) })

	longest := inWindow[0].Sub(start)
	if tail := end.Sub(inWindow[len(inWindow)-1]); tail > longest {
		longest = tail
	}
	for i := 1; i < len(inWindow); i++ {
		if gap := inWindow[i].Sub(inWindow[i-1]); gap > longest {
			longest = gap
		}
	}
	return round1(longest.Hours())
}

func nightWindow(day time.Time, opts SummaryOptions) (time.Time, time.Time) {
	y, m, d := day.Date()
	loc := day.Location()

	start := time.Date(y, m, d, opts.NightStartHour, 0, 0, 0, loc)
	endDay := d
	if opts.NightEndHour <= opts.NightStartHour {
		endDay++
	}
	end := time.Date(y, m, endDay, opts.NightEndHour, 0, 0, 0, loc)
	return start, end
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
