package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"webbaby/internal/growth"
	"webbaby/internal/models"
)

type fakeFeedStore struct {
	mu     sync.Mutex
	nextID int64
	feeds  []models.Feed
}

func (f *fakeFeedStore) Create(fedAt time.Time, amountMl int, ft growth.FeedingType) (*models.Feed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	feed := models.Feed{ID: f.nextID, FedAt: fedAt.UTC(), AmountMl: amountMl, FeedingType: ft}
	f.feeds = append(f.feeds, feed)
	return &feed, nil
}

func (f *fakeFeedStore) GetByID(id int64) (*models.Feed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, feed := range f.feeds {
		if feed.ID == id {
			feed := feed
			return &feed, nil
		}
	}
	return nil, nil
}

func (f *fakeFeedStore) GetLast() (*models.Feed, error) {
	all, _ := f.List(time.Time{}, time.Time{})
	if len(all) == 0 {
		return nil, nil
	}
	last := all[len(all)-1]
	return &last, nil
}

func (f *fakeFeedStore) List(from, to time.Time) ([]models.Feed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Feed{}
	for _, feed := range f.feeds {
		if !from.IsZero() && feed.FedAt.Before(from) {
			continue
		}
		if !to.IsZero() && feed.FedAt.After(to) {
			continue
		}
		out = append(out, feed)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FedAt.Before(out[j].FedAt) })
	return out, nil
}

func (f *fakeFeedStore) Update(feed *models.Feed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.feeds {
		if f.feeds[i].ID == feed.ID {
			f.feeds[i] = *feed
		}
	}
	return nil
}

func (f *fakeFeedStore) Delete(id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.feeds {
		if f.feeds[i].ID == id {
			f.feeds = append(f.feeds[:i], f.feeds[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeProfile struct {
	profile growth.ChildProfile
	err     error
}

func (f fakeProfile) Profile() (growth.ChildProfile, error) {
	return f.profile, f.err
}

type fakeMeasurements struct {
	nextID  int64
	weights []models.Weight
	heights []models.Height
	err     error
}

func inRange(d, from, to models.Date) bool {
	if !from.IsZero() && d.Before(from.Time) {
		return false
	}
	if !to.IsZero() && d.After(to.Time) {
		return false
	}
	return true
}

func (f *fakeMeasurements) ListWeights(from, to models.Date) ([]models.Weight, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Weight{}
	for _, w := range f.weights {
		if inRange(w.MeasuredAt, from, to) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MeasuredAt.After(out[j].MeasuredAt.Time) })
	return out, nil
}

func (f *fakeMeasurements) ListHeights(from, to models.Date) ([]models.Height, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Height{}
	for _, h := range f.heights {
		if inRange(h.MeasuredAt, from, to) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MeasuredAt.After(out[j].MeasuredAt.Time) })
	return out, nil
}

func (f *fakeMeasurements) UpsertWeight(day models.Date, grams int) (*models.Weight, error) {
	for i := range f.weights {
		if f.weights[i].MeasuredAt.Equal(day.Time) {
			f.weights[i].WeightGrams = grams
			w := f.weights[i]
			return &w, nil
		}
	}
	f.nextID++
	w := models.Weight{ID: f.nextID, MeasuredAt: day, WeightGrams: grams}
	f.weights = append(f.weights, w)
	return &w, nil
}

func (f *fakeMeasurements) GetWeight(id int64) (*models.Weight, error) {
	for _, w := range f.weights {
		if w.ID == id {
			w := w
			return &w, nil
		}
	}
	return nil, nil
}

func (f *fakeMeasurements) GetWeightByDate(day models.Date) (*models.Weight, error) {
	for _, w := range f.weights {
		if w.MeasuredAt.Equal(day.Time) {
			w := w
			return &w, nil
		}
	}
	return nil, nil
}

func (f *fakeMeasurements) UpdateWeight(w *models.Weight) error {
	for i := range f.weights {
		if f.weights[i].ID == w.ID {
			f.weights[i] = *w
		}
	}
	return nil
}

func (f *fakeMeasurements) DeleteWeight(id int64) (bool, error) {
	for i := range f.weights {
		if f.weights[i].ID == id {
			f.weights = append(f.weights[:i], f.weights[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMeasurements) UpsertHeight(day models.Date, cm float64) (*models.Height, error) {
	for i := range f.heights {
		if f.heights[i].MeasuredAt.Equal(day.Time) {
			f.heights[i].HeightCm = cm
			h := f.heights[i]
			return &h, nil
		}
	}
	f.nextID++
	h := models.Height{ID: f.nextID, MeasuredAt: day, HeightCm: cm}
	f.heights = append(f.heights, h)
	return &h, nil
}

func (f *fakeMeasurements) GetHeight(id int64) (*models.Height, error) {
	for _, h := range f.heights {
		if h.ID == id {
			h := h
			return &h, nil
		}
	}
	return nil, nil
}

func (f *fakeMeasurements) GetHeightByDate(day models.Date) (*models.Height, error) {
	for _, h := range f.heights {
		if h.MeasuredAt.Equal(day.Time) {
			h := h
			return &h, nil
		}
	}
	return nil, nil
}

func (f *fakeMeasurements) UpdateHeight(h *models.Height) error {
	for i := range f.heights {
		if f.heights[i].ID == h.ID {
			f.heights[i] = *h
		}
	}
	return nil
}

func (f *fakeMeasurements) DeleteHeight(id int64) (bool, error) {
	for i := range f.heights {
		if f.heights[i].ID == id {
			f.heights = append(f.heights[:i], f.heights[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeGeneric struct {
	rows []growth.GenericRow
}

func (f fakeGeneric) List() ([]growth.GenericRow, error) {
	return f.rows, nil
}

type fakeRecommender struct {
	rec *PersonalRecommendation
	err error
}

func (f fakeRecommender) ForDate(_ context.Context, day models.Date) (*PersonalRecommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec := *f.rec
	rec.Date = day.String()
	return &rec, nil
}

type fakeConfigStore struct {
	cfg   *models.AppConfig
	saves int
}

func (f *fakeConfigStore) Get() (*models.AppConfig, error) {
	if f.cfg == nil {
		return nil, nil
	}
	cfg := *f.cfg
	cfg.DisabledTypes = append([]string{}, f.cfg.DisabledTypes...)
	return &cfg, nil
}

func (f *fakeConfigStore) Save(cfg *models.AppConfig) error {
	stored := *cfg
	f.cfg = &stored
	f.saves++
	return nil
}

func (f *fakeConfigStore) EnsureDefault(seed *models.AppConfig) (*models.AppConfig, error) {
	if f.cfg == nil {
		if err := f.Save(seed); err != nil {
			return nil, err
		}
	}
	return f.Get()
}

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &sesv2.SendEmailOutput{}, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func mustDate(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
