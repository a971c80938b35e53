package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webbaby/internal/growth"
	"webbaby/internal/models"
)

func testDigest() *Digest {
	sleep := 6.5
	return &Digest{
		Day:       "2024-05-01",
		ChildName: "Ada <Lovelace>",
		Summary: growth.DaySummary{
			Day:          "2024-05-01",
			TotalsByType: map[growth.FeedingType]int{growth.FormulaBottle: 480, growth.Fruit: 40, growth.Porridge: 0},
			FeedCount:    6,
			SleepHours:   &sleep,
		},
		Recommendation: &PersonalRecommendation{
			Generic: &growth.GenericRow{AgeDays: 60, TotalMl: 720, MealsPerDay: 6, PerMealMl: 120},
		},
	}
}

func TestEmailServiceSendDigest(t *testing.T) {
	ses := &fakeSES{}
	s := newEmailServiceWithClient(ses, "noreply@example.com", "Web-Baby", "https://baby.example.com", false)
	require.True(t, s.IsEnabled())

	require.NoError(t, s.SendDigest(context.Background(), "parent@example.com", testDigest()))
	require.Len(t, ses.inputs, 1)

	input := ses.inputs[0]
	assert.Equal(t, "Web-Baby <noreply@example.com>", aws.ToString(input.FromEmailAddress))
	assert.Equal(t, []string{"parent@example.com"}, input.Destination.ToAddresses)
	assert.Equal(t, "Ada <Lovelace>: daily summary for 2024-05-01", aws.ToString(input.Content.Simple.Subject.Data))

	text := aws.ToString(input.Content.Simple.Body.Text.Data)
	assert.Contains(t, text, "Feeds: 6\n")
	assert.Contains(t, text, "Total: 520 ml\n")
	assert.Contains(t, text, "FORMULA_BOTTLE: 480 ml\n")
	assert.NotContains(t, text, "PORRIDGE")
	assert.Contains(t, text, "Longest night sleep: 6.5 h\n")
	assert.Contains(t, text, "Recommended today: 720 ml in 6 meals of 120 ml\n")
	assert.Contains(t, text, "https://baby.example.com")
	assert.Less(t, strings.Index(text, "FORMULA_BOTTLE"), strings.Index(text, "FRUIT"))

	htmlBody := aws.ToString(input.Content.Simple.Body.Html.Data)
	assert.Contains(t, htmlBody, "Ada &lt;Lovelace&gt;")
	assert.NotContains(t, htmlBody, "<Lovelace>")
}

func TestEmailServiceErrors(t *testing.T) {
	ses := &fakeSES{err: errors.New("throttled")}
	s := newEmailServiceWithClient(ses, "noreply@example.com", "", "", false)

	err := s.SendDigest(context.Background(), "parent@example.com", testDigest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestEmailServiceDisabled(t *testing.T) {
	s, err := NewEmailService("us-east-1", "", "", "", false)
	require.NoError(t, err)
	assert.False(t, s.IsEnabled())
	assert.NoError(t, s.SendDigest(context.Background(), "parent@example.com", testDigest()))
}

type fakeSummarizer struct {
	from, to time.Time
	err      error
}

func (f *fakeSummarizer) DaySummaries(from, to time.Time, _ bool) ([]growth.DaySummary, error) {
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	return []growth.DaySummary{{
		Day:          from.Format(models.DateLayout),
		TotalsByType: map[growth.FeedingType]int{growth.BreastDirect: 300},
		FeedCount:    3,
	}}, nil
}

type fakeSender struct {
	enabled bool
	to      string
	sent    []*Digest
}

func (f *fakeSender) IsEnabled() bool { return f.enabled }

func (f *fakeSender) SendDigest(_ context.Context, to string, d *Digest) error {
	f.to = to
	f.sent = append(f.sent, d)
	return nil
}

func TestDigestServiceBuild(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*3600)
	summarizer := &fakeSummarizer{}
	settings := &fakeConfigStore{cfg: &models.AppConfig{ChildName: "Ada", ChildSurname: " "}}
	rec := fakeRecommender{rec: &PersonalRecommendation{Generic: &growth.GenericRow{TotalMl: 700}}}
	sender := &fakeSender{enabled: true}

	s := NewDigestService(summarizer, rec, settings, sender, "parent@example.com", 7, zone)
	require.True(t, s.Enabled())

	// 23:30 UTC on the 1st is already the 2nd in UTC+2
	now := time.Date(2024, time.May, 1, 23, 30, 0, 0, time.UTC)
	digest, err := s.Build(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", digest.Day)
	assert.Equal(t, "Ada", digest.ChildName)
	assert.Equal(t, 3, digest.Summary.FeedCount)
	require.NotNil(t, digest.Recommendation)
	assert.Equal(t, "2024-05-02", digest.Recommendation.Date)
	assert.True(t, summarizer.from.Equal(time.Date(2024, time.May, 1, 0, 0, 0, 0, zone)))

	s.now = fixedClock(now)
	require.NoError(t, s.SendNow(context.Background()))
	assert.Equal(t, "parent@example.com", sender.to)
	assert.Len(t, sender.sent, 1)

	summarizer.err = errors.New("db down")
	assert.Error(t, s.SendNow(context.Background()))
}

func TestDigestServiceEnabled(t *testing.T) {
	summarizer := &fakeSummarizer{}
	settings := &fakeConfigStore{}

	assert.False(t, NewDigestService(summarizer, fakeRecommender{}, settings, &fakeSender{enabled: true}, "", 9, time.UTC).Enabled())
	assert.False(t, NewDigestService(summarizer, fakeRecommender{}, settings, &fakeSender{}, "a@b.c", 9, time.UTC).Enabled())
	assert.False(t, NewDigestService(summarizer, fakeRecommender{}, settings, nil, "a@b.c", 9, time.UTC).Enabled())

	s := NewDigestService(summarizer, fakeRecommender{}, settings, &fakeSender{}, "a@b.c", 42, time.UTC)
	assert.Equal(t, 9, s.hour)
}

func TestNextRun(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*3600)

	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2024, time.May, 1, 6, 15, 0, 0, zone),
			hour: 8,
			want: time.Date(2024, time.May, 1, 8, 0, 0, 0, zone),
		},
		{
			name: "already passed",
			now:  time.Date(2024, time.May, 1, 9, 0, 0, 0, zone),
			hour: 8,
			want: time.Date(2024, time.May, 2, 8, 0, 0, 0, zone),
		},
		{
			name: "exactly on the hour",
			now:  time.Date(2024, time.May, 1, 8, 0, 0, 0, zone),
			hour: 8,
			want: time.Date(2024, time.May, 2, 8, 0, 0, 0, zone),
		},
		{
			name: "month rollover in another zone",
			now:  time.Date(2024, time.June, 1, 2, 0, 0, 0, time.UTC),
			hour: 23,
			want: time.Date(2024, time.May, 31, 23, 0, 0, 0, zone),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextRun(tt.now, tt.hour, zone)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}
