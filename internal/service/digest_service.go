package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"webbaby/internal/growth"
	"webbaby/internal/models"
)

// Digest is the content of the daily summary email
type Digest struct {
	Day            string
	ChildName      string
	Summary        growth.DaySummary
	Recommendation *PersonalRecommendation
}

func (d *Digest) displayName() string {
	if d.ChildName == "" {
		return "Web-Baby"
	}
	return d.ChildName
}

// DaySummarizer aggregates feeds per calendar day
type DaySummarizer interface {
	DaySummaries(from, to time.Time, descending bool) ([]growth.DaySummary, error)
}

// SettingsSource returns the household settings
type SettingsSource interface {
	Get() (*models.AppConfig, error)
}

// DigestSender delivers a digest
type DigestSender interface {
	IsEnabled() bool
	SendDigest(ctx context.Context, toEmail string, digest *Digest) error
}

// DigestService builds and sends the summary of the previous day once a day
type DigestService struct {
	summaries   DaySummarizer
	recommender Recommender
	settings    SettingsSource
	sender      DigestSender
	toEmail     string
	hour        int
	loc         *time.Location
	now         func() time.Time
}

// NewDigestService creates a new digest service; hour is the local hour the
// digest is sent at
func NewDigestService(summaries DaySummarizer, recommender Recommender, settings SettingsSource, sender DigestSender, toEmail string, hour int, loc *time.Location) *DigestService {
	if loc == nil {
		loc = time.Local
	}
	if hour < 0 || hour > 23 {
		hour = 9
	}
	return &DigestService{
		summaries:   summaries,
		recommender: recommender,
		settings:    settings,
		sender:      sender,
		toEmail:     toEmail,
		hour:        hour,
		loc:         loc,
		now:         time.Now,
	}
}

// Enabled reports whether there is a recipient and a working sender
func (s *DigestService) Enabled() bool {
	return s.toEmail != "" && s.sender != nil && s.sender.IsEnabled()
}

// Build assembles the digest for the day before now
func (s *DigestService) Build(ctx context.Context, now time.Time) (*Digest, error) {
	today := startOfDay(now, s.loc)
	yesterday := today.AddDate(0, 0, -1)

	summaries, err := s.summaries.DaySummaries(yesterday, yesterday, false)
	if err != nil {
		return nil, err
	}
	if len(summaries) != 1 {
		return nil, fmt.Errorf("expected one summary for %s, got %d", yesterday.Format(models.DateLayout), len(summaries))
	}

	rec, err := s.recommender.ForDate(ctx, models.NewDate(today))
	if err != nil {
		return nil, err
	}

	digest := &Digest{
		Day:            summaries[0].Day,
		Summary:        summaries[0],
		Recommendation: rec,
	}
	if cfg, err := s.settings.Get(); err == nil && cfg != nil {
		digest.ChildName = strings.TrimSpace(cfg.ChildName + " " + cfg.ChildSurname)
	}
	return digest, nil
}

// SendNow builds and sends the digest for the previous day
func (s *DigestService) SendNow(ctx context.Context) error {
	digest, err := s.Build(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to build digest: %w", err)
	}
	return s.sender.SendDigest(ctx, s.toEmail, digest)
}

// Run sends a digest every day at the configured hour until ctx is done
func (s *DigestService) Run(ctx context.Context) {
	if !s.Enabled() {
		log.Println("Daily digest disabled: no recipient or email service")
		return
	}
	log.Printf("Daily digest scheduled at %02d:00 (%s) for %s", s.hour, s.loc, s.toEmail)

	for {
		next := nextRun(s.now(), s.hour, s.loc)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Println("Daily digest stopped")
			return
		case <-timer.C:
			if err := s.SendNow(ctx); err != nil {
				log.Printf("Failed to send daily digest: %v", err)
			}
		}
	}
}

// nextRun returns the first time at hour:00 in loc strictly after now
func nextRun(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, 0, 0, 0, loc)
	}
	return next
}
