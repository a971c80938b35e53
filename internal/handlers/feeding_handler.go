package handlers

import (
	"fmt"
	"net/http"
	"time"

	"webbaby/internal/growth"
	"webbaby/internal/models"
	"webbaby/internal/service"
)

const (
	// defaultSummaryDays is the range of the day summary when from is omitted
	defaultSummaryDays = 30
	// maxSummaryDays caps the number of days one summary request may cover
	maxSummaryDays = 366
)

// FeedingHandler serves the milking API: feeds, day summaries, the
// dashboard banner and the feeding recommendations
type FeedingHandler struct {
	feedingService        *service.FeedingService
	recommendationService *service.RecommendationService
	loc                   *time.Location
	now                   func() time.Time
}

// NewFeedingHandler creates a new feeding handler
func NewFeedingHandler(feedingService *service.FeedingService, recommendationService *service.RecommendationService, loc *time.Location) *FeedingHandler {
	if loc == nil {
		loc = time.Local
	}
	return &FeedingHandler{
		feedingService:        feedingService,
		recommendationService: recommendationService,
		loc:                   loc,
		now:                   time.Now,
	}
}

// ListFeeds returns feeds in the optional from/to range, oldest first
func (h *FeedingHandler) ListFeeds(w http.ResponseWriter, r *http.Request) {
	from, err := queryTime(r, "from", h.loc, false)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	to, err := queryTime(r, "to", h.loc, true)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	feeds, err := h.feedingService.List(from, to)
	if err != nil {
		respondServiceError(w, "Error listing feeds", err)
		return
	}
	respondJSON(w, http.StatusOK, feeds)
}

// LastFeed returns the latest feed, or 204 when none has been logged
func (h *FeedingHandler) LastFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feedingService.Last()
	if err != nil {
		respondServiceError(w, "Error loading last feed", err)
		return
	}
	if feed == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, feed)
}

// CreateFeed logs a new feed
func (h *FeedingHandler) CreateFeed(w http.ResponseWriter, r *http.Request) {
	var in service.FeedInput
	if !decodeJSON(w, r, &in) {
		return
	}

	feed, err := h.feedingService.Create(in)
	if err != nil {
		respondServiceError(w, "Error creating feed", err)
		return
	}
	respondJSON(w, http.StatusOK, feed)
}

// UpdateFeed applies a partial update to a feed
func (h *FeedingHandler) UpdateFeed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch service.FeedPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	feed, err := h.feedingService.Update(id, patch)
	if err != nil {
		respondServiceError(w, "Error updating feed", err)
		return
	}
	respondJSON(w, http.StatusOK, feed)
}

// DeleteFeed removes a feed
func (h *FeedingHandler) DeleteFeed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.feedingService.Delete(id); err != nil {
		respondServiceError(w, "Error deleting feed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DaySummaries aggregates feeds per day. Without bounds it covers the last
// 30 days up to today; order=asc lists the oldest day first.
func (h *FeedingHandler) DaySummaries(w http.ResponseWriter, r *http.Request) {
	from, err := queryTime(r, "from", h.loc, false)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	to, err := queryTime(r, "to", h.loc, false)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	if to.IsZero() {
		to = h.now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -(defaultSummaryDays - 1))
	}
	if days := growth.AgeDays(from.In(h.loc), to.In(h.loc)) + 1; days > maxSummaryDays {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("range covers more than %d days", maxSummaryDays), "", nil)
		return
	}

	var descending bool
	switch r.URL.Query().Get("order") {
	case "", "desc":
		descending = true
	case "asc":
		descending = false
	default:
		respondWithError(w, http.StatusBadRequest, "order must be asc or desc", "", nil)
		return
	}

	summaries, err := h.feedingService.DaySummaries(from, to, descending)
	if err != nil {
		respondServiceError(w, "Error building day summaries", err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

// Today returns the dashboard banner
func (h *FeedingHandler) Today(w http.ResponseWriter, r *http.Request) {
	status, err := h.feedingService.Today(r.Context())
	if err != nil {
		respondServiceError(w, "Error building today status", err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// Recommendations returns the generic recommendation table
func (h *FeedingHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.recommendationService.Generic()
	if err != nil {
		respondServiceError(w, "Error loading recommendations", err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// PersonalRecommendation returns the adjusted recommendation for ?date=,
// defaulting to today
func (h *FeedingHandler) PersonalRecommendation(w http.ResponseWriter, r *http.Request) {
	day, err := queryDate(r, "date")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	if day.IsZero() {
		day = models.NewDate(h.now().In(h.loc))
	}

	rec, err := h.recommendationService.ForDate(r.Context(), day)
	if err != nil {
		respondServiceError(w, "Error computing recommendation", err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}
