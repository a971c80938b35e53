package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"webbaby/internal/models"
)

// timestampLayouts are accepted for feed range bounds; values without an
// offset are read in the configured zone
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// pathID parses the {id} path value
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return 0, false
	}
	return id, true
}

// queryDate parses an optional YYYY-MM-DD query parameter; missing values
// return the zero date
func queryDate(r *http.Request, key string) (models.Date, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return models.Date{}, nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// queryTime parses an optional timestamp query parameter. A bare date is the
// start of that day, or its last second when endOfDay is set.
func queryTime(r *http.Request, key string, loc *time.Location, endOfDay bool) (time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return time.Time{}, nil
	}
	if d, err := models.ParseDate(value); err == nil {
		start := d.In(loc)
		if endOfDay {
			return start.AddDate(0, 0, 1).Add(-time.Second), nil
		}
		return start, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: invalid timestamp %q", key, value)
}
