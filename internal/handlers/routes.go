package handlers

import "net/http"

// Handlers bundles everything RegisterRoutes mounts
type Handlers struct {
	Middleware *Middleware
	Feeding    *FeedingHandler
	Growth     *GrowthHandler
	Notes      *NoteHandler
	Teething   *TeethingHandler
	Config     *ConfigHandler
	Auth       *AuthHandler
	Backup     *BackupHandler
	Static     http.Handler
}

// RegisterRoutes mounts the JSON API and the static client on mux. Reads are
// public; writes and the backup download need a token when auth is enabled.
func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	m := h.Middleware

	// Milking
	mux.HandleFunc("GET /api/milking/recommendations", h.Feeding.Recommendations)
	mux.HandleFunc("GET /api/milking/recommendations/personal", h.Feeding.PersonalRecommendation)
	mux.HandleFunc("GET /api/milking/feeds", h.Feeding.ListFeeds)
	mux.HandleFunc("GET /api/milking/feeds/last", h.Feeding.LastFeed)
	mux.HandleFunc("POST /api/milking/feeds", m.RequireToken(h.Feeding.CreateFeed))
	mux.HandleFunc("PUT /api/milking/feeds/{id}", m.RequireToken(h.Feeding.UpdateFeed))
	mux.HandleFunc("DELETE /api/milking/feeds/{id}", m.RequireToken(h.Feeding.DeleteFeed))
	mux.HandleFunc("GET /api/milking/days/summary", h.Feeding.DaySummaries)
	mux.HandleFunc("GET /api/milking/today", h.Feeding.Today)

	// Weight and height
	mux.HandleFunc("GET /api/weight/weights", h.Growth.ListWeights)
	mux.HandleFunc("POST /api/weight/weights", m.RequireToken(h.Growth.SaveWeight))
	mux.HandleFunc("PUT /api/weight/weights/{id}", m.RequireToken(h.Growth.UpdateWeight))
	mux.HandleFunc("DELETE /api/weight/weights/{id}", m.RequireToken(h.Growth.DeleteWeight))
	mux.HandleFunc("GET /api/weight/chart", h.Growth.WeightChart)
	mux.HandleFunc("GET /api/height/heights", h.Growth.ListHeights)
	mux.HandleFunc("POST /api/height/heights", m.RequireToken(h.Growth.SaveHeight))
	mux.HandleFunc("PUT /api/height/heights/{id}", m.RequireToken(h.Growth.UpdateHeight))
	mux.HandleFunc("DELETE /api/height/heights/{id}", m.RequireToken(h.Growth.DeleteHeight))
	mux.HandleFunc("GET /api/height/chart", h.Growth.HeightChart)
	mux.HandleFunc("GET /api/growth/percentile", h.Growth.Percentile)

	// Notes
	mux.HandleFunc("GET /api/notes", h.Notes.ListNotes)
	mux.HandleFunc("POST /api/notes", m.RequireToken(h.Notes.CreateNote))
	mux.HandleFunc("PUT /api/notes/{id}", m.RequireToken(h.Notes.UpdateNote))
	mux.HandleFunc("DELETE /api/notes/{id}", m.RequireToken(h.Notes.DeleteNote))

	// Teething
	mux.HandleFunc("GET /api/teething/teeth", h.Teething.ListTeeth)
	mux.HandleFunc("POST /api/teething/teeth", m.RequireToken(h.Teething.UpsertTooth))
	mux.HandleFunc("PUT /api/teething/teeth/{id}", m.RequireToken(h.Teething.UpdateTooth))
	mux.HandleFunc("DELETE /api/teething/teeth/{id}", m.RequireToken(h.Teething.DeleteTooth))
	mux.HandleFunc("POST /api/teething/teeth/{code}/clear", m.RequireToken(h.Teething.ClearTooth))

	// Settings
	mux.HandleFunc("GET /api/config", h.Config.GetConfig)
	mux.HandleFunc("PUT /api/config", m.RequireToken(h.Config.UpdateConfig))

	// Auth and backup
	mux.HandleFunc("POST /api/auth/token", m.RateLimit(h.Auth.Token))
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.HandleFunc("GET /api/backup/export", m.RequireToken(h.Backup.Export))

	// Static client
	if h.Static != nil {
		mux.Handle("/", h.Static)
	}
}
