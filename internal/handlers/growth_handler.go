package handlers

import (
	"net/http"
	"strconv"

	"webbaby/internal/service"
)

// GrowthHandler serves weight and height records, their charts and the
// percentile lookup
type GrowthHandler struct {
	growthService *service.GrowthService
}

// NewGrowthHandler creates a new growth handler
func NewGrowthHandler(growthService *service.GrowthService) *GrowthHandler {
	return &GrowthHandler{growthService: growthService}
}

// ListWeights returns weight records in the optional date range, newest first
func (h *GrowthHandler) ListWeights(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "from")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	weights, err := h.growthService.ListWeights(from, to)
	if err != nil {
		respondServiceError(w, "Error listing weights", err)
		return
	}
	respondJSON(w, http.StatusOK, weights)
}

// SaveWeight records the weight of a day, replacing an existing record
func (h *GrowthHandler) SaveWeight(w http.ResponseWriter, r *http.Request) {
	var in service.WeightInput
	if !decodeJSON(w, r, &in) {
		return
	}

	weight, err := h.growthService.SaveWeight(in)
	if err != nil {
		respondServiceError(w, "Error saving weight", err)
		return
	}
	respondJSON(w, http.StatusOK, weight)
}

// UpdateWeight changes the date or value of a weight record
func (h *GrowthHandler) UpdateWeight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in service.WeightInput
	if !decodeJSON(w, r, &in) {
		return
	}

	weight, err := h.growthService.UpdateWeight(id, in)
	if err != nil {
		respondServiceError(w, "Error updating weight", err)
		return
	}
	respondJSON(w, http.StatusOK, weight)
}

// DeleteWeight removes a weight record
func (h *GrowthHandler) DeleteWeight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.growthService.DeleteWeight(id); err != nil {
		respondServiceError(w, "Error deleting weight", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// WeightChart returns the weight series against the expected curve
func (h *GrowthHandler) WeightChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.growthService.WeightChart()
	if err != nil {
		respondServiceError(w, "Error building weight chart", err)
		return
	}
	respondJSON(w, http.StatusOK, chart)
}

// ListHeights returns height records in the optional date range, newest first
func (h *GrowthHandler) ListHeights(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "from")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	heights, err := h.growthService.ListHeights(from, to)
	if err != nil {
		respondServiceError(w, "Error listing heights", err)
		return
	}
	respondJSON(w, http.StatusOK, heights)
}

// SaveHeight records the height of a day, replacing an existing record
func (h *GrowthHandler) SaveHeight(w http.ResponseWriter, r *http.Request) {
	var in service.HeightInput
	if !decodeJSON(w, r, &in) {
		return
	}

	height, err := h.growthService.SaveHeight(in)
	if err != nil {
		respondServiceError(w, "Error saving height", err)
		return
	}
	respondJSON(w, http.StatusOK, height)
}

// UpdateHeight changes the date or value of a height record
func (h *GrowthHandler) UpdateHeight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in service.HeightInput
	if !decodeJSON(w, r, &in) {
		return
	}

	height, err := h.growthService.UpdateHeight(id, in)
	if err != nil {
		respondServiceError(w, "Error updating height", err)
		return
	}
	respondJSON(w, http.StatusOK, height)
}

// DeleteHeight removes a height record
func (h *GrowthHandler) DeleteHeight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.growthService.DeleteHeight(id); err != nil {
		respondServiceError(w, "Error deleting height", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HeightChart returns the height series with its tolerance band
func (h *GrowthHandler) HeightChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.growthService.HeightChart()
	if err != nil {
		respondServiceError(w, "Error building height chart", err)
		return
	}
	respondJSON(w, http.StatusOK, chart)
}

// Percentile looks up ?curve=weight|length&date=YYYY-MM-DD&value=. Weight
// values are grams, lengths centimetres.
func (h *GrowthHandler) Percentile(w http.ResponseWriter, r *http.Request) {
	day, err := queryDate(r, "date")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	value, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "value must be a number", "", nil)
		return
	}

	result, err := h.growthService.Percentile(r.URL.Query().Get("curve"), day, value)
	if err != nil {
		respondServiceError(w, "Error computing percentile", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
