package handlers

import (
	"net/http"

	"webbaby/internal/service"
)

// TeethingHandler serves the teething tracker
type TeethingHandler struct {
	teethingService *service.TeethingService
}

// NewTeethingHandler creates a new teething handler
func NewTeethingHandler(teethingService *service.TeethingService) *TeethingHandler {
	return &TeethingHandler{teethingService: teethingService}
}

// ListTeeth returns every recorded tooth ordered by code
func (h *TeethingHandler) ListTeeth(w http.ResponseWriter, r *http.Request) {
	teeth, err := h.teethingService.List()
	if err != nil {
		respondServiceError(w, "Error listing teeth", err)
		return
	}
	respondJSON(w, http.StatusOK, teeth)
}

// UpsertTooth records a tooth by code
func (h *TeethingHandler) UpsertTooth(w http.ResponseWriter, r *http.Request) {
	var in service.ToothInput
	if !decodeJSON(w, r, &in) {
		return
	}

	tooth, err := h.teethingService.Upsert(in)
	if err != nil {
		respondServiceError(w, "Error saving tooth", err)
		return
	}
	respondJSON(w, http.StatusOK, tooth)
}

// UpdateTooth replaces the code and date of a tooth
func (h *TeethingHandler) UpdateTooth(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in service.ToothInput
	if !decodeJSON(w, r, &in) {
		return
	}

	tooth, err := h.teethingService.Update(id, in)
	if err != nil {
		respondServiceError(w, "Error updating tooth", err)
		return
	}
	respondJSON(w, http.StatusOK, tooth)
}

// DeleteTooth removes a tooth
func (h *TeethingHandler) DeleteTooth(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.teethingService.Delete(id); err != nil {
		respondServiceError(w, "Error deleting tooth", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearTooth unsets the appearance date of the tooth named by {code}
func (h *TeethingHandler) ClearTooth(w http.ResponseWriter, r *http.Request) {
	tooth, err := h.teethingService.Clear(r.PathValue("code"))
	if err != nil {
		respondServiceError(w, "Error clearing tooth", err)
		return
	}
	respondJSON(w, http.StatusOK, tooth)
}
