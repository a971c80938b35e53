package handlers

import (
	"net/http"

	"webbaby/internal/service"
)

// ConfigHandler serves the household settings
type ConfigHandler struct {
	profileService *service.ProfileService
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(profileService *service.ProfileService) *ConfigHandler {
	return &ConfigHandler{profileService: profileService}
}

// GetConfig returns the settings row, creating it on first use
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.profileService.Get()
	if err != nil {
		respondServiceError(w, "Error loading config", err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

// UpdateConfig applies a settings change
func (h *ConfigHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var in service.ConfigUpdate
	if !decodeJSON(w, r, &in) {
		return
	}

	cfg, err := h.profileService.Update(in)
	if err != nil {
		respondServiceError(w, "Error updating config", err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}
