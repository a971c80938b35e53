package handlers

import (
	"errors"
	"net/http"

	"webbaby/internal/security"
	"webbaby/internal/service"
)

// AuthHandler issues and revokes API tokens
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type tokenRequest struct {
	Password string `json:"password"`
}

// Token exchanges the household password for a bearer token. The token is
// also set as an HttpOnly cookie for the browser client, which then sends
// the returned CSRF token in the X-CSRF-Token header.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.authService.Login(req.Password)
	switch {
	case errors.Is(err, service.ErrAuthDisabled):
		respondWithError(w, http.StatusNotFound, err.Error(), "", nil)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, err.Error(), "", nil)
		return
	case err != nil:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error issuing token", err)
		return
	}

	http.SetCookie(w, security.CreateTokenCookie(r, result.Token, result.ExpiresAt))
	respondJSON(w, http.StatusOK, result)
}

// Logout clears the token cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.CreateDeleteCookie(r))
	w.WriteHeader(http.StatusNoContent)
}
