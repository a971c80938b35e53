package service

import (
	"fmt"
	"time"

	"webbaby/internal/security"
	"webbaby/internal/validation"
)

// TokenResult is returned by a successful login
type TokenResult struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	CSRFToken string    `json:"csrfToken"`
}

// AuthService guards write access with the household password. It is
// disabled when no password hash or token secret is configured.
type AuthService struct {
	passwordHash string
	tokens       *security.TokenIssuer
	csrf         *security.CSRFGenerator
	enabled      bool
}

// NewAuthService creates a new auth service
func NewAuthService(passwordHash, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		passwordHash: passwordHash,
		tokens:       security.NewTokenIssuer(secret, tokenTTL),
		csrf:         security.NewCSRFGenerator(secret),
		enabled:      passwordHash != "" && secret != "",
	}
}

// Enabled reports whether write routes require a token
func (s *AuthService) Enabled() bool {
	return s.enabled
}

// Login checks the password and issues a new token
func (s *AuthService) Login(password string) (*TokenResult, error) {
	if !s.enabled {
		return nil, ErrAuthDisabled
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !security.CheckPassword(password, s.passwordHash) {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue()
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	csrfToken, err := s.csrf.GenerateToken(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSRF token: %w", err)
	}

	return &TokenResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: claims.ExpiresAt.Time,
		CSRFToken: csrfToken,
	}, nil
}

// Authenticate verifies a token and returns its claims
func (s *AuthService) Authenticate(token string) (*security.Claims, error) {
	if !s.enabled {
		return nil, ErrAuthDisabled
	}
	return s.tokens.Verify(token)
}

// ValidateCSRF checks the CSRF token sent with a cookie-authenticated request
func (s *AuthService) ValidateCSRF(claims *security.Claims, token string) bool {
	if claims == nil {
		return false
	}
	return s.csrf.ValidateToken(claims.ID, token)
}
