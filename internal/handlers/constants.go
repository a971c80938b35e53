package handlers

const (
	CSRFHeaderName  = "X-CSRF-Token"
	RequestIDHeader = "X-Request-ID"

	ErrInvalidBody         = "invalid request body"
	ErrInvalidID           = "invalid id"
	ErrNotFound            = "not found"
	ErrUnauthorized        = "unauthorized"
	ErrTooManyRequests     = "too many requests"
	ErrInternalServerError = "internal server error"

	maxBodyBytes = 1 << 20
)
