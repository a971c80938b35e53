package service

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("a record already exists for that date")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrAuthDisabled       = errors.New("authentication is not configured")
	ErrChecksumMismatch   = errors.New("backup checksum mismatch")
	ErrBirthDateUnknown   = errors.New("birth date is not configured")
)

// startOfDay returns local midnight of t's calendar day in loc
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
