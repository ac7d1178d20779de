package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrAlreadyRegistered = errors.New("email already registered")
	ErrNotFound          = errors.New("not found")
)

// Error is a non-2xx backend response.
type Error struct {
	Status int
	// Detail is the server-provided message, if any.
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return "unexpected status " + strconv.Itoa(e.Status)
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrAlreadyRegistered:
		if e.Status == http.StatusConflict {
			return true
		}
		d := strings.ToLower(e.Detail)
		return strings.Contains(d, "already registered") || strings.Contains(d, "already exists")
	}
	return false
}

// Message returns the text to show a user for err, preferring the server's
// detail. fallback is used when the backend gave no detail.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if errors.Is(err, ErrUnavailable) {
		return "Cannot reach the server, check your connection"
	}
	return fallback
}
