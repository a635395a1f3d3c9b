package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/planetgame/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeAlreadyStarted   = "ALREADY_STARTED"
	CodeNotStarted       = "NOT_STARTED"
	CodeGameFull         = "GAME_FULL"
	CodeInvalidShipCount = "INVALID_SHIP_COUNT"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodePlanetNotFound   = "PLANET_NOT_FOUND"
	CodeNotOwner         = "NOT_OWNER"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// StatusForKind maps an error kind to its HTTP status
func StatusForKind(kind model.ErrorKind) int {
	switch kind {
	case model.KindAlreadyStarted:
		return http.StatusPaymentRequired
	case model.KindUnauthorized, model.KindNotOwner:
		return http.StatusForbidden
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	status := StatusForKind(model.KindOf(err))

	switch {
	case errors.Is(err, model.ErrGameAlreadyStarted):
		return &httpError{status, APIError{CodeAlreadyStarted, "Game already started"}}
	case errors.Is(err, model.ErrGameNotStarted):
		return &httpError{status, APIError{CodeNotStarted, "Game has not started"}}
	case errors.Is(err, model.ErrGameFull):
		return &httpError{status, APIError{CodeGameFull, "Game is full"}}
	case errors.Is(err, model.ErrUnauthorized):
		return &httpError{status, APIError{CodeUnauthorized, "Sorry, wrong password or not logged in"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{status, APIError{CodePlayerNotFound, "Player has not joined the game"}}
	case errors.Is(err, model.ErrPlanetNotFound):
		return &httpError{status, APIError{CodePlanetNotFound, "Planet not found"}}
	case errors.Is(err, model.ErrNotOwner):
		return &httpError{status, APIError{CodeNotOwner, "You do not own that planet"}}
	case errors.Is(err, model.ErrInvalidShipCount):
		return &httpError{status, APIError{CodeInvalidShipCount, "Ship count must not be negative"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusForbidden, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewRateLimitedError creates a too-many-requests error
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimited, "Rate limit exceeded"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
