package model

import "errors"

// Common errors used across the application
var (
	// Lobby errors
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrGameNotStarted     = errors.New("game has not started")
	ErrGameFull           = errors.New("game is full")

	// Identity errors
	ErrUnauthorized     = errors.New("unauthorized")
	ErrIdentityNotFound = errors.New("identity not found")
	ErrIdentityExists   = errors.New("identity already exists")

	// Lookup errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlanetNotFound = errors.New("planet not found")

	// Deployment errors
	ErrNotOwner         = errors.New("player does not own planet")
	ErrInvalidShipCount = errors.New("ship count must not be negative")
)

// ErrorKind is the failure class every engine error falls into
type ErrorKind string

const (
	KindAlreadyStarted ErrorKind = "already_started"
	KindUnauthorized   ErrorKind = "unauthorized"
	KindNotFound       ErrorKind = "not_found"
	KindNotOwner       ErrorKind = "not_owner"
	KindValidation     ErrorKind = "validation"
	KindInternal       ErrorKind = "internal"
)

// KindOf classifies an error. Unknown errors are internal.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrGameAlreadyStarted):
		return KindAlreadyStarted
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrPlayerNotFound), errors.Is(err, ErrPlanetNotFound):
		return KindNotFound
	case errors.Is(err, ErrNotOwner):
		return KindNotOwner
	case errors.Is(err, ErrGameFull),
		errors.Is(err, ErrGameNotStarted),
		errors.Is(err, ErrInvalidShipCount):
		return KindValidation
	default:
		return KindInternal
	}
}
