package apperrors

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrUnknownGame          = errors.New("unknown game")
	ErrSessionNotFound      = errors.New("session not found")
	ErrGenerationInfeasible = errors.New("difficulty parameters infeasible")
	ErrIllegalTransition    = errors.New("illegal transition")
	ErrJournalNotConfigured = errors.New("run journal is not configured")
)
