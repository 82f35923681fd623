package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrPersistence  = errors.New("persistence failure")
	ErrNoSessions   = errors.New("no sessions recorded")
)
