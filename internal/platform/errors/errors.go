package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrInvalidDuration = errors.New("duration must be at least one second")
	ErrTimerRunning    = errors.New("timer is running")
	ErrInvalidState    = errors.New("invalid countdown state")
)
