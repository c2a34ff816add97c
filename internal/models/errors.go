package models

import (
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation error")
	ErrUniqueViolation = errors.New("unique violation")

	ErrSessionClosed = errors.New("classification session already closed")
)
