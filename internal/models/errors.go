package models

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrUnknownCapability = errors.New("unknown capability")
)
