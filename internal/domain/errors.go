package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrAccessDenied        = errors.New("forbidden")
	ErrValidation          = errors.New("validation failed")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Specific validation failures; errors.Is(err, ErrValidation) holds for each.
var (
	ErrTimeIncomplete = fmt.Errorf("%w: time incomplete", ErrValidation)
	ErrInvalidBreak   = fmt.Errorf("%w: invalid break", ErrValidation)
	ErrUnknownGroup   = fmt.Errorf("%w: unknown group", ErrValidation)
)
