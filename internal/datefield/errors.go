package datefield

import (
	"errors"

	"github.com/tartampluch/go-dateentry/internal/config"
)

// Configuration errors. They are returned by constructors only; a rejected
// digit is never reported as an error.
var (
	ErrBoundsInverted       = errors.New(config.ErrBoundsInverted)
	ErrInvalidBound         = errors.New(config.ErrInvalidBound)
	ErrPresetOutOfRange     = errors.New(config.ErrPresetOutOfRange)
	ErrNoCompletionHandler  = errors.New(config.ErrNoCompletionHandler)
	ErrInconsistentSnapshot = errors.New(config.ErrInconsistentSnapshot)
	ErrUnknownFormat        = errors.New(config.ErrUnknownFormat)
)
