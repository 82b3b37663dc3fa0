package game

import "errors"

// ErrInvalidConfiguration is returned by Create and Settings.Validate.
var ErrInvalidConfiguration = errors.New("invalid configuration")
