package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrValidation = errors.New("invalid submission")
	ErrNoStore    = errors.New("no backing store configured")
)
