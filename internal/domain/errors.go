package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrEmptyPool      = errors.New("name pool is empty")
	ErrDrawInProgress = errors.New("draw already in progress")
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrNoCredential   = errors.New("no synthesis credential configured")
	ErrNoAudio        = errors.New("response contained no audio payload")
	ErrNotImplemented = errors.New("not implemented")
)
