package repository

import "errors"

// Sentinel kinds for session store errors.
var (
	ErrNotFound  = errors.New("session not found")
	ErrNoBuilder = errors.New("no dataset builder configured")
)
