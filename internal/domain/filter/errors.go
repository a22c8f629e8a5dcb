package filter

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidRange = errors.New("invalid date range: start after end")
)
