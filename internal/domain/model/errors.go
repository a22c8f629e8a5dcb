package model

import "errors"

// ErrUnknownVendor indicates a request for a vendor outside the roster.
var ErrUnknownVendor = errors.New("unknown vendor")
