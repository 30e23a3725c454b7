package project

import "errors"

// ErrStoreUnavailable indicates the project listing could not be read.
var ErrStoreUnavailable = errors.New("project store unavailable")
