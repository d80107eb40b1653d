package cutter

import "errors"

// ErrNilSource is returned by Cut when given a nil pixel source.
var ErrNilSource = errors.New("cutter: pixel source must not be nil")
