package sim

import "errors"

// ErrInvalidParameter reports an out-of-domain simulation input: non-positive
// theta, J or lambda, negative tau, or a sojourn vector of the wrong length.
// Returned before any random draw is consumed; callers match with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")
