package syntax

import "errors"

// ErrParse is the sentinel wrapped by every pattern rejection, so
// callers can match any parse failure with errors.Is.
var ErrParse = errors.New("invalid pattern")
