package question

import "errors"

// ErrUnknownCategory is returned for categories outside the supported set.
var ErrUnknownCategory = errors.New("unknown question category")
