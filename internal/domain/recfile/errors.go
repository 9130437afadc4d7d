package recfile

import "errors"

// ErrInvalidInput indicates invalid recfile input.
var ErrInvalidInput = errors.New("invalid recfile input")
