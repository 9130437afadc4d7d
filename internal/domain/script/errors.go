package script

import "errors"

// ErrScriptNotFound indicates the script doesn't exist.
var ErrScriptNotFound = errors.New("script not found")
