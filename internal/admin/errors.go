package admin

import "errors"

// ErrNoSelection rejects a mutation when no inquiry is selected.
var ErrNoSelection = errors.New("no inquiry selected")
