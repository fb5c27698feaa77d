package engine

import "errors"

// ErrUnknownRequest is returned when recording an exchange for a name that
// no request in the document has.
var ErrUnknownRequest = errors.New("no request with that name")
