package delaytable

import "errors"

// ErrMissingKey is returned when a Table is missing one of its six required
// delay keys. Load pre-empts this with schema validation; it is returned
// by FromMap for tables built from a map rather than a file.
var ErrMissingKey = errors.New("delaytable: missing required delay key")
