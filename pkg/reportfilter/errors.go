package reportfilter

import "errors"

// ErrNotBoolean is returned when a compiled predicate evaluates to something
// other than a boolean value.
var ErrNotBoolean = errors.New("reportfilter: expression did not evaluate to a boolean")
