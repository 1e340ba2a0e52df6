package plugin

import "errors"

// ErrNoValue reports that an optional plugin produced no value for the host.
// It is the error form of the optional-result strategy's absence signal, used
// when an OptionalPlugin is lifted into a Plugin via FromOptional.
var ErrNoValue = errors.New("plugin: no value")
