package forecast

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a contract violation: negative stock, a non-positive
// analysis window, malformed period lists and the like. Insufficient data
// (no usage history, a single comparison period) is never an error; those
// states are expressed through NO_DATA, nil and STABLE sentinels instead.
var ErrInvalidInput = errors.New("invalid input")

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
