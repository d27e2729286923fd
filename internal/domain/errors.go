package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database or session store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. too few selections, age out of bounds, missing location).
// The wrapped message is the user-facing remediation.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrTransport is returned when an external collaborator (the directory search
// endpoint or the account subsystem) is unreachable or fails.
// It is always retryable; no local state is changed when it is returned.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrTransport = errors.New("upstream unavailable")

// ValidationMessage extracts the user-facing remediation from an error that
// wraps ErrValidation, dropping any "pkg.Type.Method: " prefixes.
// "service.PlanService.Create: validation error: destination is required"
// becomes "destination is required".
func ValidationMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
