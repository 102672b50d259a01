package quest

import "fmt"

// ValidationError reports malformed or out-of-range user input. It names the
// offending field so callers can show an actionable message. It is never
// partially applied: validation happens before any document is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
