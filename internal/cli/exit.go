package cli

import "fmt"

// ExitError asks main to exit with Code instead of the generic failure code.
type ExitError struct {
	Code   int
	Reason string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s (exit code %d)", e.Reason, e.Code)
}
