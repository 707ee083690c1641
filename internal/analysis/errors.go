package analysis

import "fmt"

// InvalidChordSpecError reports a chord expression that could not be
// parsed into a usable pitch-class structure.
type InvalidChordSpecError struct {
	Input  string
	Reason string
}

func (e *InvalidChordSpecError) Error() string {
	return fmt.Sprintf("invalid chord spec %q: %s", e.Input, e.Reason)
}
