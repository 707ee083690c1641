package theory

import "fmt"

// InvalidPitchInputError indicates a malformed note name, out-of-range
// integer, or unparseable absolute-pitch token.
type InvalidPitchInputError struct {
	Token  string
	Reason string
}

func (e *InvalidPitchInputError) Error() string {
	return fmt.Sprintf("invalid pitch input %q: %s", e.Token, e.Reason)
}

// InvalidMaskError indicates an empty interval set, an unparseable mask
// string, or a mask missing the root bit where the catalog requires it.
type InvalidMaskError struct {
	Mask   Mask
	Reason string
}

func (e *InvalidMaskError) Error() string {
	return fmt.Sprintf("invalid mask %012b: %s", uint16(e.Mask), e.Reason)
}
