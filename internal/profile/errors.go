package profile

import "fmt"

// InvalidStructureError is returned when the top-level input cannot be
// treated as a JSON object at all.
type InvalidStructureError struct {
	Message string
	Cause   error
}

func (e *InvalidStructureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid profile structure: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid profile structure: %s", e.Message)
}

func (e *InvalidStructureError) Unwrap() error {
	return e.Cause
}
