package glimmer

import "fmt"

// CircularDependencyError reports a write that re-triggered a subscriber
// still running on the execution stack. It surfaces from Trigger, and
// therefore from the Signal write that caused the propagation.
type CircularDependencyError struct {
	Target string
	Key    Key
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency: %s.%s written while its subscriber is mid-update", e.Target, e.Key)
}
