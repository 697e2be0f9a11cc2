package colony

import "fmt"

// CapacityViolationError reports that a program's rule count does not
// match the owning colony's capacity n.
type CapacityViolationError struct {
	Agent        string
	ProgramIndex int
	Got          int
	Want         int
}

func (e *CapacityViolationError) Error() string {
	return fmt.Sprintf(
		"agent %q program %d has %d rules, want %d (capacity n)",
		e.Agent, e.ProgramIndex, e.Got, e.Want,
	)
}

// SelectionInconsistencyError is raised when an
// object that selection found available was missing by the time
// execution reached it, because an earlier agent in the same step
// consumed it first.
type SelectionInconsistencyError struct {
	Agent  string
	Object string
	Where  string // "obj" or the environment the object was expected in
}

func (e *SelectionInconsistencyError) Error() string {
	return fmt.Sprintf(
		"agent %q: object %q expected in %s at execution time but not found",
		e.Agent, e.Object, e.Where,
	)
}
