package task

import "fmt"

// ExecutionError reports a program that ended in the error state. Code and
// Location identify the controller error; Diagnostic is the decoded text
// when it could be retrieved.
type ExecutionError struct {
	Task       int
	Code       int
	Location   int
	Diagnostic string
}

func (e *ExecutionError) Error() string {
	if e.Diagnostic == "" {
		return fmt.Sprintf("task %d failed with error %d at location %d", e.Task, e.Code, e.Location)
	}
	return fmt.Sprintf("task %d failed with error %d at location %d: %s",
		e.Task, e.Code, e.Location, e.Diagnostic)
}
