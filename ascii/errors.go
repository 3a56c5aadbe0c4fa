package ascii

import "fmt"

// Return codes of the ASCII command interface. The first byte of every
// response is one of these.
const (
	Success byte = '%'
	Invalid byte = '!'
	Fault   byte = '#'
)

// InvalidError reports a command the controller rejected as syntactically
// invalid. Retrying the identical command cannot succeed.
type InvalidError struct {
	Command string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("command %q has an invalid syntax", e.Command)
}

// FaultError reports a command that parsed but failed during execution.
// Diagnostic carries the controller's last error text when it could be
// retrieved.
type FaultError struct {
	Command    string
	Diagnostic string
}

func (e *FaultError) Error() string {
	if e.Diagnostic == "" {
		return fmt.Sprintf("execution failed for %q", e.Command)
	}
	return fmt.Sprintf("execution failed for %q: %s", e.Command, e.Diagnostic)
}
