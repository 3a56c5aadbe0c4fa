package ascii

import "log"

// Offline is a sender for dry runs: every command is accepted, logged and
// echoed back without touching a controller.
type Offline struct {
	commands []string

	Logger *log.Logger
}

func (o *Offline) Send(command string) (string, error) {
	o.commands = append(o.commands, command)
	if o.Logger != nil {
		o.Logger.Printf("offline: %s", command)
	}
	return command, nil
}

// Commands returns every command sent so far.
func (o *Offline) Commands() []string {
	return append([]string(nil), o.commands...)
}

func (o *Offline) Close() error { return nil }
