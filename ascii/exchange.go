package ascii

import (
	"fmt"
	"time"
)

// Exchange records one command/response round trip.
type Exchange struct {
	Command    string
	Code       byte
	Data       string
	Diagnostic string

	SentAt     time.Time
	ReceivedAt time.Time
}

// Latency is the round-trip time of the exchange.
func (e *Exchange) Latency() time.Duration {
	return e.ReceivedAt.Sub(e.SentAt)
}

func (e *Exchange) String() string {
	name := "UNKNOWN"
	switch e.Code {
	case Success:
		name = "SUCCESS"
	case Invalid:
		name = "INVALID"
	case Fault:
		name = "FAULT"
	case 0:
		name = "PENDING"
	}
	if e.Diagnostic != "" {
		return fmt.Sprintf("[%s] %q -> %q (%s) ping=%s", name, e.Command, e.Data, e.Diagnostic, e.Latency())
	}
	return fmt.Sprintf("[%s] %q -> %q ping=%s", name, e.Command, e.Data, e.Latency())
}
