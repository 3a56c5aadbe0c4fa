package ascii

import (
	"fmt"

	"github.com/tarm/serial"
)

// DialSerial connects to the ASCII interface over RS-232 instead of TCP.
// The interface speaks the same protocol on both transports.
func DialSerial(port string, baud int) (*Client, error) {
	conn, err := serial.OpenPort(&serial.Config{Name: port, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", port, err)
	}
	return NewClient(conn), nil
}
