// Package ascii speaks the ASCII command interface of the A3200 controller:
// newline-terminated command lines answered by a one-byte return code plus
// an optional payload.
package ascii

import (
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"time"
)

const (
	// terminator closes every command line on the wire.
	terminator = '\n'
	// readBufferSize bounds a single controller response.
	readBufferSize = 4096
)

// Client is a connection to the controller's ASCII command interface. It
// implements aerobasic.Sender. A Client is not safe for concurrent use.
type Client struct {
	conn io.ReadWriteCloser
	buf  []byte

	history []*Exchange

	// fetchingDiag guards the ~LASTERROR lookup after a fault so a
	// failing diagnostic cannot recurse.
	fetchingDiag bool

	version *Version
	closed  bool

	// Logger, when set, receives one line per exchange.
	Logger *log.Logger
}

// Dial connects to the ASCII interface over TCP, typically port 8000.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect to controller at %s: %w", addr, err)
	}
	return NewClient(conn), nil
}

// NewClient wraps an established connection.
func NewClient(conn io.ReadWriteCloser) *Client {
	return &Client{
		conn: conn,
		buf:  make([]byte, readBufferSize),
	}
}

// Close closes the underlying connection. It is safe to call twice.
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

// History returns all exchanges performed so far, oldest first.
func (c *Client) History() []*Exchange {
	return append([]*Exchange(nil), c.history...)
}

// Send transmits one command line and returns the response payload. A '!'
// return code yields an *InvalidError, a '#' code a *FaultError carrying
// the controller's last error text.
func (c *Client) Send(command string) (string, error) {
	if c.closed {
		return "", fmt.Errorf("connection is closed")
	}
	command = strings.TrimSuffix(command, string(terminator))

	ex := &Exchange{Command: command, SentAt: time.Now()}
	c.history = append(c.history, ex)

	if _, err := c.conn.Write(append([]byte(command), terminator)); err != nil {
		return "", fmt.Errorf("send %q: %w", command, err)
	}

	n, err := c.conn.Read(c.buf)
	if err != nil {
		return "", fmt.Errorf("read response for %q: %w", command, err)
	}
	ex.ReceivedAt = time.Now()

	resp := strings.TrimSpace(string(c.buf[:n]))
	if resp == "" {
		return "", fmt.Errorf("empty response for %q", command)
	}
	ex.Code = resp[0]
	ex.Data = resp[1:]

	switch ex.Code {
	case Success:
		c.logf("%s", ex)
		return ex.Data, nil
	case Invalid:
		c.logf("%s", ex)
		return "", &InvalidError{Command: command}
	case Fault:
		if !c.fetchingDiag {
			if diag, err := c.LastError(); err == nil {
				ex.Diagnostic = diag
			}
		}
		c.logf("%s", ex)
		return "", &FaultError{Command: command, Diagnostic: ex.Diagnostic}
	}
	return "", fmt.Errorf("unknown return code %q in response %q", ex.Code, resp)
}

func (c *Client) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}

// LastError retrieves the controller's most recent error text.
func (c *Client) LastError() (string, error) {
	c.fetchingDiag = true
	defer func() { c.fetchingDiag = false }()
	return c.Send("~LASTERROR")
}

// Version retrieves the controller software version. The result is cached
// for the lifetime of the connection.
func (c *Client) Version() (Version, error) {
	if c.version != nil {
		return *c.version, nil
	}
	resp, err := c.Send("~VERSION")
	if err != nil {
		return Version{}, err
	}
	v, err := ParseVersion(resp)
	if err != nil {
		return Version{}, err
	}
	c.version = &v
	return v, nil
}

// ResetController resets the controller. The interface does not respond
// until the reset completes.
func (c *Client) ResetController() error {
	_, err := c.Send("~RESETCONTROLLER")
	return err
}

// SelectTask changes the task on which subsequent controller commands of
// this client execute.
func (c *Client) SelectTask(slot int) error {
	_, err := c.Send(fmt.Sprintf("~TASK %d", slot))
	return err
}

// StopTask stops a task and resets its state. A slot of 0 stops the
// client's current task.
func (c *Client) StopTask(slot int) error {
	if slot == 0 {
		_, err := c.Send("~STOPTASK")
		return err
	}
	_, err := c.Send(fmt.Sprintf("~STOPTASK %d", slot))
	return err
}
