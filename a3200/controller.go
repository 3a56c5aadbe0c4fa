// Package a3200 is the high-level facade over one controller connection:
// initialization, axis management, position readout and program execution
// in task slots.
package a3200

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/reincas/nanofab/aerobasic"
	"github.com/reincas/nanofab/ascii"
	"github.com/reincas/nanofab/axis"
	"github.com/reincas/nanofab/coord"
	"github.com/reincas/nanofab/task"
)

// Conn is the controller connection the facade drives. ascii.Client
// implements it for live controllers, ascii.Offline for dry runs.
type Conn interface {
	aerobasic.Sender
	Close() error
}

// Controller wraps a connection with tracked axis state and task slots.
type Controller struct {
	conn Conn
	api  *aerobasic.API
	poll task.PollConfig

	enabled axis.Axis
	tasks   map[int]*task.Monitor
	version *ascii.Version
}

func New(conn Conn, poll task.PollConfig) *Controller {
	return &Controller{
		conn:  conn,
		api:   aerobasic.New(conn),
		poll:  poll,
		tasks: make(map[int]*task.Monitor),
	}
}

// API exposes the raw command vocabulary of the connection.
func (c *Controller) API() *aerobasic.API { return c.api }

func (c *Controller) Close() error { return c.conn.Close() }

// Initialize sets the standard motion defaults: absolute programming,
// velocity profiling on and automatic wait mode.
func (c *Controller) Initialize() error {
	if _, err := c.api.Absolute(); err != nil {
		return err
	}
	if _, err := c.api.Velocity(true); err != nil {
		return err
	}
	if _, err := c.api.SetWaitMode(aerobasic.WaitAuto); err != nil {
		return err
	}
	return nil
}

// EnableAxes enables axes and records them as enabled.
func (c *Controller) EnableAxes(axes ...axis.Axis) error {
	if _, err := c.api.Enable(axes...); err != nil {
		return err
	}
	for _, ax := range axes {
		c.enabled |= ax
	}
	return nil
}

// DisableAxes disables axes and clears them from the enabled set.
func (c *Controller) DisableAxes(axes ...axis.Axis) error {
	if _, err := c.api.Disable(axes...); err != nil {
		return err
	}
	for _, ax := range axes {
		c.enabled &^= ax
	}
	return nil
}

// EnabledAxes returns the axes enabled through this controller.
func (c *Controller) EnabledAxes() axis.Axis { return c.enabled }

// Home runs the homing sequence. Y moves clear of the sample holder before
// X homes, so the stage cannot collide with mounted optics.
func (c *Controller) Home() error {
	if _, err := c.api.Home(axis.Y, axis.Z, axis.A, axis.B); err != nil {
		return err
	}
	if _, err := c.api.Linear(aerobasic.Move{Target: coord.Only(axis.Y, 80)}); err != nil {
		return err
	}
	if _, err := c.api.Home(axis.X); err != nil {
		return err
	}
	if _, err := c.api.Linear(aerobasic.Move{Target: coord.Only(axis.Y, 0)}); err != nil {
		return err
	}
	return nil
}

// parseFloat accepts the controller's locale-dependent decimal comma.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// Position reads the stage position feedback in one round trip.
func (c *Controller) Position() (coord.Point, error) {
	fields, err := aerobasic.Status(c.conn,
		aerobasic.AxisQuery(axis.X, aerobasic.PositionFeedback),
		aerobasic.AxisQuery(axis.Y, aerobasic.PositionFeedback),
		aerobasic.AxisQuery(axis.Z, aerobasic.PositionFeedback),
	)
	if err != nil {
		return coord.Point{}, err
	}
	var p coord.Point
	for i, dst := range []*float64{&p.X, &p.Y, &p.Z} {
		v, err := parseFloat(fields[i])
		if err != nil {
			return coord.Point{}, fmt.Errorf("malformed position %q: %w", fields[i], err)
		}
		*dst = v
	}
	return p, nil
}

// AxisStatuses reads the status word of all five axes in one round trip.
func (c *Controller) AxisStatuses() (map[axis.Axis]AxisStatus, error) {
	axes := []axis.Axis{axis.X, axis.Y, axis.Z, axis.A, axis.B}
	queries := make([]aerobasic.StatusQuery, len(axes))
	for i, ax := range axes {
		queries[i] = aerobasic.AxisQuery(ax, aerobasic.AxisStatusItem)
	}
	fields, err := aerobasic.Status(c.conn, queries...)
	if err != nil {
		return nil, err
	}
	statuses := make(map[axis.Axis]AxisStatus, len(axes))
	for i, ax := range axes {
		v, err := strconv.ParseUint(fields[i], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("malformed axis status %q: %w", fields[i], err)
		}
		statuses[ax] = AxisStatus(v)
	}
	return statuses, nil
}

// AxisFaults reads the fault word of all five axes in one round trip.
func (c *Controller) AxisFaults() (map[axis.Axis]AxisFault, error) {
	axes := []axis.Axis{axis.X, axis.Y, axis.Z, axis.A, axis.B}
	queries := make([]aerobasic.StatusQuery, len(axes))
	for i, ax := range axes {
		queries[i] = aerobasic.AxisQuery(ax, aerobasic.AxisFaultItem)
	}
	fields, err := aerobasic.Status(c.conn, queries...)
	if err != nil {
		return nil, err
	}
	faults := make(map[axis.Axis]AxisFault, len(axes))
	for i, ax := range axes {
		v, err := strconv.ParseUint(fields[i], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("malformed axis fault %q: %w", fields[i], err)
		}
		faults[ax] = AxisFault(v)
	}
	return faults, nil
}

// Version reports the controller software version, cached after the first
// call. It needs an ascii.Client connection.
func (c *Controller) Version() (ascii.Version, error) {
	if c.version != nil {
		return *c.version, nil
	}
	client, ok := c.conn.(*ascii.Client)
	if !ok {
		return ascii.Version{}, fmt.Errorf("version query needs a live connection")
	}
	v, err := client.Version()
	if err != nil {
		return ascii.Version{}, err
	}
	c.version = &v
	return v, nil
}

// SystemTime reads the controller's millisecond timer.
func (c *Controller) SystemTime() (time.Duration, error) {
	resp, err := c.api.SystemStatus(aerobasic.Timer)
	if err != nil {
		return 0, err
	}
	ms, err := parseFloat(resp)
	if err != nil {
		return 0, fmt.Errorf("malformed system timer %q: %w", resp, err)
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

// Task returns the monitor for a slot, creating it on first use.
func (c *Controller) Task(slot int) (*task.Monitor, error) {
	if m, ok := c.tasks[slot]; ok {
		return m, nil
	}
	m, err := task.NewMonitor(c.conn, slot, c.poll)
	if err != nil {
		return nil, err
	}
	c.tasks[slot] = m
	return m, nil
}

// RunProgram writes the program to a temporary .pgm file, loads it into
// the slot and starts it. The caller waits for completion through the
// returned monitor.
func (c *Controller) RunProgram(slot int, p *aerobasic.Program) (*task.Monitor, error) {
	f, err := os.CreateTemp("", "nanofab-*.pgm")
	if err != nil {
		return nil, err
	}
	path, err := filepath.Abs(f.Name())
	if err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.WriteString(p.Text()); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return c.RunFile(slot, path)
}

// RunFile loads the program file into the slot and starts it.
func (c *Controller) RunFile(slot int, path string) (*task.Monitor, error) {
	m, err := c.Task(slot)
	if err != nil {
		return nil, err
	}
	if err := m.Load(path); err != nil {
		return nil, err
	}
	if err := m.Start(); err != nil {
		return nil, err
	}
	return m, nil
}

// RunSynchronous forwards the program line by line over the connection
// instead of downloading it into a task.
func (c *Controller) RunSynchronous(p *aerobasic.Program) error {
	return c.api.Run(p)
}
