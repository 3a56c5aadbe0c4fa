package aerobasic

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/reincas/nanofab/axis"
	"github.com/reincas/nanofab/coord"
)

// API provides the AeroBasic command vocabulary on top of any Sender.
type API struct {
	Sender
}

func New(s Sender) *API { return &API{Sender: s} }

// Move describes a synchronous linear move. Axis values are optional; at
// most one of Feed (independent feed rate, F) and Velocity (dependent
// velocity factor, E) may be set.
type Move struct {
	Target coord.Coordinate

	Feed     *float64
	Velocity *float64
}

func (m Move) command() (string, error) {
	if m.Feed != nil && m.Velocity != nil {
		return "", fmt.Errorf("cannot specify dependent and independent velocity at the same time (E=%v, F=%v)",
			*m.Velocity, *m.Feed)
	}

	var b strings.Builder
	b.WriteString("LINEAR")
	// Axis positions carry 10 decimal digits; the controller parses the
	// text literally.
	for _, ax := range []axis.Axis{axis.X, axis.Y, axis.Z, axis.A, axis.B} {
		if v := m.Target.Get(ax); v != nil {
			fmt.Fprintf(&b, " %s%.10f", ax, *v)
		}
	}
	if m.Feed != nil {
		fmt.Fprintf(&b, " F%f", *m.Feed)
	}
	if m.Velocity != nil {
		fmt.Fprintf(&b, " E%f", *m.Velocity)
	}
	return b.String(), nil
}

// Linear emits an absolute or incremental linear move, depending on the
// active programming mode.
func (a *API) Linear(m Move) (string, error) {
	cmd, err := m.command()
	if err != nil {
		return "", err
	}
	return a.Send(cmd)
}

// Arc describes a circular move between two single same-group axes.
// Exactly one of Radius or the Center1/Center2 offset pair must be set.
type Arc struct {
	Axis1 axis.Axis
	End1  float64
	Axis2 axis.Axis
	End2  float64

	Radius           *float64
	Center1, Center2 *float64

	Velocity *float64
}

func (a Arc) args() (string, error) {
	if !a.Axis1.IsSingle() {
		return "", fmt.Errorf("axis1 has to be a single axis (is %q)", a.Axis1)
	}
	if !a.Axis2.IsSingle() {
		return "", fmt.Errorf("axis2 has to be a single axis (is %q)", a.Axis2)
	}
	if _, err := a.Axis1.Union(a.Axis2); err != nil {
		return "", err
	}
	if (a.Center1 != nil) != (a.Center2 != nil) {
		return "", fmt.Errorf("center offsets must be given as a pair")
	}
	hasCenter := a.Center1 != nil
	if (a.Radius != nil) == hasCenter {
		return "", fmt.Errorf("need either radius or center offsets (got radius=%v, center=%v)",
			a.Radius != nil, hasCenter)
	}

	s := fmt.Sprintf("%s%.10f %s%.10f", a.Axis1, a.End1, a.Axis2, a.End2)
	if a.Radius != nil {
		s += fmt.Sprintf(" R%.10f", *a.Radius)
	} else {
		s += fmt.Sprintf(" I%.10f J%.10f", *a.Center1, *a.Center2)
	}
	if a.Velocity != nil {
		s += " F" + strconv.FormatFloat(*a.Velocity, 'f', -1, 64)
	}
	return s, nil
}

// CW emits a clockwise arc.
func (a *API) CW(arc Arc) (string, error) {
	args, err := arc.args()
	if err != nil {
		return "", err
	}
	return a.Send("CW " + args)
}

// CCW emits a counter-clockwise arc.
func (a *API) CCW(arc Arc) (string, error) {
	args, err := arc.args()
	if err != nil {
		return "", err
	}
	return a.Send("CCW " + args)
}

// Dwell pauses execution for the given duration in seconds. The
// controller limits the duration to below 4.29e6 seconds.
func (a *API) Dwell(seconds float64) (string, error) {
	if seconds <= 0 || seconds >= 4.29e6 {
		return "", fmt.Errorf("dwell duration out of range: %v s", seconds)
	}
	return a.Send(fmt.Sprintf("DWELL %.3f", seconds))
}

func joinAxes(axes []axis.Axis) (string, error) {
	if len(axes) == 0 {
		return "", fmt.Errorf("no axes given")
	}
	parts := make([]string, len(axes))
	for i, ax := range axes {
		if ax == axis.None {
			return "", fmt.Errorf("empty axis set")
		}
		parts[i] = ax.String()
	}
	return strings.Join(parts, " "), nil
}

// Enable enables the given axes. Separate arguments may address both
// axis groups at once.
func (a *API) Enable(axes ...axis.Axis) (string, error) {
	s, err := joinAxes(axes)
	if err != nil {
		return "", err
	}
	return a.Send("ENABLE " + s)
}

// Disable disables the given axes.
func (a *API) Disable(axes ...axis.Axis) (string, error) {
	s, err := joinAxes(axes)
	if err != nil {
		return "", err
	}
	return a.Send("DISABLE " + s)
}

// Abort aborts all movement on the given axes.
func (a *API) Abort(axes ...axis.Axis) (string, error) {
	s, err := joinAxes(axes)
	if err != nil {
		return "", err
	}
	return a.Send("ABORT " + s)
}

// Home moves the given axes to their home positions.
func (a *API) Home(axes ...axis.Axis) (string, error) {
	s, err := joinAxes(axes)
	if err != nil {
		return "", err
	}
	return a.Send("HOME " + s)
}

// HomeConditional homes the given axes only if they are not homed yet.
func (a *API) HomeConditional(axes ...axis.Axis) (string, error) {
	s, err := joinAxes(axes)
	if err != nil {
		return "", err
	}
	return a.Send("HOME " + s + " CONDITIONAL")
}

// Absolute switches the programming mode to absolute positions.
func (a *API) Absolute() (string, error) { return a.Send("ABSOLUTE") }

// Incremental switches the programming mode to incremental distances.
func (a *API) Incremental() (string, error) { return a.Send("INCREMENTAL") }

// Velocity toggles velocity profiling.
func (a *API) Velocity(on bool) (string, error) {
	if on {
		return a.Send("VELOCITY ON")
	}
	return a.Send("VELOCITY OFF")
}

// SetWaitMode selects the wait mode for motion commands.
func (a *API) SetWaitMode(mode WaitMode) (string, error) {
	return a.Send("WAIT MODE " + string(mode))
}

// AcknowledgeAll acknowledges and accepts all controller errors.
func (a *API) AcknowledgeAll() (string, error) { return a.Send("ACKNOWLEDGEALL") }

// ErrorDecode resolves a task error code and location into readable text.
func (a *API) ErrorDecode(code, location int) (string, error) {
	return a.Send(fmt.Sprintf("ERRORDECODE %d, %d", code, location))
}

// AxisStatus queries a status data item for a single axis and returns the
// raw textual payload.
func (a *API) AxisStatus(ax axis.Axis, item DataItem) (string, error) {
	if !ax.IsSingle() {
		return "", fmt.Errorf("axis status needs a single axis (is %q)", ax)
	}
	return a.Send(fmt.Sprintf("AXISSTATUS(%s, %s)", ax, item.Param()))
}

// TaskStatus queries a status data item for a task slot and returns the
// raw textual payload.
func (a *API) TaskStatus(slot int, item DataItem) (string, error) {
	return a.Send(fmt.Sprintf("TASKSTATUS(%d, %s)", slot, item.Param()))
}

// SystemStatus queries a system-wide status data item.
func (a *API) SystemStatus(item DataItem) (string, error) {
	return a.Send(fmt.Sprintf("SYSTEMSTATUS(%s)", item.Param()))
}

// ProgramLoad associates the program file at path with a task slot. The
// path is sent in absolute form since the controller resolves it itself.
func (a *API) ProgramLoad(slot int, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return a.Send(fmt.Sprintf("PROGRAM %d LOAD %q", slot, abs))
}

// ProgramStart starts the program loaded in a task slot.
func (a *API) ProgramStart(slot int) (string, error) {
	return a.Send(fmt.Sprintf("PROGRAM %d START", slot))
}

// ProgramStop stops the program running in a task slot.
func (a *API) ProgramStop(slot int) (string, error) {
	return a.Send(fmt.Sprintf("PROGRAM %d STOP", slot))
}

// GalvoLaserOverride forces the scanner laser output on or off. Only the
// galvo axes accept the command.
func (a *API) GalvoLaserOverride(ax axis.Axis, on bool) (string, error) {
	if !ax.IsSingle() || !axis.Scanner.Contains(ax) {
		return "", fmt.Errorf("laser override needs a single scanner axis (is %q)", ax)
	}
	state := "OFF"
	if on {
		state = "ON"
	}
	return a.Send(fmt.Sprintf("GALVO LASEROVERRIDE %s %s", ax, state))
}

// IFOVTime configures the Infinite Field of View look-ahead search time
// in milliseconds. The controller requires a multiple of 5 ms.
func (a *API) IFOVTime(ms int) (string, error) {
	if ms%5 != 0 {
		return "", fmt.Errorf("IFOV search time must be divisible by 5 ms (is %d)", ms)
	}
	return a.Send(fmt.Sprintf("IFOV TIME %d", ms))
}

// Run forwards every line of a program through the sender.
func (a *API) Run(p *Program) error {
	for _, line := range p.lines {
		if _, err := a.Send(line); err != nil {
			return err
		}
	}
	return nil
}

// RunText forwards every newline-separated line of raw program text.
func (a *API) RunText(text string) error {
	for _, line := range strings.Split(text, "\n") {
		if _, err := a.Send(line); err != nil {
			return err
		}
	}
	return nil
}
