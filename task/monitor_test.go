package task

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeController answers status polls with a scripted state sequence; the
// last state sticks.
type fakeController struct {
	commands []string
	states   []State
	mode     Mode
	line     int

	errFields string
	decoded   string
}

func (f *fakeController) Send(cmd string) (string, error) {
	f.commands = append(f.commands, cmd)
	switch {
	case strings.Contains(cmd, "TaskErrorCode"):
		return f.errFields, nil
	case strings.HasPrefix(cmd, "~STATUS"):
		state := f.states[0]
		if len(f.states) > 1 {
			f.states = f.states[1:]
		}
		return fmt.Sprintf("%d %d 0 0 0 %d", f.mode, state, f.line), nil
	case strings.HasPrefix(cmd, "ERRORDECODE"):
		return f.decoded, nil
	}
	return "", nil
}

var fastPoll = PollConfig{
	Interval:     time.Millisecond,
	LoadTimeout:  50 * time.Millisecond,
	StartTimeout: 50 * time.Millisecond,
}

func TestNewMonitorSlotRange(t *testing.T) {
	f := &fakeController{states: []State{Idle}}

	_, err := NewMonitor(f, 0, fastPoll)
	assert.Error(t, err)
	_, err = NewMonitor(f, 33, fastPoll)
	assert.Error(t, err)

	m, err := NewMonitor(f, 32, fastPoll)
	assert.NoError(t, err)
	assert.Equal(t, 32, m.Slot())
}

func TestMonitorSync(t *testing.T) {
	f := &fakeController{states: []State{ProgramRunning}, mode: Mode(ModeAbsolute | ModeWaitAuto), line: 17}
	m, err := NewMonitor(f, 2, fastPoll)
	assert.NoError(t, err)

	state, err := m.State()
	assert.NoError(t, err)
	assert.Equal(t, ProgramRunning, state)

	mode, err := m.Mode()
	assert.NoError(t, err)
	assert.True(t, mode.Has(ModeAbsolute))
	assert.Equal(t, "AUTO", mode.WaitMode())

	line, err := m.Line()
	assert.NoError(t, err)
	assert.Equal(t, 17, line)

	// one lazy sync serves all accessors
	assert.Len(t, f.commands, 1)
	assert.Equal(t,
		"~STATUS (2, TaskMode) (2, TaskState) (2, TaskStatus0) (2, TaskStatus1) (2, TaskStatus2) (2, ProgramLineNumber)",
		f.commands[0])
}

func TestMonitorLoad(t *testing.T) {
	f := &fakeController{states: []State{Idle, Idle, ProgramReady}}
	m, err := NewMonitor(f, 2, fastPoll)
	assert.NoError(t, err)

	assert.NoError(t, m.Load("/programs/job.pgm"))
	assert.Equal(t, `PROGRAM 2 LOAD "/programs/job.pgm"`, f.commands[0])
	// polled until the ready state appeared
	assert.Len(t, f.commands, 4)
}

func TestMonitorLoadTimeout(t *testing.T) {
	f := &fakeController{states: []State{Idle}}
	m, err := NewMonitor(f, 2, fastPoll)
	assert.NoError(t, err)

	err = m.Load("/programs/job.pgm")
	assert.Error(t, err)
}

func TestMonitorStart(t *testing.T) {
	f := &fakeController{states: []State{ProgramReady, ProgramRunning}}
	m, err := NewMonitor(f, 2, fastPoll)
	assert.NoError(t, err)

	assert.NoError(t, m.Start())
	assert.Equal(t, "PROGRAM 2 START", f.commands[0])
}

func TestMonitorStartShortProgram(t *testing.T) {
	// a short program may be complete before the first poll
	f := &fakeController{states: []State{ProgramComplete}}
	m, err := NewMonitor(f, 2, fastPoll)
	assert.NoError(t, err)

	assert.NoError(t, m.Start())
}

func TestMonitorStop(t *testing.T) {
	f := &fakeController{states: []State{ProgramRunning}}
	m, err := NewMonitor(f, 2, fastPoll)
	assert.NoError(t, err)

	assert.NoError(t, m.Stop())
	assert.Equal(t, "PROGRAM 2 STOP", f.commands[0])
}

func TestMonitorWaitToFinish(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.pgm")
	assert.NoError(t, os.WriteFile(path, []byte("ENABLE X\nHOME X\nEND PROGRAM\n"), 0644))

	f := &fakeController{states: []State{
		ProgramReady,
		ProgramRunning, ProgramRunning, ProgramComplete,
	}, line: 1}
	m, err := NewMonitor(f, 2, fastPoll)
	assert.NoError(t, err)

	var progress []Progress
	m.OnProgress = func(p Progress) { progress = append(progress, p) }

	assert.NoError(t, m.Load(path))
	assert.NoError(t, m.WaitToFinish(context.Background()))

	assert.NotEmpty(t, progress)
	last := progress[len(progress)-1]
	assert.Equal(t, ProgramComplete, last.State)
	// on completion the line snaps to the program length
	assert.Equal(t, 3, last.Total)
	assert.Equal(t, 3, last.Line)
}

func TestMonitorWaitToFinishError(t *testing.T) {
	f := &fakeController{
		states:    []State{ProgramRunning, Error},
		errFields: "17 3",
		decoded:   "Velocity error on axis X",
	}
	m, err := NewMonitor(f, 2, fastPoll)
	assert.NoError(t, err)

	err = m.WaitToFinish(context.Background())
	assert.Error(t, err)

	execErr, ok := err.(*ExecutionError)
	assert.True(t, ok)
	assert.Equal(t, 2, execErr.Task)
	assert.Equal(t, 17, execErr.Code)
	assert.Equal(t, 3, execErr.Location)
	assert.Equal(t, "Velocity error on axis X", execErr.Diagnostic)
	assert.Contains(t, f.commands, "ERRORDECODE 17, 3")
}

func TestMonitorWaitToFinishUnexpectedState(t *testing.T) {
	f := &fakeController{states: []State{ProgramRunning, Inactive}}
	m, err := NewMonitor(f, 2, fastPoll)
	assert.NoError(t, err)

	err = m.WaitToFinish(context.Background())
	assert.Error(t, err)
	_, isExec := err.(*ExecutionError)
	assert.False(t, isExec)
}

func TestMonitorWaitToFinishContext(t *testing.T) {
	f := &fakeController{states: []State{ProgramRunning}}
	m, err := NewMonitor(f, 2, fastPoll)
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err = m.WaitToFinish(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "program running", ProgramRunning.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.True(t, ProgramPaused.Running())
	assert.False(t, Idle.Running())
}
