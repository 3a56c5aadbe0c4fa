package task

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/reincas/nanofab/aerobasic"
)

// MaxSlots is the number of task slots the controller provides.
const MaxSlots = 32

// PollConfig bounds the polling loops around program load and start.
type PollConfig struct {
	// Interval between status polls.
	Interval time.Duration
	// LoadTimeout bounds the wait for the program-ready state after load.
	LoadTimeout time.Duration
	// StartTimeout bounds the wait for the running state after start.
	StartTimeout time.Duration
}

// DefaultPollConfig matches the controller's usual load and start latency.
var DefaultPollConfig = PollConfig{
	Interval:     100 * time.Millisecond,
	LoadTimeout:  10 * time.Second,
	StartTimeout: 10 * time.Second,
}

func (c PollConfig) withDefaults() PollConfig {
	if c.Interval <= 0 {
		c.Interval = DefaultPollConfig.Interval
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = DefaultPollConfig.LoadTimeout
	}
	if c.StartTimeout <= 0 {
		c.StartTimeout = DefaultPollConfig.StartTimeout
	}
	return c
}

// Progress is a snapshot of a running program, delivered to OnProgress
// during WaitToFinish. Total is zero when the program source was not
// readable locally.
type Progress struct {
	Task  int
	State State
	Line  int
	Total int
}

// Monitor drives one task slot over a live connection.
type Monitor struct {
	conn aerobasic.Sender
	api  *aerobasic.API
	slot int
	poll PollConfig

	sourcePath string
	totalLines int

	mode    Mode
	state   State
	status0 Status0
	status1 Status1
	status2 Status2
	line    int
	synced  bool

	// OnProgress, when set, is called after every poll of WaitToFinish.
	OnProgress func(Progress)
}

// NewMonitor attaches to a task slot in 1..32.
func NewMonitor(conn aerobasic.Sender, slot int, poll PollConfig) (*Monitor, error) {
	if slot < 1 || slot > MaxSlots {
		return nil, fmt.Errorf("task slot %d out of range 1..%d", slot, MaxSlots)
	}
	return &Monitor{
		conn: conn,
		api:  aerobasic.New(conn),
		slot: slot,
		poll: poll.withDefaults(),
	}, nil
}

func (m *Monitor) Slot() int { return m.slot }

// Sync refreshes mode, state, the three status words and the current
// program line in a single ~STATUS round trip.
func (m *Monitor) Sync() error {
	fields, err := aerobasic.Status(m.conn,
		aerobasic.TaskQuery(m.slot, aerobasic.TaskMode),
		aerobasic.TaskQuery(m.slot, aerobasic.TaskState),
		aerobasic.TaskQuery(m.slot, aerobasic.TaskStatus0),
		aerobasic.TaskQuery(m.slot, aerobasic.TaskStatus1),
		aerobasic.TaskQuery(m.slot, aerobasic.TaskStatus2),
		aerobasic.TaskQuery(m.slot, aerobasic.ProgramLineNumber),
	)
	if err != nil {
		return err
	}
	vals := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return fmt.Errorf("malformed status field %q: %w", f, err)
		}
		vals[i] = v
	}
	m.mode = Mode(vals[0])
	m.state = State(vals[1])
	m.status0 = Status0(vals[2])
	m.status1 = Status1(vals[3])
	m.status2 = Status2(vals[4])
	m.line = int(vals[5])
	m.synced = true
	return nil
}

func (m *Monitor) ensureSynced() error {
	if m.synced {
		return nil
	}
	return m.Sync()
}

// State returns the slot's execution state, syncing on first use.
func (m *Monitor) State() (State, error) {
	if err := m.ensureSynced(); err != nil {
		return Unavailable, err
	}
	return m.state, nil
}

// Mode returns the task mode flags, syncing on first use.
func (m *Monitor) Mode() (Mode, error) {
	if err := m.ensureSynced(); err != nil {
		return 0, err
	}
	return m.mode, nil
}

// Status returns the three task status flag words, syncing on first use.
func (m *Monitor) Status() (Status0, Status1, Status2, error) {
	if err := m.ensureSynced(); err != nil {
		return 0, 0, 0, err
	}
	return m.status0, m.status1, m.status2, nil
}

// Line returns the current program line, syncing on first use.
func (m *Monitor) Line() (int, error) {
	if err := m.ensureSynced(); err != nil {
		return 0, err
	}
	return m.line, nil
}

func countLines(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	return len(strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"))
}

// Load associates the program file at path with the slot and polls until
// the controller reports it ready. When the file is readable locally its
// line count is recorded for progress reporting.
func (m *Monitor) Load(path string) error {
	if _, err := m.api.ProgramLoad(m.slot, path); err != nil {
		return err
	}
	m.sourcePath = path
	m.totalLines = countLines(path)

	if err := m.pollState(m.poll.LoadTimeout, func(s State) bool {
		return s == ProgramReady || s == ProgramComplete
	}); err != nil {
		return fmt.Errorf("program %s not ready on task %d: %w", path, m.slot, err)
	}
	return nil
}

// Start starts the loaded program and polls until it reports running. A
// short program may already be complete by the first poll; that counts as
// started.
func (m *Monitor) Start() error {
	if _, err := m.api.ProgramStart(m.slot); err != nil {
		return err
	}
	if err := m.pollState(m.poll.StartTimeout, func(s State) bool {
		return s.Running() || s == ProgramComplete || s == Error
	}); err != nil {
		return fmt.Errorf("program did not start on task %d: %w", m.slot, err)
	}
	if m.state == Error {
		return m.executionError()
	}
	return nil
}

// Stop stops the program running in the slot.
func (m *Monitor) Stop() error {
	_, err := m.api.ProgramStop(m.slot)
	return err
}

func (m *Monitor) pollState(timeout time.Duration, done func(State) bool) error {
	deadline := time.Now().Add(timeout)
	for {
		if err := m.Sync(); err != nil {
			return err
		}
		if done(m.state) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout after %s in state %q", timeout, m.state)
		}
		time.Sleep(m.poll.Interval)
	}
}

// WaitToFinish polls until the program completes, fails or the context is
// done. On completion the reported line count snaps to the recorded total.
// An error state is enriched with the decoded controller error.
func (m *Monitor) WaitToFinish(ctx context.Context) error {
	ticker := time.NewTicker(m.poll.Interval)
	defer ticker.Stop()

	for {
		if err := m.Sync(); err != nil {
			return err
		}
		switch {
		case m.state == ProgramComplete:
			if m.totalLines > 0 {
				m.line = m.totalLines
			}
			m.report()
			return nil
		case m.state == Error:
			m.report()
			return m.executionError()
		case !m.state.Running():
			m.report()
			return fmt.Errorf("task %d left the running state: %q", m.slot, m.state)
		}
		m.report()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (m *Monitor) report() {
	if m.OnProgress == nil {
		return
	}
	m.OnProgress(Progress{
		Task:  m.slot,
		State: m.state,
		Line:  m.line,
		Total: m.totalLines,
	})
}

// executionError resolves the slot's error code and location and decodes
// them into readable text.
func (m *Monitor) executionError() error {
	e := &ExecutionError{Task: m.slot}

	fields, err := aerobasic.Status(m.conn,
		aerobasic.TaskQuery(m.slot, aerobasic.TaskErrorCode),
		aerobasic.TaskQuery(m.slot, aerobasic.TaskErrorLocation),
	)
	if err != nil {
		return e
	}
	e.Code, _ = strconv.Atoi(fields[0])
	e.Location, _ = strconv.Atoi(fields[1])

	if diag, err := m.api.ErrorDecode(e.Code, e.Location); err == nil {
		e.Diagnostic = diag
	}
	return e
}
