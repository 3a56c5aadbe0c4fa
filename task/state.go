// Package task tracks programs executing in the controller's task slots:
// loading, starting, polling state and waiting for completion.
package task

// State is the execution state of a task slot.
type State int

const (
	Unavailable State = iota
	Inactive
	Idle
	ProgramReady
	ProgramRunning
	ProgramFeedHeld
	ProgramPaused
	ProgramComplete
	Error
	Queue
)

var stateNames = map[State]string{
	Unavailable:     "unavailable",
	Inactive:        "inactive",
	Idle:            "idle",
	ProgramReady:    "program ready",
	ProgramRunning:  "program running",
	ProgramFeedHeld: "program feed held",
	ProgramPaused:   "program paused",
	ProgramComplete: "program complete",
	Error:           "error",
	Queue:           "queue",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Running reports whether the slot is actively executing a program.
func (s State) Running() bool {
	return s == ProgramRunning || s == ProgramFeedHeld || s == ProgramPaused
}

// Mode is the TaskMode bit flag word.
type Mode uint32

const (
	ModeSecondary        Mode = 0x00000001
	ModeAbsolute         Mode = 0x00000002
	ModeAccelTypeLinear  Mode = 0x00000004
	ModeAccelModeRate    Mode = 0x00000008
	ModeMotionContinuous Mode = 0x00000020
	ModeAutoMode         Mode = 0x00008000
	ModeWaitForInPos     Mode = 0x08000000
	ModeMinutes          Mode = 0x10000000
	ModeWaitAuto         Mode = 0x40000000
)

func (m Mode) Has(flag Mode) bool { return m&flag == flag }

// Status0, Status1 and Status2 are the three TaskStatus bit flag words.
type Status0 uint32

const (
	StatusProgramAssociated  Status0 = 0x00000001
	StatusImmediateExecuting Status0 = 0x00000008
	StatusProgramReset       Status0 = 0x00000100
	StatusPendingAxesStop    Status0 = 0x00000200
	StatusSoftwareESTOP      Status0 = 0x00000400
	StatusFeedHoldActive     Status0 = 0x00000800
	StatusSoftHomeActive     Status0 = 0x00100000
)

func (s Status0) Has(flag Status0) bool { return s&flag == flag }

type Status1 uint32

const (
	StatusMotionAbortPending Status1 = 0x00000002
	StatusFeedHeldStopped    Status1 = 0x00000040
	StatusProgramStopPending Status1 = 0x00010000
	StatusInterrupted        Status1 = 0x00080000
	StatusIFOVBufferHold     Status1 = 0x02000000
)

func (s Status1) Has(flag Status1) bool { return s&flag == flag }

type Status2 uint32

const (
	StatusRotationActive         Status2 = 0x00000001
	StatusScalingActive          Status2 = 0x00000008
	StatusMotionModeRapid        Status2 = 0x00000040
	StatusMotionModeCoordinated  Status2 = 0x00000080
	StatusMotionContinuousActive Status2 = 0x00000200
	StatusMotionModeCW           Status2 = 0x00080000
	StatusMotionModeCCW          Status2 = 0x00100000
)

func (s Status2) Has(flag Status2) bool { return s&flag == flag }

// WaitMode derives the active wait mode from the task mode flags.
func (m Mode) WaitMode() string {
	switch {
	case m.Has(ModeWaitAuto):
		return "AUTO"
	case m.Has(ModeWaitForInPos):
		return "INPOS"
	}
	return "MOVEDONE"
}
