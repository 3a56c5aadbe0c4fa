// Package aerobasic builds and dispatches AeroBasic commands, the textual
// motion language of the A3200 controller.
//
// The central capability is Sender: accept one raw command line. Two
// implementations exist — Program accumulates lines in memory for later
// download as a task, while ascii.Client forwards each line to the live
// controller. The API type provides the typed command vocabulary on top of
// either one, and DrawAPI routes move arguments through a coordinate
// system first so that the same drawing code can target the stage or the
// galvo scanner.
package aerobasic

// Sender accepts one raw AeroBasic command line. The returned string is
// the controller's response payload for live senders and the accepted
// line for accumulating ones.
type Sender interface {
	Send(command string) (string, error)
}

// DataItem names a controller status value for AXISSTATUS, TASKSTATUS,
// SYSTEMSTATUS and ~STATUS queries.
type DataItem string

// Param returns the wire form used inside status function calls.
func (d DataItem) Param() string { return "DATAITEM_" + string(d) }

// Axis data items.
const (
	PositionFeedback DataItem = "PositionFeedback"
	PositionCommand  DataItem = "PositionCommand"
	PositionError    DataItem = "PositionError"
	VelocityFeedback DataItem = "VelocityFeedback"
	VelocityCommand  DataItem = "VelocityCommand"
	AxisStatusItem   DataItem = "AxisStatus"
	DriveStatusItem  DataItem = "DriveStatus"
	AxisFaultItem    DataItem = "AxisFault"
)

// Task data items.
const (
	TaskState         DataItem = "TaskState"
	TaskMode          DataItem = "TaskMode"
	TaskStatus0       DataItem = "TaskStatus0"
	TaskStatus1       DataItem = "TaskStatus1"
	TaskStatus2       DataItem = "TaskStatus2"
	ProgramLineNumber DataItem = "ProgramLineNumber"
	TaskErrorCode     DataItem = "TaskErrorCode"
	TaskErrorLocation DataItem = "TaskErrorLocation"
)

// System data items.
const (
	Timer DataItem = "Timer"
)

// WaitMode selects how motion commands block task execution.
type WaitMode string

const (
	WaitAuto     WaitMode = "AUTO"
	WaitInPos    WaitMode = "INPOS"
	WaitMoveDone WaitMode = "MOVEDONE"
)
