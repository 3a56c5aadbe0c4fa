package a3200

// AxisStatus is the AxisStatus bit flag word of one axis.
type AxisStatus uint32

const (
	AxisHomed       AxisStatus = 0x00000001
	AxisProfiling   AxisStatus = 0x00000002
	AxisWaitDone    AxisStatus = 0x00000004
	AxisHoming      AxisStatus = 0x00000010
	AxisEnabling    AxisStatus = 0x00000020
	AxisJogging     AxisStatus = 0x00000100
	AxisNotVirtual  AxisStatus = 0x00002000
	AxisMoveDone    AxisStatus = 0x00400000
	AxisMotionBlock AxisStatus = 0x00200000
)

func (s AxisStatus) Has(flag AxisStatus) bool { return s&flag == flag }

func (s AxisStatus) Homed() bool    { return s.Has(AxisHomed) }
func (s AxisStatus) Homing() bool   { return s.Has(AxisHoming) }
func (s AxisStatus) MoveDone() bool { return s.Has(AxisMoveDone) }

// DriveStatus is the DriveStatus bit flag word of one axis.
type DriveStatus uint32

const (
	DriveEnabled   DriveStatus = 0x00000001
	DriveCwLimit   DriveStatus = 0x00000002
	DriveCcwLimit  DriveStatus = 0x00000004
	DriveHomeLimit DriveStatus = 0x00000008
)

func (s DriveStatus) Has(flag DriveStatus) bool { return s&flag == flag }

func (s DriveStatus) Enabled() bool { return s.Has(DriveEnabled) }

// AxisFault is the AxisFault bit flag word of one axis. Zero means no
// fault.
type AxisFault uint32

const (
	FaultPositionError  AxisFault = 0x00000001
	FaultOverCurrent    AxisFault = 0x00000002
	FaultCwEOTLimit     AxisFault = 0x00000004
	FaultCcwEOTLimit    AxisFault = 0x00000008
	FaultCwSoftLimit    AxisFault = 0x00000010
	FaultCcwSoftLimit   AxisFault = 0x00000020
	FaultAmplifier      AxisFault = 0x00000040
	FaultMaxVelocity    AxisFault = 0x00000400
	FaultEstop          AxisFault = 0x00000800
	FaultVelocityError  AxisFault = 0x00001000
	FaultMotorTemp      AxisFault = 0x00020000
	FaultEncoder        AxisFault = 0x00080000
	FaultCommLost       AxisFault = 0x00100000
	FaultSafeZone       AxisFault = 0x02000000
	FaultInPosTimeout   AxisFault = 0x04000000
)

func (f AxisFault) Has(flag AxisFault) bool { return f&flag == flag }

// Faulted reports whether any fault bit is set.
func (f AxisFault) Faulted() bool { return f != 0 }
