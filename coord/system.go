package coord

import (
	"errors"
	"fmt"

	"github.com/reincas/nanofab/axis"
)

// Elevation models the working-surface height under a reference point.
// Implementations live in the elevation package (static offset, fitted
// plane, triangulated mesh).
type Elevation interface {
	Z(x, y float64) float64
}

// Unit is the scale factor from a drawing unit to the controller's native
// millimetres.
type Unit float64

const (
	Centimeter Unit = 10
	Millimeter Unit = 1
	Micrometer Unit = 1e-3
	Nanometer  Unit = 1e-6
)

// ParseUnit maps a configuration name ("cm", "mm", "um", "nm") to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "cm":
		return Centimeter, nil
	case "mm":
		return Millimeter, nil
	case "um", "µm":
		return Micrometer, nil
	case "nm":
		return Nanometer, nil
	}
	return 0, fmt.Errorf("unknown unit %q", s)
}

// DropDirection tags which side of a detected resin interface exposure
// targets. Metadata only; no arithmetic depends on it.
type DropDirection int

const (
	DropUp   DropDirection = -1
	DropDown DropDirection = 1
)

// AxisMap remaps logical axis labels to physical ones. The zero value is
// the identity; ScannerMap realizes logical X,Y on the galvo mirrors.
type AxisMap struct {
	X, Y, Z axis.Axis
}

// ScannerMap routes logical X and Y onto the galvo axes A and B.
var ScannerMap = AxisMap{X: axis.A, Y: axis.B}

func (m AxisMap) x() axis.Axis {
	if m.X == axis.None {
		return axis.X
	}
	return m.X
}

func (m AxisMap) y() axis.Axis {
	if m.Y == axis.None {
		return axis.Y
	}
	return m.Y
}

func (m AxisMap) z() axis.Axis {
	if m.Z == axis.None {
		return axis.Z
	}
	return m.Z
}

// Apply returns the physical axis for a logical one.
func (m AxisMap) Apply(a axis.Axis) axis.Axis {
	switch a {
	case axis.X:
		return m.x()
	case axis.Y:
		return m.y()
	case axis.Z:
		return m.z()
	}
	return a
}

// System maps logical drawing coordinates onto one of the two physical
// spaces. Offsets shift X and Y, the elevation source shifts Z, the axis
// map substitutes physical labels and the unit scales every value.
//
// A System is immutable after construction except for the axis map, which
// may be set once before first use.
type System struct {
	OffsetX, OffsetY float64
	Elev             Elevation
	Drop             DropDirection
	Unit             Unit

	remap    AxisMap
	remapSet bool
}

// NewSystem builds a coordinate system. A nil elevation means a flat
// surface at z=0; a zero unit defaults to millimetres.
func NewSystem(offsetX, offsetY float64, elev Elevation, drop DropDirection, unit Unit) *System {
	if unit == 0 {
		unit = Millimeter
	}
	return &System{
		OffsetX: offsetX,
		OffsetY: offsetY,
		Elev:    elev,
		Drop:    drop,
		Unit:    unit,
	}
}

// MapAxes installs the logical-to-physical axis map. It may be called at
// most once, before the system is first used for conversion.
func (s *System) MapAxes(m AxisMap) error {
	if s.remapSet {
		return errors.New("axis map already set")
	}
	s.remap = m
	s.remapSet = true
	return nil
}

// PhysicalAxis returns the physical axis realizing a logical one.
func (s *System) PhysicalAxis(a axis.Axis) axis.Axis {
	return s.remap.Apply(a)
}

func (s *System) elevation() float64 {
	if s.Elev == nil {
		return 0
	}
	// Evaluated at the system's own planar offset, not at the target
	// point: the elevation models the surface height under the current
	// reference position.
	return s.Elev.Z(s.OffsetX, s.OffsetY)
}

// Convert maps a logical coordinate into the physical space. X and Y gain
// the planar offsets, Z gains the elevation, A and B pass through; every
// value is then scaled into millimetres and stored under its physical
// axis label.
func (s *System) Convert(c Coordinate) Coordinate {
	var out Coordinate
	set := func(a axis.Axis, v float64) {
		v *= float64(s.Unit)
		switch a {
		case axis.X:
			out.X = &v
		case axis.Y:
			out.Y = &v
		case axis.Z:
			out.Z = &v
		case axis.A:
			out.A = &v
		case axis.B:
			out.B = &v
		}
	}
	if c.X != nil {
		set(s.remap.Apply(axis.X), *c.X+s.OffsetX)
	}
	if c.Y != nil {
		set(s.remap.Apply(axis.Y), *c.Y+s.OffsetY)
	}
	if c.Z != nil {
		set(s.remap.Apply(axis.Z), *c.Z+s.elevation())
	}
	if c.A != nil {
		set(axis.A, *c.A)
	}
	if c.B != nil {
		set(axis.B, *c.B)
	}
	return out
}

// Scale converts a feed, velocity or radius magnitude into millimetre
// units. Magnitudes are scaled but never offset.
func (s *System) Scale(v float64) float64 {
	return v * float64(s.Unit)
}

// ToUnit returns a copy of the system with a different drawing unit.
func (s *System) ToUnit(u Unit) *System {
	out := NewSystem(s.OffsetX, s.OffsetY, s.Elev, s.Drop, u)
	out.remap = s.remap
	out.remapSet = s.remapSet
	return out
}
