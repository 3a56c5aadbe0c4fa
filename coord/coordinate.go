package coord

import (
	"github.com/reincas/nanofab/axis"
)

// Coordinate is a partial position: any subset of the five logical axes may
// carry a value. Absent axes are nil and are never emitted or converted.
type Coordinate struct {
	X, Y, Z, A, B *float64
}

// Value returns a pointer for use in Coordinate and option literals.
func Value(v float64) *float64 { return &v }

// XYZ builds a fully-populated stage coordinate.
func XYZ(x, y, z float64) Coordinate {
	return Coordinate{X: Value(x), Y: Value(y), Z: Value(z)}
}

// Only builds a coordinate carrying a value on a single axis.
func Only(a axis.Axis, v float64) Coordinate {
	var c Coordinate
	switch a {
	case axis.X:
		c.X = &v
	case axis.Y:
		c.Y = &v
	case axis.Z:
		c.Z = &v
	case axis.A:
		c.A = &v
	case axis.B:
		c.B = &v
	}
	return c
}

// Get returns the value stored for a single axis, or nil.
func (c Coordinate) Get(a axis.Axis) *float64 {
	switch a {
	case axis.X:
		return c.X
	case axis.Y:
		return c.Y
	case axis.Z:
		return c.Z
	case axis.A:
		return c.A
	case axis.B:
		return c.B
	}
	return nil
}
