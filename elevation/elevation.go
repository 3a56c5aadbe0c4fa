// Package elevation provides the working-surface height sources used by
// coordinate systems: a static offset, a least-squares fitted plane and a
// triangulated mesh over probed points.
package elevation

import (
	"github.com/reincas/nanofab/coord"
)

// Static is a constant surface height.
type Static float64

var _ coord.Elevation = Static(0)

func (s Static) Z(x, y float64) float64 { return float64(s) }

// Plane is the surface z = A*x + B*y + C.
type Plane struct {
	A, B, C float64
}

var _ coord.Elevation = Plane{}

func (p Plane) Z(x, y float64) float64 {
	return p.A*x + p.B*y + p.C
}
