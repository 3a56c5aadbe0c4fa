package aerobasic

import (
	"github.com/reincas/nanofab/coord"
)

// DrawAPI is an API whose move arguments pass through a coordinate system
// first. Drawing code works in logical units and logical axes; the system
// applies offsets, elevation, axis remapping and unit scaling before the
// command text is built.
type DrawAPI struct {
	*API
	CS *coord.System
}

func NewDraw(s Sender, cs *coord.System) *DrawAPI {
	return &DrawAPI{API: New(s), CS: cs}
}

func (d *DrawAPI) scalePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	s := d.CS.Scale(*v)
	return &s
}

// Linear converts the move target and scales the feed or velocity before
// emitting the command.
func (d *DrawAPI) Linear(m Move) (string, error) {
	m.Target = d.CS.Convert(m.Target)
	m.Feed = d.scalePtr(m.Feed)
	m.Velocity = d.scalePtr(m.Velocity)
	return d.API.Linear(m)
}

// convertArc maps the arc's physical axes, endpoints, center offsets and
// magnitudes into the system's physical space. Endpoints are full
// coordinates and gain offsets; radius, center offsets and velocity are
// magnitudes and are only scaled.
func (d *DrawAPI) convertArc(a Arc) Arc {
	end := d.CS.Convert(coord.Only(a.Axis1, a.End1))
	a.Axis1 = d.CS.PhysicalAxis(a.Axis1)
	if v := end.Get(a.Axis1); v != nil {
		a.End1 = *v
	}
	end = d.CS.Convert(coord.Only(a.Axis2, a.End2))
	a.Axis2 = d.CS.PhysicalAxis(a.Axis2)
	if v := end.Get(a.Axis2); v != nil {
		a.End2 = *v
	}
	a.Radius = d.scalePtr(a.Radius)
	a.Center1 = d.scalePtr(a.Center1)
	a.Center2 = d.scalePtr(a.Center2)
	a.Velocity = d.scalePtr(a.Velocity)
	return a
}

func (d *DrawAPI) CW(a Arc) (string, error)  { return d.API.CW(d.convertArc(a)) }
func (d *DrawAPI) CCW(a Arc) (string, error) { return d.API.CCW(d.convertArc(a)) }
