package elevation

import (
	"errors"
	"math"

	"github.com/fogleman/delaunay"

	"github.com/reincas/nanofab/coord"
)

const (
	// epsilon is the max error when checking triangle containment.
	epsilon   = 0.001
	epsilonSq = epsilon * epsilon
)

// Mesh interpolates surface height over a Delaunay triangulation of probed
// points. Outside the probed region Z falls back to Fallback.
type Mesh struct {
	minX, minY, maxX, maxY float64
	triangles              []triangle

	// Fallback is returned by Z outside the triangulated region.
	Fallback float64
}

var _ coord.Elevation = &Mesh{}

// NewMesh triangulates at least three probed surface points.
func NewMesh(points []coord.Point) (*Mesh, error) {
	if len(points) < 3 {
		return nil, errors.New("need at least 3 points to create a mesh")
	}

	points2d := make([]delaunay.Point, len(points))
	byXY := make(map[delaunay.Point]coord.Point, len(points))

	m := &Mesh{
		minX: points[0].X,
		minY: points[0].Y,
		maxX: points[0].X,
		maxY: points[0].Y,
	}
	var d delaunay.Point
	for i, p := range points {
		m.minX = math.Min(m.minX, p.X)
		m.minY = math.Min(m.minY, p.Y)
		m.maxX = math.Max(m.maxX, p.X)
		m.maxY = math.Max(m.maxY, p.Y)

		d.X = p.X
		d.Y = p.Y
		byXY[d] = p
		points2d[i] = d
	}
	m.minX -= epsilon
	m.minY -= epsilon
	m.maxX += epsilon
	m.maxY += epsilon

	tri, err := delaunay.Triangulate(points2d)
	if err != nil {
		return nil, err
	}

	m.triangles = make([]triangle, 0, len(tri.Triangles)/3)
	for i := 0; i < len(tri.Triangles); i += 3 {
		m.triangles = append(m.triangles, triangle{
			a: byXY[tri.Points[tri.Triangles[i]]],
			b: byXY[tri.Points[tri.Triangles[i+1]]],
			c: byXY[tri.Points[tri.Triangles[i+2]]],
		})
	}

	return m, nil
}

// Lookup returns the interpolated height at (x,y) and whether the point
// lies within the triangulated region.
func (m *Mesh) Lookup(x, y float64) (float64, bool) {
	if x < m.minX || m.maxX < x || y < m.minY || m.maxY < y {
		return 0, false
	}
	for _, t := range m.triangles {
		if t.containsXY(x, y) {
			return t.z(x, y), true
		}
	}
	return 0, false
}

func (m *Mesh) Z(x, y float64) float64 {
	if z, ok := m.Lookup(x, y); ok {
		return z
	}
	return m.Fallback
}

type triangle struct{ a, b, c coord.Point }

// z gives the Z-coordinate of the triangle's plane at (x,y).
func (t triangle) z(x, y float64) float64 {
	ac := t.c.Sub(t.a)
	ab := t.b.Sub(t.a)

	cp := ac.Cross(ab)
	d := cp.Dot(t.c)

	return (d - cp.X*x - cp.Y*y) / cp.Z
}

func (t triangle) containsXY(x, y float64) bool {
	return accuratePointInTriangle(
		t.a.X, t.a.Y,
		t.b.X, t.b.Y,
		t.c.X, t.c.Y,
		x, y)
}

// adapted from https://totologic.blogspot.com/2014/01/accurate-point-in-triangle-test.html

func side(x1, y1, x2, y2, x, y float64) float64 {
	return (y2-y1)*(x-x1) + (-x2+x1)*(y-y1)
}

func naivePointInTriangle(x1, y1, x2, y2, x3, y3, x, y float64) bool {
	checkSide1 := side(x1, y1, x2, y2, x, y) >= 0
	checkSide2 := side(x2, y2, x3, y3, x, y) >= 0
	checkSide3 := side(x3, y3, x1, y1, x, y) >= 0
	return checkSide1 && checkSide2 && checkSide3
}

func pointInTriangleBoundingBox(x1, y1, x2, y2, x3, y3, x, y float64) bool {
	xMin := math.Min(x1, math.Min(x2, x3)) - epsilon
	xMax := math.Max(x1, math.Max(x2, x3)) + epsilon
	yMin := math.Min(y1, math.Min(y2, y3)) - epsilon
	yMax := math.Max(y1, math.Max(y2, y3)) + epsilon

	return x >= xMin && x <= xMax && y >= yMin && y <= yMax
}

func distanceSquarePointToSegment(x1, y1, x2, y2, x, y float64) float64 {
	p1p2squareLength := (x2-x1)*(x2-x1) + (y2-y1)*(y2-y1)
	dotProduct := ((x-x1)*(x2-x1) + (y-y1)*(y2-y1)) / p1p2squareLength
	if dotProduct < 0 {
		return (x-x1)*(x-x1) + (y-y1)*(y-y1)
	}
	if dotProduct <= 1 {
		p0p1squareLength := (x1-x)*(x1-x) + (y1-y)*(y1-y)
		return p0p1squareLength - dotProduct*dotProduct*p1p2squareLength
	}

	return (x-x2)*(x-x2) + (y-y2)*(y-y2)
}

func accuratePointInTriangle(x1, y1, x2, y2, x3, y3, x, y float64) bool {
	if !pointInTriangleBoundingBox(x1, y1, x2, y2, x3, y3, x, y) {
		return false
	}

	if naivePointInTriangle(x1, y1, x2, y2, x3, y3, x, y) {
		return true
	}
	if distanceSquarePointToSegment(x1, y1, x2, y2, x, y) <= epsilonSq {
		return true
	}
	if distanceSquarePointToSegment(x2, y2, x3, y3, x, y) <= epsilonSq {
		return true
	}
	return distanceSquarePointToSegment(x3, y3, x1, y1, x, y) <= epsilonSq
}
