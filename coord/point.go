package coord

import (
	"math"
)

// Point is an absolute position in one coordinate space, in that space's
// native unit.
type Point struct{ X, Y, Z float64 }

func (p Point) Equal(b Point) bool {
	return p.X == b.X && p.Y == b.Y && p.Z == b.Z
}

func (p Point) Add(b Point) Point {
	p.X += b.X
	p.Y += b.Y
	p.Z += b.Z
	return p
}

func (p Point) Sub(b Point) Point {
	p.X -= b.X
	p.Y -= b.Y
	p.Z -= b.Z
	return p
}

func (p Point) Cross(b Point) Point {
	return Point{
		p.Y*b.Z - p.Z*b.Y,
		p.Z*b.X - p.X*b.Z,
		p.X*b.Y - p.Y*b.X,
	}
}

func (p Point) Dot(b Point) float64 {
	return p.X*b.X + p.Y*b.Y + p.Z*b.Z
}

// DistanceXY returns the 2D distance from (x,y) to p.
func (p Point) DistanceXY(x, y float64) float64 {
	return math.Hypot(x-p.X, y-p.Y)
}
