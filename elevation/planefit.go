package elevation

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/reincas/nanofab/coord"
)

// PlaneFit is a plane fitted to sample points by least squares. Residual
// statistics and tilt angles are computed eagerly at construction.
type PlaneFit struct {
	Plane

	points    []coord.Point
	residuals []float64
	maxRes    float64
	meanRes   float64
}

// FitPlane solves z = a*x + b*y + c over at least three non-collinear
// points.
func FitPlane(points []coord.Point) (*PlaneFit, error) {
	if len(points) < 3 {
		return nil, errors.New("plane fit needs at least 3 points")
	}

	a := mat.NewDense(len(points), 3, nil)
	b := mat.NewVecDense(len(points), nil)
	for i, p := range points {
		a.Set(i, 0, p.X)
		a.Set(i, 1, p.Y)
		a.Set(i, 2, 1)
		b.SetVec(i, p.Z)
	}

	var qr mat.QR
	qr.Factorize(a)
	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, b); err != nil {
		return nil, fmt.Errorf("plane fit: points are collinear: %w", err)
	}

	fit := &PlaneFit{
		Plane: Plane{
			A: params.AtVec(0),
			B: params.AtVec(1),
			C: params.AtVec(2),
		},
		points: append([]coord.Point(nil), points...),
	}

	fit.residuals = make([]float64, len(points))
	var sum float64
	for i, p := range points {
		r := fit.Z(p.X, p.Y) - p.Z
		fit.residuals[i] = r
		sum += math.Abs(r)
		fit.maxRes = math.Max(fit.maxRes, math.Abs(r))
	}
	fit.meanRes = sum / float64(len(points))

	return fit, nil
}

// Points returns the fitting points.
func (f *PlaneFit) Points() []coord.Point {
	return append([]coord.Point(nil), f.points...)
}

// Residuals returns the signed per-point deviation of the fitted plane.
func (f *PlaneFit) Residuals() []float64 {
	return append([]float64(nil), f.residuals...)
}

func (f *PlaneFit) MaxResidual() float64  { return f.maxRes }
func (f *PlaneFit) MeanResidual() float64 { return f.meanRes }

// normal is the plane's normal vector, from the cross product of the two
// in-plane direction vectors (1,0,A) and (0,1,B).
func (f *PlaneFit) normal() coord.Point {
	p1 := coord.Point{X: 1, Y: 0, Z: f.Z(1, 0) - f.Z(0, 0)}
	p2 := coord.Point{X: 0, Y: 1, Z: f.Z(0, 1) - f.Z(0, 0)}
	return p1.Cross(p2)
}

// Slope is the tilt of the plane as a horizontal-to-vertical ratio.
func (f *PlaneFit) Slope() float64 {
	n := f.normal()
	return math.Hypot(n.X, n.Y) / n.Z
}

// PolarAngle is the tilt of the plane against the horizontal, in degrees.
func (f *PlaneFit) PolarAngle() float64 {
	n := f.normal()
	return math.Atan2(math.Hypot(n.X, n.Y), n.Z) * 180 / math.Pi
}

// Azimuth is the direction of steepest ascent in degrees, normalized into
// [-180, 180).
func (f *PlaneFit) Azimuth() float64 {
	n := f.normal()
	phi := math.Atan2(n.Y, n.X) * 180 / math.Pi
	return math.Mod(phi+360, 360) - 180
}

func (f *PlaneFit) String() string {
	return fmt.Sprintf(
		"polar angle:    %.1f° (%.2f%%)\nazimuth angle:  %.1f°\nmean deviation: %.3f µm (max. %.3f µm)",
		f.PolarAngle(), 100*f.Slope(), f.Azimuth(), f.meanRes, f.maxRes)
}
