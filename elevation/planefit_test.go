package elevation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reincas/nanofab/coord"
)

func TestStatic(t *testing.T) {
	e := Static(2.5)
	assert.Equal(t, 2.5, e.Z(0, 0))
	assert.Equal(t, 2.5, e.Z(100, -50))
}

func TestPlane(t *testing.T) {
	p := Plane{A: 0.5, B: -0.25, C: 3}
	assert.Equal(t, 3.0, p.Z(0, 0))
	assert.Equal(t, 3.25, p.Z(1, -1))
}

func TestFitPlaneExact(t *testing.T) {
	// points on z = 0.1x + 0.2y + 5
	plane := Plane{A: 0.1, B: 0.2, C: 5}
	var points []coord.Point
	for _, xy := range [][2]float64{{0, 0}, {10, 0}, {0, 10}, {10, 10}, {5, 5}} {
		points = append(points, coord.Point{X: xy[0], Y: xy[1], Z: plane.Z(xy[0], xy[1])})
	}

	fit, err := FitPlane(points)
	assert.NoError(t, err)
	assert.InDelta(t, 0.1, fit.A, 1e-9)
	assert.InDelta(t, 0.2, fit.B, 1e-9)
	assert.InDelta(t, 5.0, fit.C, 1e-9)

	// exact plane, residuals vanish
	assert.InDelta(t, 0, fit.MaxResidual(), 1e-9)
	assert.InDelta(t, 0, fit.MeanResidual(), 1e-9)
	for _, r := range fit.Residuals() {
		assert.InDelta(t, 0, r, 1e-9)
	}
}

func TestFitPlaneResiduals(t *testing.T) {
	// symmetric deviation of +-1 around z=0
	points := []coord.Point{
		{X: 0, Y: 0, Z: 1},
		{X: 2, Y: 0, Z: -1},
		{X: 0, Y: 2, Z: -1},
		{X: 2, Y: 2, Z: 1},
	}

	fit, err := FitPlane(points)
	assert.NoError(t, err)
	assert.InDelta(t, 0, fit.A, 1e-9)
	assert.InDelta(t, 0, fit.B, 1e-9)
	assert.InDelta(t, 0, fit.C, 1e-9)
	assert.InDelta(t, 1, fit.MaxResidual(), 1e-9)
	assert.InDelta(t, 1, fit.MeanResidual(), 1e-9)
}

func TestFitPlaneTooFewPoints(t *testing.T) {
	_, err := FitPlane([]coord.Point{{X: 1}, {Y: 1}})
	assert.Error(t, err)
}

func TestFitPlaneCollinear(t *testing.T) {
	points := []coord.Point{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 1},
		{X: 2, Y: 2, Z: 2},
	}
	_, err := FitPlane(points)
	assert.Error(t, err)
}

func TestFitPlaneAngles(t *testing.T) {
	// pure tilt along x with slope 0.1
	var points []coord.Point
	for _, xy := range [][2]float64{{0, 0}, {10, 0}, {0, 10}, {10, 10}} {
		points = append(points, coord.Point{X: xy[0], Y: xy[1], Z: 0.1 * xy[0]})
	}

	fit, err := FitPlane(points)
	assert.NoError(t, err)
	assert.InDelta(t, 0.1, fit.Slope(), 1e-9)
	assert.InDelta(t, math.Atan(0.1)*180/math.Pi, fit.PolarAngle(), 1e-9)
}

func TestFitPlaneAzimuth(t *testing.T) {
	fit := func(a, b float64) *PlaneFit {
		var points []coord.Point
		for _, xy := range [][2]float64{{0, 0}, {10, 0}, {0, 10}, {10, 10}} {
			points = append(points, coord.Point{X: xy[0], Y: xy[1], Z: a*xy[0] + b*xy[1]})
		}
		f, err := FitPlane(points)
		assert.NoError(t, err)
		return f
	}

	// azimuth points in the direction of steepest ascent
	assert.InDelta(t, 0, fit(0.1, 0).Azimuth(), 1e-9)
	assert.InDelta(t, 90, fit(0, 0.1).Azimuth(), 1e-9)
	assert.InDelta(t, -180, fit(-0.1, 0).Azimuth(), 1e-9)
	assert.InDelta(t, -90, fit(0, -0.1).Azimuth(), 1e-9)
}

func TestFitPlaneHorizontal(t *testing.T) {
	var points []coord.Point
	for _, xy := range [][2]float64{{0, 0}, {10, 0}, {0, 10}} {
		points = append(points, coord.Point{X: xy[0], Y: xy[1], Z: 4})
	}

	fit, err := FitPlane(points)
	assert.NoError(t, err)
	assert.InDelta(t, 0, fit.Slope(), 1e-9)
	assert.InDelta(t, 0, fit.PolarAngle(), 1e-9)
}
