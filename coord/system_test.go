package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reincas/nanofab/axis"
)

type flatElevation float64

func (e flatElevation) Z(x, y float64) float64 { return float64(e) }

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit("cm")
	assert.NoError(t, err)
	assert.Equal(t, Centimeter, u)

	u, err = ParseUnit("um")
	assert.NoError(t, err)
	assert.Equal(t, Micrometer, u)

	u, err = ParseUnit("µm")
	assert.NoError(t, err)
	assert.Equal(t, Micrometer, u)

	_, err = ParseUnit("inch")
	assert.Error(t, err)
}

func TestSystemConvert(t *testing.T) {
	sys := NewSystem(10, 20, flatElevation(2), DropUp, Millimeter)

	c := sys.Convert(XYZ(1, 2, 3))
	assert.Equal(t, 11.0, *c.X)
	assert.Equal(t, 22.0, *c.Y)
	assert.Equal(t, 5.0, *c.Z)
	assert.Nil(t, c.A)
	assert.Nil(t, c.B)
}

func TestSystemConvertUnit(t *testing.T) {
	// values in micrometres, elevation applies before scaling
	sys := NewSystem(0, 0, flatElevation(2), DropDown, Micrometer)

	c := sys.Convert(Only(axis.Z, 5))
	assert.InDelta(t, 0.007, *c.Z, 1e-12)
}

func TestSystemConvertPartial(t *testing.T) {
	sys := NewSystem(1, 2, nil, DropUp, Millimeter)

	c := sys.Convert(Only(axis.X, 5))
	assert.Equal(t, 6.0, *c.X)
	assert.Nil(t, c.Y)
	assert.Nil(t, c.Z)
}

func TestSystemScannerMap(t *testing.T) {
	sys := NewSystem(1, 2, nil, DropUp, Millimeter)
	assert.NoError(t, sys.MapAxes(ScannerMap))
	assert.Error(t, sys.MapAxes(ScannerMap))

	c := sys.Convert(Coordinate{X: Value(3), Y: Value(4)})
	assert.Nil(t, c.X)
	assert.Nil(t, c.Y)
	assert.Equal(t, 4.0, *c.A)
	assert.Equal(t, 6.0, *c.B)

	assert.Equal(t, axis.A, sys.PhysicalAxis(axis.X))
	assert.Equal(t, axis.B, sys.PhysicalAxis(axis.Y))
	assert.Equal(t, axis.Z, sys.PhysicalAxis(axis.Z))
}

func TestSystemConvertGalvoPassThrough(t *testing.T) {
	sys := NewSystem(10, 20, nil, DropUp, Micrometer)

	// galvo values are scaled but never offset
	c := sys.Convert(Coordinate{A: Value(1000), B: Value(2000)})
	assert.InDelta(t, 1.0, *c.A, 1e-12)
	assert.InDelta(t, 2.0, *c.B, 1e-12)
}

func TestSystemScale(t *testing.T) {
	sys := NewSystem(10, 20, flatElevation(2), DropUp, Micrometer)

	// magnitudes gain no offsets
	assert.InDelta(t, 0.5, sys.Scale(500), 1e-12)
}

func TestSystemToUnit(t *testing.T) {
	sys := NewSystem(1, 2, nil, DropUp, Millimeter)
	assert.NoError(t, sys.MapAxes(ScannerMap))

	um := sys.ToUnit(Micrometer)
	assert.Equal(t, Micrometer, um.Unit)
	assert.Equal(t, 1.0, um.OffsetX)
	assert.Equal(t, axis.A, um.PhysicalAxis(axis.X))
}

func TestElevationAtOffset(t *testing.T) {
	// the elevation source sees the system offset, not the target
	probe := func(x, y float64) float64 { return x + y }
	sys := NewSystem(3, 4, elevationFunc(probe), DropUp, Millimeter)

	c := sys.Convert(Only(axis.Z, 0))
	assert.Equal(t, 7.0, *c.Z)
}

type elevationFunc func(x, y float64) float64

func (f elevationFunc) Z(x, y float64) float64 { return f(x, y) }
