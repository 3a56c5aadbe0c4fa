package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	ax, err := Parse("x")
	assert.NoError(t, err)
	assert.Equal(t, X, ax)

	ax, err = Parse("XY")
	assert.NoError(t, err)
	assert.Equal(t, X|Y, ax)

	ax, err = Parse("y z")
	assert.NoError(t, err)
	assert.Equal(t, Y|Z, ax)

	ax, err = Parse("ab")
	assert.NoError(t, err)
	assert.Equal(t, A|B, ax)

	_, err = Parse("q")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)

	_, err = Parse("  ")
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	assert.Equal(t, "X", X.String())
	assert.Equal(t, "X Y", (X | Y).String())
	assert.Equal(t, "X Y", (Y | X).String())
	assert.Equal(t, "X Y Z A B", (Stage | Scanner).String())
	assert.Equal(t, "", None.String())
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, None.Count())
	assert.Equal(t, 1, X.Count())
	assert.Equal(t, 3, Stage.Count())
	assert.True(t, Z.IsSingle())
	assert.False(t, (X | Y).IsSingle())
	assert.False(t, None.IsSingle())
}

func TestContains(t *testing.T) {
	assert.True(t, Stage.Contains(X))
	assert.True(t, Stage.Contains(X|Z))
	assert.False(t, Stage.Contains(A))
	assert.False(t, Stage.Contains(X|A))
	assert.False(t, Stage.Contains(None))
}

func TestAxes(t *testing.T) {
	assert.Equal(t, []Axis{X, Z}, (Z | X).Axes())
	assert.Equal(t, []Axis{A, B}, Scanner.Axes())
	assert.Empty(t, None.Axes())
}

func TestGroupOf(t *testing.T) {
	g, err := X.GroupOf()
	assert.NoError(t, err)
	assert.Equal(t, GroupStage, g)

	g, err = (A | B).GroupOf()
	assert.NoError(t, err)
	assert.Equal(t, GroupScanner, g)

	_, err = (X | A).GroupOf()
	assert.Error(t, err)

	_, err = None.GroupOf()
	assert.Error(t, err)
}

func TestUnion(t *testing.T) {
	u, err := X.Union(Y)
	assert.NoError(t, err)
	assert.Equal(t, X|Y, u)

	u, err = A.Union(B)
	assert.NoError(t, err)
	assert.Equal(t, A|B, u)

	_, err = X.Union(A)
	assert.Error(t, err)

	_, err = Stage.Union(Scanner)
	assert.Error(t, err)
}

func TestSameGroup(t *testing.T) {
	assert.True(t, SameGroup(X, Y))
	assert.True(t, SameGroup(A, B))
	assert.False(t, SameGroup(X, B))
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, X|Y, MustParse("xy"))
	assert.Panics(t, func() { MustParse("w") })
}
