package tune

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// experimentKey renders an experiment deterministically so tests can count
// distinct draws.
func experimentKey(space *Space, exp Experiment) string {
	var b strings.Builder

	for _, name := range space.Names() {
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(exp[name].String())
		b.WriteString(";")
	}

	return b.String()
}

func TestFullGridOrder(t *testing.T) {
	space := NewSpace().
		Add("a", Number(1), Number(2)).
		Add("b", Number(10), Number(20))

	grid, err := FullGrid(space)
	require.NoError(t, err)

	// Odometer order: the last-declared parameter varies fastest.
	want := []Experiment{
		{"a": Number(1), "b": Number(10)},
		{"a": Number(1), "b": Number(20)},
		{"a": Number(2), "b": Number(10)},
		{"a": Number(2), "b": Number(20)},
	}
	assert.Equal(t, want, grid)
}

func TestFullGridLengthIsProductOfListLengths(t *testing.T) {
	space := NewSpace().
		Add("lr", Number(0.001), Number(0.01), Number(0.1)).
		Add("batch", Number(32), Number(64)).
		Add("optimizer", Category(OptimizerSGD), Category(OptimizerAdam), Category(OptimizerRMSProp), Category(OptimizerMomentum))

	grid, err := FullGrid(space)
	require.NoError(t, err)

	assert.Equal(t, 3*2*4, space.Size())
	assert.Len(t, grid, space.Size())
}

func TestFullGridDeterministic(t *testing.T) {
	space := NewSpace().
		Add("a", Number(1), Number(2), Number(3)).
		Add("b", Category("x"), Category("y"))

	first, err := FullGrid(space)
	require.NoError(t, err)

	second, err := FullGrid(space)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFullGridInvalidSpace(t *testing.T) {
	// Empty candidate list.
	_, err := FullGrid(NewSpace().Add("a", Number(1)).Add("b"))
	assert.ErrorIs(t, err, ErrInvalidSpace)

	// No parameters at all.
	_, err = FullGrid(NewSpace())
	assert.ErrorIs(t, err, ErrInvalidSpace)
}

func TestRandomGridLengthAndMembership(t *testing.T) {
	space := NewSpace().
		Add("a", Number(1), Number(2)).
		Add("b", Number(10), Number(20), Number(30))

	grid, err := FullGrid(space)
	require.NoError(t, err)

	draws, err := RandomGrid(space, 25, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, draws, 25)

	// Every draw is an element of the full grid.
	for _, exp := range draws {
		assert.Contains(t, grid, exp)
	}

	// n == 0 is a valid request.
	empty, err := RandomGrid(space, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRandomGridNegativeCount(t *testing.T) {
	space := NewSpace().Add("a", Number(1))

	_, err := RandomGrid(space, -1, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRandomGridSamplesWithReplacement(t *testing.T) {
	space := NewSpace().
		Add("a", Number(1), Number(2)).
		Add("b", Number(10), Number(20))

	// 50 draws from a 4-point grid must repeat points.
	draws, err := RandomGrid(space, 50, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Len(t, draws, 50)

	distinct := make(map[string]int)
	for _, exp := range draws {
		distinct[experimentKey(space, exp)]++
	}

	assert.Less(t, len(distinct), len(draws), "draws beyond the grid size must contain duplicates")
}

func TestRandomGridSeededReproducibility(t *testing.T) {
	space := NewSpace().
		Add("a", Number(1), Number(2), Number(3)).
		Add("b", Category("x"), Category("y"), Category("z"))

	first, err := RandomGrid(space, 20, rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	second, err := RandomGrid(space, 20, rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSpaceRedeclareKeepsPosition(t *testing.T) {
	space := NewSpace().
		Add("a", Number(1)).
		Add("b", Number(10)).
		Add("a", Number(1), Number(2)) // replace candidates, keep slot

	assert.Equal(t, []string{"a", "b"}, space.Names())
	assert.Len(t, space.Candidates("a"), 2)
	assert.Equal(t, 2, space.Size())
}
