package tune

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCovarianceSymmetricAndPSD(t *testing.T) {
	k := SquaredExponential(1, 10)
	xs := [][]float64{{-2.1}, {-0.4}, {0.0}, {0.9}, {2.5}}

	m := Covariance(k, xs, xs)

	r, c := m.Dims()
	require.Equal(t, len(xs), r)
	require.Equal(t, len(xs), c)

	for i := 0; i < r; i++ {
		// Unit amplitude: a point is perfectly correlated with itself.
		assert.InDelta(t, 1.0, m.At(i, i), 1e-12)

		for j := 0; j < c; j++ {
			assert.InDelta(t, m.At(i, j), m.At(j, i), 1e-12)
		}
	}

	// Positive semi-definite: no eigenvalue below zero (up to roundoff).
	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < c; j++ {
			sym.SetSym(i, j, m.At(i, j))
		}
	}

	var eig mat.EigenSym
	require.True(t, eig.Factorize(sym, false))

	for _, v := range eig.Values(nil) {
		assert.GreaterOrEqual(t, v, -1e-10)
	}
}

func TestCovarianceRectangular(t *testing.T) {
	k := SquaredExponential(1, 10)

	m := Covariance(k, [][]float64{{0}, {1}, {2}}, [][]float64{{0.5}})

	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 1, c)
	assert.InDelta(t, k([]float64{2}, []float64{0.5}), m.At(2, 0), 1e-15)
}

func TestConditionNoObservationsReturnsPrior(t *testing.T) {
	k := SquaredExponential(1, 10)
	query := [][]float64{{-1}, {0}, {1}}

	mean, cov, err := Condition(k, query, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 0}, mean)
	assert.True(t, mat.EqualApprox(Covariance(k, query, query), cov, 1e-12))
}

func TestConditionSingleObservation(t *testing.T) {
	// Squared-exponential with amplitude 1, scale 10; one observation at
	// x=1.0 with y=0.5. Predicting at the same point must reproduce the
	// observation with near-zero variance.
	k := SquaredExponential(1, 10)

	mean, cov, err := Condition(k, [][]float64{{1.0}}, [][]float64{{1.0}}, []float64{0.5})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, mean[0], 1e-9)
	assert.InDelta(t, 0.0, cov.At(0, 0), 1e-9)
}

func TestConditionInterpolatesTrainingPoints(t *testing.T) {
	k := SquaredExponential(1, 10)
	obsX := [][]float64{{-1.0}, {0.2}, {1.5}}
	obsY := []float64{0.3, -0.8, 1.1}

	mean, cov, err := Condition(k, obsX, obsX, obsY)
	require.NoError(t, err)

	for i := range obsY {
		assert.InDelta(t, obsY[i], mean[i], 1e-6)
		assert.InDelta(t, 0.0, cov.At(i, i), 1e-6)
	}
}

func TestConditionShrinksVarianceNearObservations(t *testing.T) {
	k := SquaredExponential(1, 10)
	obsX := [][]float64{{0.0}}
	obsY := []float64{1.0}

	_, cov, err := Condition(k, [][]float64{{0.1}, {3.0}}, obsX, obsY)
	require.NoError(t, err)

	// Close to the observation the posterior is confident; far away it
	// reverts to the prior variance.
	assert.Less(t, cov.At(0, 0), 0.5)
	assert.InDelta(t, 1.0, cov.At(1, 1), 1e-6)
}

func TestConditionDuplicateObservationsNotInvertible(t *testing.T) {
	k := SquaredExponential(1, 10)

	_, _, err := Condition(k,
		[][]float64{{0.0}},
		[][]float64{{1.0}, {1.0}}, // duplicate inputs: rank-deficient Sigma_y
		[]float64{0.5, 0.5},
	)
	require.Error(t, err)
	assert.True(t,
		errors.Is(err, ErrSingularMatrix) || errors.Is(err, ErrIllConditioned),
		"got %v", err)
}

func TestConditionArgumentValidation(t *testing.T) {
	k := SquaredExponential(1, 10)

	_, _, err := Condition(k, nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = Condition(k, [][]float64{{0}}, [][]float64{{1}}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGPSequentialSampling(t *testing.T) {
	k := SquaredExponential(1, 10)
	gp := NewGP(k)
	rng := rand.New(rand.NewSource(42))

	// Before any observation the posterior is the prior.
	mean, variance, err := gp.PosteriorAt([]float64{0})
	require.NoError(t, err)
	assert.Zero(t, mean)
	assert.InDelta(t, 1.0, variance, 1e-12)

	// Sample, then append the draw; the observation set grows one pair at
	// a time and every posterior is recomputed over the whole set.
	xs := []float64{-2, -1, 0, 1, 2}
	ys := make([]float64, len(xs))

	for i, x := range xs {
		y, err := gp.Sample([]float64{x}, rng)
		require.NoError(t, err)

		gp.Observe([]float64{x}, y)
		ys[i] = y
	}

	require.Equal(t, len(xs), gp.Len())

	// The noiseless posterior interpolates everything it has seen.
	for i, x := range xs {
		mean, variance, err := gp.PosteriorAt([]float64{x})
		require.NoError(t, err)

		assert.InDelta(t, ys[i], mean, 1e-6)
		assert.InDelta(t, 0.0, variance, 1e-6)
	}
}

func TestGPObserveCopiesInput(t *testing.T) {
	gp := NewGP(SquaredExponential(1, 10))

	x := []float64{1.0}
	gp.Observe(x, 0.5)

	// Mutating the caller's slice must not disturb the stored observation.
	x[0] = 99

	mean, _, err := gp.PosteriorAt([]float64{1.0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, mean, 1e-9)
}

func TestGPNoiseToleratesDuplicates(t *testing.T) {
	gp := NewGP(SquaredExponential(1, 10))
	gp.SetNoise(1e-6)

	gp.Observe([]float64{1.0}, 0.5)
	gp.Observe([]float64{1.0}, 0.5)

	mean, variance, err := gp.PosteriorAt([]float64{1.0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, mean, 1e-3)
	assert.GreaterOrEqual(t, variance, 0.0)
}

func TestGPSampleZeroVarianceIsDeterministic(t *testing.T) {
	gp := NewGP(SquaredExponential(1, 10))
	gp.Observe([]float64{0.0}, 0.7)

	// At an observed point the posterior variance is ~0, so the draw
	// collapses to the mean regardless of the random source.
	y, err := gp.Sample([]float64{0.0}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.InDelta(t, 0.7, y, 1e-4)
}
