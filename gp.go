package tune

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"
)

//////
// Const, vars, types.
//////

// maxConditionNumber is the 2-norm condition-number threshold above which
// the observed covariance matrix is considered too close to singular to
// invert safely. Inverting past this point would return results dominated
// by floating-point noise rather than failing loudly.
const maxConditionNumber = 1e12

// GP is a zero-mean Gaussian Process conditioned on a growing, append-only
// observation set. It supports the sequential-sampling pattern: predict at
// a point, sample a value from the posterior, append the pair as a new
// observation, repeat. Every posterior is recomputed from scratch over the
// full observation set; there is no rank-one update path. This keeps the
// code a direct transcription of the textbook formulas at O(n^3) per call,
// which is fine for the observation counts hyperparameter search produces.
//
// Fields:
// - mu: RWMutex for thread-safe access to all fields
// - kernel: Covariance function over input points
// - noise: Observation-noise variance added to the observed covariance
//   diagonal (0 = exact noiseless conditioning)
// - x, y: The observation set
//
// Thread safety:
// - All fields are protected by the RWMutex
// - Posterior, PosteriorAt, Sample, and Len take the read lock
// - Observe and SetNoise take the write lock
//
// Memory usage grows linearly with the number of observations; each
// Observe stores a copy of the input point.
type GP struct {
	// mu protects access to all fields.
	mu sync.RWMutex

	// kernel is the covariance function. Fixed at construction.
	kernel Kernel

	// noise is added to the diagonal of the observed covariance before
	// inversion. Zero by default.
	noise float64

	// x holds the observed input points. Inner slices must have a
	// consistent length.
	x [][]float64

	// y holds the observed outputs, aligned with x.
	y []float64
}

//////
// Exported functionalities.
//////

// Covariance builds the matrix of pairwise kernel evaluations: element
// (i, j) is k(xs[i], ys[j]). For a symmetric kernel and xs == ys the result
// is symmetric and, for valid kernels such as the squared-exponential
// family, positive semi-definite.
//
// Both point sets must be non-empty and share one dimensionality; the
// kernel panics on mismatched point lengths, matching how it behaves when
// called directly.
func Covariance(k Kernel, xs, ys [][]float64) *mat.Dense {
	m := mat.NewDense(len(xs), len(ys), nil)

	for i, a := range xs {
		for j, b := range ys {
			m.Set(i, j, k(a, b))
		}
	}

	return m
}

// Condition computes the posterior of a zero-mean Gaussian Process at the
// query points, given the observed input/output pairs:
//
//	Sigma_xy = Covariance(k, query, obsX)
//	Sigma_y  = Covariance(k, obsX, obsX)
//	Sigma_x  = Covariance(k, query, query)
//
//	mean = Sigma_xy · Sigma_y^-1 · obsY
//	cov  = Sigma_x − Sigma_xy · Sigma_y^-1 · Sigma_xy^T
//
// Parameters:
// - k: Covariance function
// - query: Points to predict at (must be non-empty)
// - obsX, obsY: Observed inputs and outputs (must have equal length)
//
// Returns:
// - mean: Posterior mean, one entry per query point
// - cov: Posterior covariance over the query points
// - error: See below
//
// With zero observations the matrix formula is undefined, so Condition
// short-circuits to the prior: an all-zero mean and cov = Sigma_x.
//
// Errors:
// - ErrInvalidArgument: empty query, or len(obsX) != len(obsY)
// - ErrSingularMatrix: Sigma_y is not invertible (duplicate observed
//   inputs are the usual cause)
// - ErrIllConditioned: Sigma_y's condition number exceeds the safe
//   inversion threshold; surfaced instead of silently returning NaNs
//
// Usage example:
//
//	k := SquaredExponential(1, 10)
//	mean, cov, err := Condition(k,
//	    [][]float64{{0.5}, {1.5}},   // predict here
//	    [][]float64{{1.0}},          // observed input
//	    []float64{0.5},              // observed output
//	)
func Condition(k Kernel, query, obsX [][]float64, obsY []float64) ([]float64, *mat.Dense, error) {
	if len(query) == 0 {
		return nil, nil, fmt.Errorf("%w: no query points", ErrInvalidArgument)
	}

	if len(obsX) != len(obsY) {
		return nil, nil, fmt.Errorf(
			"%w: %d observed inputs for %d observed outputs",
			ErrInvalidArgument, len(obsX), len(obsY),
		)
	}

	// Prior short-circuit: nothing observed yet.
	if len(obsX) == 0 {
		return make([]float64, len(query)), Covariance(k, query, query), nil
	}

	return condition(k, query, obsX, obsY, 0)
}

//////
// Methods.
//////

// Observe appends an input/output pair to the observation set. The input
// slice is deep-copied, so the caller may reuse it afterwards.
//
// Observe does not reject duplicate inputs: the observation set is the
// caller's to keep unique, and a duplicate surfaces as ErrSingularMatrix
// on the next posterior computation (or degrades gracefully when a noise
// term is set).
func (gp *GP) Observe(x []float64, y float64) {
	gp.mu.Lock()
	defer gp.mu.Unlock()

	newX := make([]float64, len(x))
	copy(newX, x)

	gp.x = append(gp.x, newX)
	gp.y = append(gp.y, y)
}

// Len returns the number of observations conditioned on so far.
func (gp *GP) Len() int {
	gp.mu.RLock()
	defer gp.mu.RUnlock()

	return len(gp.x)
}

// SetNoise sets the observation-noise variance added to the diagonal of
// the observed covariance matrix before inversion. Zero (the default)
// gives exact noiseless conditioning; a small positive value (1e-6 or so)
// keeps the matrix invertible when inputs repeat or crowd together, at the
// cost of the posterior no longer interpolating observations exactly.
func (gp *GP) SetNoise(noise float64) {
	gp.mu.Lock()
	defer gp.mu.Unlock()

	gp.noise = noise
}

// Posterior computes the posterior mean and covariance at the query
// points, conditioned on every observation made so far. Semantics and
// errors match Condition, plus the configured noise term.
func (gp *GP) Posterior(query [][]float64) ([]float64, *mat.Dense, error) {
	gp.mu.RLock()
	defer gp.mu.RUnlock()

	if len(query) == 0 {
		return nil, nil, fmt.Errorf("%w: no query points", ErrInvalidArgument)
	}

	if len(gp.x) == 0 {
		return make([]float64, len(query)), Covariance(gp.kernel, query, query), nil
	}

	return condition(gp.kernel, query, gp.x, gp.y, gp.noise)
}

// PosteriorAt computes the posterior at a single point.
//
// Returns:
// - mean: Expected value at x
// - variance: Uncertainty at x; tiny negative values produced by
//   floating-point cancellation are clamped to 0
// - error: As for Posterior
func (gp *GP) PosteriorAt(x []float64) (mean, variance float64, err error) {
	m, cov, err := gp.Posterior([][]float64{x})
	if err != nil {
		return 0, 0, err
	}

	variance = cov.At(0, 0)
	if variance < 0 {
		variance = 0
	}

	return m[0], variance, nil
}

// Sample draws one value from the posterior at x: Normal(mean, variance)
// with the posterior moments from PosteriorAt. The typical sequential
// pattern is Sample then Observe the drawn pair, enlarging the set the
// next posterior conditions on.
//
// Parameters:
// - x: Point to sample at
// - rng: Random source; pass a seeded *rand.Rand for reproducible draws,
//   or nil for a time-seeded source
func (gp *GP) Sample(x []float64, rng *rand.Rand) (float64, error) {
	mean, variance, err := gp.PosteriorAt(x)
	if err != nil {
		return 0, err
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return mean + math.Sqrt(variance)*rng.NormFloat64(), nil
}

//////
// Factory.
//////

// NewGP returns a Gaussian Process with an empty observation set, zero
// noise, and the given covariance function. Create a fresh instance per
// independent optimization; instances are safe for concurrent use but not
// meant to be shared across unrelated searches.
func NewGP(kernel Kernel) *GP {
	return &GP{kernel: kernel}
}

//////
// Helper functions.
//////

// condition implements the posterior formulas for a non-empty observation
// set, with an optional noise term on the observed covariance diagonal.
// Callers are responsible for the empty-observation short-circuit.
func condition(k Kernel, query, obsX [][]float64, obsY []float64, noise float64) ([]float64, *mat.Dense, error) {
	sigmaY := Covariance(k, obsX, obsX)

	if noise > 0 {
		for i := range obsX {
			sigmaY.Set(i, i, sigmaY.At(i, i)+noise)
		}
	}

	// Refuse to invert a singular or near-singular matrix. mat.Cond uses
	// the SVD for the 2-norm, so a truly singular matrix comes back +Inf
	// rather than erroring.
	switch c := mat.Cond(sigmaY, 2); {
	case math.IsInf(c, 1) || math.IsNaN(c):
		return nil, nil, fmt.Errorf("%w: observed covariance is not invertible", ErrSingularMatrix)
	case c > maxConditionNumber:
		return nil, nil, fmt.Errorf(
			"%w: condition number %.3g exceeds %.0g",
			ErrIllConditioned, c, float64(maxConditionNumber),
		)
	}

	var inv mat.Dense
	if err := inv.Inverse(sigmaY); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrIllConditioned, err)
	}

	sigmaXY := Covariance(k, query, obsX)
	sigmaX := Covariance(k, query, query)

	// weights = Sigma_xy · Sigma_y^-1
	var weights mat.Dense
	weights.Mul(sigmaXY, &inv)

	// mean = weights · obsY
	var mu mat.VecDense
	mu.MulVec(&weights, mat.NewVecDense(len(obsY), append([]float64(nil), obsY...)))

	// cov = Sigma_x − weights · Sigma_xy^T
	var explained mat.Dense
	explained.Mul(&weights, sigmaXY.T())

	var cov mat.Dense
	cov.Sub(sigmaX, &explained)

	mean := make([]float64, len(query))
	for i := range mean {
		mean[i] = mu.AtVec(i)
	}

	return mean, &cov, nil
}
