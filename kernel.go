package tune

import "math"

//////
// Const, vars, types.
//////

// Kernel is a covariance function over points in the input space: it
// returns the prior covariance between the function values at a and b.
// Both points must have the same dimensionality.
//
// Valid kernels are symmetric (k(a,b) == k(b,a)) and produce
// positive-semi-definite covariance matrices; the squared-exponential
// family below satisfies both.
type Kernel func(a, b []float64) float64

//////
// Factories.
//////

// SquaredExponential returns a squared-exponential (Gaussian) kernel
//
//	k(a, b) = amplitude * exp(-scale/2 * ||a - b||^2)
//
// amplitude sets the prior variance at any single point; scale controls how
// quickly correlation decays with distance (larger = faster decay, more
// wiggly functions).
//
// Usage example:
//
//	k := SquaredExponential(1, 10)
//	k([]float64{1.0}, []float64{1.0}) // 1.0: identical points
//	k([]float64{0.0}, []float64{3.0}) // ~0: distant points
//
// Panics if the two points have different lengths.
func SquaredExponential(amplitude, scale float64) Kernel {
	return func(a, b []float64) float64 {
		return amplitude * math.Exp(-0.5*scale*squaredDistance(a, b))
	}
}

// RBF returns the Radial Basis Function kernel parameterized by a width
// sigma rather than a decay rate:
//
//	k(a, b) = exp(-||a - b||^2 / (2 * sigma^2))
//
// Larger sigma = smoother interpolation, smaller sigma = more local
// influence. RBF(sigma) is SquaredExponential(1, 1/sigma^2); both forms are
// provided because hyperparameter conventions differ between texts.
//
// Panics if the two points have different lengths.
func RBF(sigma float64) Kernel {
	return func(a, b []float64) float64 {
		return math.Exp(-squaredDistance(a, b) / (2 * sigma * sigma))
	}
}

//////
// Helper functions.
//////

// squaredDistance returns the squared Euclidean distance between two points
// of equal dimensionality.
func squaredDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("kernel inputs must have the same length")
	}

	var sum float64

	for i := range a {
		diff := a[i] - b[i]

		sum += diff * diff
	}

	return sum
}
