package tune

import (
	"math"

	"golang.org/x/exp/constraints"
)

//////
// Helper functions.
//////

// normalCDF is the cumulative distribution function of the standard normal
// distribution, used by the PI and EI acquisition functions.
func normalCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}

// normalPDF is the probability density function of the standard normal
// distribution, used by the EI acquisition function.
func normalPDF(x float64) float64 {
	return math.Exp(-x*x/2.0) / math.Sqrt(2.0*math.Pi)
}

// asFloats converts numeric parameters to the float64 slice the Gaussian
// Process works in. Returns a new slice; the input is not modified.
// Integer values convert exactly.
func asFloats[T constraints.Integer | constraints.Float](params []T) []float64 {
	floats := make([]float64, len(params))

	for i, v := range params {
		floats[i] = float64(v)
	}

	return floats
}
