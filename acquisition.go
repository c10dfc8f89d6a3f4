package tune

import "math"

//////
// Acquisition functions for Bayesian optimization. Each scores a candidate
// from the posterior mean and variance the Gaussian Process predicts for
// it, trading off exploration (uncertain regions) against exploitation
// (regions already known to be good). Lower scores win.
//////

// UCB is the Upper Confidence Bound acquisition function (lower confidence
// bound under this package's minimization convention):
//
//	score = mean - Beta * sqrt(variance)
//
// Beta controls the trade-off: higher favors exploring uncertain regions,
// lower favors exploiting the current optimum. A robust general-purpose
// default.
//
// Example:
//
//	params := AcquisitionParams{Beta: 2.0}
//	score := UCB(0.5, 0.2, params)
func UCB(mean, variance float64, params AcquisitionParams) float64 {
	return mean - params.Beta*math.Sqrt(variance)
}

// ProbabilityOfImprovement scores a candidate by the probability that it
// beats the best cost observed so far by at least Xi, under the Gaussian
// posterior. Conservative: prefers small, likely improvements over large,
// unlikely ones.
//
// Uses params.BestSoFar and params.Xi. With zero variance the z-score
// diverges and the score collapses to 0 or 1 depending on the mean, which
// is the right limit.
func ProbabilityOfImprovement(mean, variance float64, params AcquisitionParams) float64 {
	z := (mean - params.BestSoFar - params.Xi) / math.Sqrt(variance)

	return normalCDF(z)
}

// ExpectedImprovement scores a candidate by the expected magnitude of its
// improvement over the best cost observed so far, combining how likely the
// improvement is with how large it would be. The most commonly used
// acquisition function in practice.
//
// Uses params.BestSoFar and params.Xi.
func ExpectedImprovement(mean, variance float64, params AcquisitionParams) float64 {
	sigma := math.Sqrt(variance)

	z := (mean - params.BestSoFar - params.Xi) / sigma

	return (mean-params.BestSoFar-params.Xi)*normalCDF(z) + sigma*normalPDF(z)
}

// ThompsonSampling scores a candidate with a single random draw from its
// posterior: Normal(mean, variance). Randomness does the
// exploration/exploitation balancing, no tunables required. Well suited to
// parallel optimization runs.
//
// params.RandomState must be non-nil; give each optimization run its own
// generator.
func ThompsonSampling(mean, variance float64, params AcquisitionParams) float64 {
	return mean + math.Sqrt(variance)*params.RandomState.NormFloat64()
}
