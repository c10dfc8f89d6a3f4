package tune

import (
	"math/rand"

	"golang.org/x/exp/constraints"
)

// ProgressUpdate reports the state of a running search. Updates are sent
// non-blocking: if the channel is full the update is dropped rather than
// stalling the search.
type ProgressUpdate struct {
	// Phase names the current stage: "GridSearch", "RandomSearch",
	// "InitialSampling", or "Optimization".
	Phase string

	// CurrentIteration is the 1-based index of the evaluation just
	// completed within the phase.
	CurrentIteration int

	// TotalIterations is the number of evaluations the phase will run.
	TotalIterations int

	// Experiment is the grid point just evaluated. Nil during Bayesian
	// optimization, which reports Params instead.
	Experiment Experiment

	// Params holds the numeric candidate just evaluated by the Bayesian
	// optimizer. Nil during grid and random search.
	Params []float64

	// LastValue is the metric (grid/random search) or cost (Bayesian
	// optimization) of the evaluation just completed.
	LastValue float64

	// BestValue is the best metric or cost seen so far in this search.
	BestValue float64
}

// Objective is the scalar validation metric a search maximizes. It
// receives one experiment and returns its metric, higher being better —
// for example, train with the experiment's hyperparameters and return
// validation accuracy. A non-nil error marks the trial failed; failed
// trials are recorded but never selected as best.
type Objective func(Experiment) (float64, error)

// Trial records one evaluated experiment: the point, its metric, and the
// evaluation error if the objective failed.
type Trial struct {
	// Experiment is the evaluated grid point.
	Experiment Experiment

	// Metric is the objective's value. Meaningless when Err is non-nil.
	Metric float64

	// Err is the objective's failure, or nil.
	Err error
}

// SearchResult is the outcome of a grid or random search.
type SearchResult struct {
	// Best is the experiment with the highest metric. When several trials
	// tie, the earliest one in evaluation order wins.
	Best Experiment

	// BestMetric is Best's metric.
	BestMetric float64

	// Trials holds every evaluation in order, failed ones included.
	Trials []Trial
}

// SearchConfig controls a grid or random search.
type SearchConfig struct {
	// RNG is the random source for RandomSearch draws. Pass a seeded
	// *rand.Rand for reproducible sampling; nil means time-seeded, varying
	// run to run. GridSearch ignores it.
	RNG *rand.Rand

	// ProgressChan receives one non-blocking update per evaluation. Nil
	// disables progress reporting.
	ProgressChan chan<- ProgressUpdate
}

// ParameterRange defines the inclusive bounds of one numeric
// hyperparameter for the Bayesian optimizer, which searches continuous
// ranges rather than enumerated candidate lists.
//
// Type Parameter:
//   - T: The numeric type for this range (integer or float)
//
// Usage:
//
//	ranges := []ParameterRange[float64]{
//	    {Min: 0.0001, Max: 0.1}, // learning rate
//	    {Min: 0.0, Max: 1.0},    // momentum
//	}
//
// Min must not exceed Max. Very wide ranges slow convergence: the search
// space becomes too large to cover with a fixed evaluation budget.
type ParameterRange[T constraints.Integer | constraints.Float] struct {
	// Min is the minimum allowed value (inclusive).
	Min T

	// Max is the maximum allowed value (inclusive).
	Max T
}

// CostFunc is the function the Bayesian optimizer minimizes. It receives
// one candidate per declared ParameterRange, in order, and returns the
// scalar cost of that configuration (validation loss, latency, negative
// accuracy, ...). Lower is better. A non-nil error marks the configuration
// failed; the optimizer penalizes it heavily so the model steers away.
//
// Usage example:
//
//	cost := CostFunc[float64](func(params ...float64) (float64, error) {
//	    lr, momentum := params[0], params[1]
//	    return trainAndValidate(lr, momentum)
//	})
type CostFunc[T constraints.Integer | constraints.Float] func(params ...T) (float64, error)

// AcquisitionFunc scores how promising an untested candidate is, given the
// posterior mean and variance the Gaussian Process predicts for it. Lower
// values indicate more promising points (the optimizer minimizes cost).
//
// Built-in implementations: UCB, ProbabilityOfImprovement,
// ExpectedImprovement, ThompsonSampling.
//
// Custom implementations should handle zero variance, be deterministic
// unless deliberately stochastic (Thompson), and read any tunables they
// need from AcquisitionParams.
type AcquisitionFunc func(mean, variance float64, params AcquisitionParams) float64

// AcquisitionParams carries the tunables acquisition functions read. Each
// function uses a subset; the optimizer maintains BestSoFar itself.
type AcquisitionParams struct {
	// Beta is UCB's exploration weight. Higher values (3 to 5) chase
	// uncertain regions; lower values (0.1 to 0.5) exploit known-good
	// ones. 2.0 is a reasonable default.
	Beta float64

	// Xi is the minimum-improvement margin used by Probability of
	// Improvement and Expected Improvement. Typical values 0.01 to 0.1;
	// higher explores more.
	Xi float64

	// BestSoFar is the lowest cost observed so far. Initialize to
	// math.MaxFloat64; the optimizer keeps it current afterwards.
	BestSoFar float64

	// RandomState is the random source Thompson Sampling draws from. Must
	// be non-nil when AcquisitionFunc is ThompsonSampling; give each
	// optimization run its own.
	RandomState *rand.Rand
}

// OptimizationConfig controls the Bayesian optimization loop.
//
// Tuning guidance:
// - Iterations: 20-200; more iterations, better results, longer runtime
// - InitialSamples: 5-20; more samples, more stable initial model
// - NumCandidates: 50-500; more candidates, better per-iteration choices
//
// Create separate configs (and RNGs) for parallel optimizations.
type OptimizationConfig struct {
	// Iterations is the number of acquisition-guided evaluations run after
	// initial sampling. Each iteration scores NumCandidates random points
	// against the model and evaluates only the most promising one.
	Iterations int

	// InitialSamples is the number of uniform random evaluations used to
	// seed the model before acquisition-guided search begins.
	InitialSamples int

	// NumCandidates is the number of random candidates scored per
	// iteration.
	NumCandidates int

	// AcquisitionFunc selects the next point to evaluate. See the
	// AcquisitionFunc type for the built-in options.
	AcquisitionFunc AcquisitionFunc

	// AcqParams parameterizes AcquisitionFunc.
	AcqParams AcquisitionParams

	// RNG is the random source for sampling candidates. Pass a seeded
	// *rand.Rand for reproducible runs; nil means time-seeded.
	RNG *rand.Rand

	// Noise is the observation-noise variance given to the Gaussian
	// Process. Keeps the model usable when the search revisits a
	// candidate, which integer ranges make likely.
	Noise float64

	// ProgressChan receives one non-blocking update per evaluation. Nil
	// disables progress reporting.
	ProgressChan chan<- ProgressUpdate
}
