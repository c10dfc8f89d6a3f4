package tune

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/exp/constraints"
)

//////
// Exported functionalities.
//////

// DefaultConfig returns a default optimization configuration: 50
// iterations after 10 initial samples, UCB acquisition with Beta 2.0, a
// small Gaussian Process noise term, and a time-seeded random source.
// Override fields as needed; set RNG to a seeded generator for
// reproducible runs.
func DefaultConfig() OptimizationConfig {
	return OptimizationConfig{
		Iterations:      50,
		InitialSamples:  10,
		NumCandidates:   50,
		AcquisitionFunc: UCB,
		AcqParams: AcquisitionParams{
			BestSoFar:   math.MaxFloat64,
			Beta:        2.0,
			RandomState: rand.New(rand.NewSource(time.Now().UnixNano())),
			Xi:          0.01,
		},
		Noise:        1e-6,
		ProgressChan: nil, // Default to no progress updates.
	}
}

// OptimizeHyperparameters minimizes a cost function over numeric parameter
// ranges using Bayesian optimization: Gaussian Process regression over the
// evaluations made so far, plus an acquisition function to pick each next
// point.
//
// Type Parameter:
//   - T: The numeric type for parameters (integer or float)
//
// Parameters:
// - config: Optimization configuration; start from DefaultConfig()
// - cost: The function to minimize, one argument per range, in order
// - hypers: One or more ParameterRange defining the search space
//
// Returns:
// - []T: The best parameters found, in the same order as hypers
// - error: ErrInvalidArgument for an empty range list, a negative count in
//   the config, or a zero evaluation budget
//
// How it works:
//  1. Evaluates InitialSamples uniform random points to seed the model
//  2. Each iteration draws NumCandidates random candidates, scores each
//     with the acquisition function against the model's posterior, and
//     evaluates only the most promising one
//  3. Every evaluation is fed back into the model; the best parameters
//     seen are returned at the end
//
// A failing cost function is charged a large penalty value instead of
// aborting the run, so the model learns to steer away from broken
// configurations.
//
// Usage example:
//
//	ranges := []ParameterRange[float64]{
//	    {Min: 0.0001, Max: 0.1}, // learning rate
//	    {Min: 0.0, Max: 1.0},    // momentum
//	}
//
//	best, err := OptimizeHyperparameters(
//	    DefaultConfig(),
//	    func(params ...float64) (float64, error) {
//	        return trainAndValidate(params[0], params[1])
//	    },
//	    ranges...,
//	)
//
// Total runtime is InitialSamples + Iterations cost evaluations; posterior
// computation per candidate is cubic in the number of evaluations made so
// far, negligible next to any real training job.
func OptimizeHyperparameters[T constraints.Integer | constraints.Float](
	config OptimizationConfig,
	cost CostFunc[T],
	hypers ...ParameterRange[T],
) ([]T, error) {
	if len(hypers) == 0 {
		return nil, fmt.Errorf("%w: no parameter ranges", ErrInvalidArgument)
	}

	if config.InitialSamples < 0 || config.Iterations < 0 || config.NumCandidates < 0 {
		return nil, fmt.Errorf("%w: negative count in optimization config", ErrInvalidArgument)
	}

	if config.InitialSamples+config.Iterations == 0 {
		return nil, fmt.Errorf("%w: zero evaluation budget", ErrInvalidArgument)
	}

	rng := config.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var rngMu sync.Mutex

	// randomParams draws one uniform candidate from the declared ranges,
	// integer-valued or continuous per the range's type.
	randomParams := func() []T {
		rngMu.Lock()
		defer rngMu.Unlock()

		params := make([]T, len(hypers))
		for i, hyper := range hypers {
			switch any(hyper.Min).(type) {
			case float32, float64:
				min := float64(hyper.Min)
				max := float64(hyper.Max)
				params[i] = T(min + rng.Float64()*(max-min))
			default:
				min := int64(hyper.Min)
				max := int64(hyper.Max)
				params[i] = T(min + rng.Int63n(max-min+1))
			}
		}

		return params
	}

	// The surrogate model. The noise term keeps its observed covariance
	// invertible when the search revisits a candidate.
	model := NewGP(RBF(1.0))
	model.SetNoise(config.Noise)

	bestParams := make([]T, len(hypers))
	bestCost := math.MaxFloat64

	// bestMu protects bestParams and bestCost.
	var bestMu sync.Mutex

	sendProgress := func(phase string, iteration, total int, current []T, lastCost float64) {
		if config.ProgressChan == nil {
			return
		}

		bestMu.Lock()
		update := ProgressUpdate{
			Phase:            phase,
			CurrentIteration: iteration,
			TotalIterations:  total,
			Params:           asFloats(current),
			LastValue:        lastCost,
			BestValue:        bestCost,
		}
		bestMu.Unlock()

		select {
		case config.ProgressChan <- update:
		default:
			// Skip update if channel is full.
		}
	}

	updateBest := func(params []T, c float64) {
		bestMu.Lock()
		defer bestMu.Unlock()

		if c < bestCost {
			bestCost = c
			copy(bestParams, params)
		}
	}

	// evaluate runs the cost function, converting a failure into a large
	// penalty so the model learns to avoid the region.
	evaluate := func(params []T) float64 {
		c, err := cost(params...)
		if err != nil {
			return math.MaxFloat64 / 2
		}

		return c
	}

	// Phase 1: initial random sampling to seed the model.
	for i := 0; i < config.InitialSamples; i++ {
		params := randomParams()
		c := evaluate(params)

		model.Observe(asFloats(params), c)
		updateBest(params, c)

		sendProgress("InitialSampling", i+1, config.InitialSamples, params, c)
	}

	// Phase 2: acquisition-guided search.
	for i := 0; i < config.Iterations; i++ {
		var nextParams []T

		bestAcquisition := math.MaxFloat64

		bestMu.Lock()
		config.AcqParams.BestSoFar = bestCost
		bestMu.Unlock()

		for j := 0; j < config.NumCandidates; j++ {
			candidate := randomParams()

			mean, variance, err := model.PosteriorAt(asFloats(candidate))
			if err != nil {
				// An ill-conditioned posterior just disqualifies this
				// candidate; the run keeps going.
				continue
			}

			acquisition := config.AcquisitionFunc(mean, variance, config.AcqParams)
			if acquisition < bestAcquisition {
				bestAcquisition = acquisition
				nextParams = candidate
			}
		}

		// Every candidate was disqualified (or NumCandidates is 0): fall
		// back to a uniform draw rather than stalling.
		if nextParams == nil {
			nextParams = randomParams()
		}

		c := evaluate(nextParams)

		model.Observe(asFloats(nextParams), c)
		updateBest(nextParams, c)

		sendProgress("Optimization", i+1, config.Iterations, nextParams, c)
	}

	return bestParams, nil
}
