package tune

import (
	"fmt"
	"math"
)

//////
// Exported functionalities.
//////

// GridSearch evaluates the objective at every point of the space's full
// Cartesian product, in FullGrid order, and selects the experiment with
// the highest metric. Ties go to the earliest evaluation ("index of max"
// semantics).
//
// Parameters:
// - config: Search configuration (progress channel; RNG is unused here)
// - objective: Metric function, higher is better
// - space: The parameter space to enumerate
//
// Failed evaluations are recorded in the result's Trials with their error
// and excluded from best-selection. Errors:
// - ErrInvalidSpace: the space cannot be enumerated
// - ErrNoSuccessfulTrial: every evaluation failed
//
// Usage example:
//
//	space := NewSpace().
//	    Add("lr", Number(0.001), Number(0.01), Number(0.1)).
//	    Add("optimizer", Category("sgd"), Category("adam"))
//
//	result, err := GridSearch(SearchConfig{}, func(exp Experiment) (float64, error) {
//	    return validateModel(exp) // e.g. validation accuracy
//	}, space)
func GridSearch(config SearchConfig, objective Objective, space *Space) (*SearchResult, error) {
	grid, err := FullGrid(space)
	if err != nil {
		return nil, err
	}

	return runTrials("GridSearch", config, objective, grid)
}

// RandomSearch draws n experiments uniformly with replacement from the
// space's Cartesian product (see RandomGrid) and evaluates each one,
// selecting the best by the same max-by-metric rule as GridSearch. The
// same experiment may be drawn — and evaluated — more than once.
//
// config.RNG seeds the draws; supply a seeded *rand.Rand to make the whole
// search reproducible. Errors as for GridSearch, plus ErrInvalidArgument
// for a negative n.
func RandomSearch(config SearchConfig, objective Objective, space *Space, n int) (*SearchResult, error) {
	draws, err := RandomGrid(space, n, config.RNG)
	if err != nil {
		return nil, err
	}

	return runTrials("RandomSearch", config, objective, draws)
}

//////
// Helper functions.
//////

// runTrials evaluates the experiments in order, tracking the running best
// and emitting one non-blocking progress update per evaluation.
func runTrials(phase string, config SearchConfig, objective Objective, experiments []Experiment) (*SearchResult, error) {
	result := &SearchResult{
		BestMetric: math.Inf(-1),
		Trials:     make([]Trial, 0, len(experiments)),
	}

	for i, exp := range experiments {
		metric, err := objective(exp)

		result.Trials = append(result.Trials, Trial{Experiment: exp, Metric: metric, Err: err})

		// Strict > keeps the first of any tied maxima.
		if err == nil && (result.Best == nil || metric > result.BestMetric) {
			result.Best = exp
			result.BestMetric = metric
		}

		if config.ProgressChan != nil {
			update := ProgressUpdate{
				Phase:            phase,
				CurrentIteration: i + 1,
				TotalIterations:  len(experiments),
				Experiment:       exp,
				LastValue:        metric,
				BestValue:        result.BestMetric,
			}

			select {
			case config.ProgressChan <- update:
			default:
				// Skip update if channel is full.
			}
		}
	}

	if result.Best == nil {
		return nil, fmt.Errorf("%w: %d experiments evaluated", ErrNoSuccessfulTrial, len(experiments))
	}

	return result, nil
}
