// Package tune provides the computational kernels of hyperparameter
// search: exhaustive and random enumeration of parameter grids, and exact
// Gaussian Process posterior computation for Bayesian optimization. The
// training side — datasets, models, metrics — stays with the caller; this
// package generates the experiments to run and models the results.
//
// # Features
//
//   - Parameter grids: ordered spaces of numeric, categorical, and opaque
//     values, enumerated exhaustively in deterministic odometer order or
//     sampled uniformly with replacement
//   - Gaussian Process regression: exact zero-mean posterior mean and
//     covariance under any covariance kernel, with sequential
//     (point-by-point) conditioning and singularity/ill-conditioning
//     detection instead of silent NaNs
//   - Search harnesses: grid search and random search with max-by-metric
//     selection, plus a Bayesian optimization loop combining the Gaussian
//     Process with acquisition functions (UCB, PI, EI, Thompson Sampling)
//   - Strategy registry: optimizer and loss choices travel through the
//     grid as categorical tokens and are resolved to implementations at
//     the harness edge
//   - Explicit randomness: every stochastic operation takes a *rand.Rand,
//     so seeded runs reproduce exactly and nothing depends on ambient
//     process-wide seed state
//   - Progress monitoring: real-time updates over channels, never blocking
//     the search
//
// # Enumerating a grid
//
//	space := tune.NewSpace().
//	    Add("lr", tune.Number(0.001), tune.Number(0.01), tune.Number(0.1)).
//	    Add("batch", tune.Number(32), tune.Number(64)).
//	    Add("optimizer", tune.Category(tune.OptimizerSGD), tune.Category(tune.OptimizerAdam))
//
//	grid, err := tune.FullGrid(space)     // all 12 combinations, "optimizer" fastest
//	draws, err := tune.RandomGrid(space, 5, rng) // 5 uniform draws, with replacement
//
// Running the search end to end:
//
//	result, err := tune.GridSearch(tune.SearchConfig{}, func(exp tune.Experiment) (float64, error) {
//	    return trainAndValidate(exp) // validation accuracy, higher is better
//	}, space)
//	fmt.Println(result.Best, result.BestMetric)
//
// # Gaussian Process posteriors
//
// Condition computes the textbook zero-mean posterior from scratch on each
// call:
//
//	k := tune.SquaredExponential(1, 10)
//	mean, cov, err := tune.Condition(k, query, observedX, observedY)
//
// The stateful GP type supports the sequential pattern — predict, sample,
// observe, repeat:
//
//	gp := tune.NewGP(k)
//	for _, x := range queries {
//	    y, err := gp.Sample(x, rng)
//	    if err != nil {
//	        return err
//	    }
//	    gp.Observe(x, y)
//	}
//
// With no observations the posterior is the prior (zero mean, kernel
// covariance). A singular observed covariance — duplicate inputs are the
// usual cause — surfaces as ErrSingularMatrix, and near-singular ones as
// ErrIllConditioned.
//
// # Bayesian optimization
//
// OptimizeHyperparameters runs the standard black-box tuning loop: seed
// the model with random evaluations, then repeatedly evaluate the
// candidate the acquisition function likes best.
//
//	best, err := tune.OptimizeHyperparameters(
//	    tune.DefaultConfig(),
//	    func(params ...float64) (float64, error) { return validationLoss(params[0], params[1]) },
//	    tune.ParameterRange[float64]{Min: 0.0001, Max: 0.1},
//	    tune.ParameterRange[float64]{Min: 0, Max: 1},
//	)
//
// # Thread safety
//
// The grid generators and Condition are pure functions, safe to call from
// any number of goroutines. GP guards its observation set with an RWMutex,
// and Registry its entries. Searches are sequential loops; run independent
// searches in parallel with separate configs and random sources.
package tune
