package tune

import "errors"

//////
// Const, vars, types.
//////

// All errors returned by this package are local precondition failures and
// wrap one of the sentinels below, so callers can classify them with
// errors.Is without parsing messages.
var (
	// ErrInvalidSpace indicates a parameter space that cannot be enumerated:
	// a parameter whose candidate list is empty, or a space with no
	// parameters at all. Raised at grid-construction time, never deferred.
	ErrInvalidSpace = errors.New("invalid parameter space")

	// ErrInvalidArgument indicates an out-of-domain argument, such as a
	// negative sample count for random search or mismatched observation
	// shapes passed to the Gaussian Process.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSingularMatrix indicates that the observed-point covariance matrix
	// is not invertible, typically caused by duplicate observed inputs or a
	// degenerate kernel.
	ErrSingularMatrix = errors.New("singular covariance matrix")

	// ErrIllConditioned indicates that the observed-point covariance matrix
	// is technically invertible but so close to singular that the posterior
	// would be dominated by floating-point noise. Surfaced instead of
	// silently returning NaN/Inf results.
	ErrIllConditioned = errors.New("ill-conditioned covariance matrix")

	// ErrUnknownStrategy indicates a categorical strategy token that no
	// implementation was registered for.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrNoSuccessfulTrial indicates that every evaluated experiment in a
	// search failed, leaving nothing to select a best result from.
	ErrNoSuccessfulTrial = errors.New("no successful trial")
)
