package tune

import (
	"fmt"
	"sort"
	"sync"
)

//////
// Const, vars, types.
//////

// Canonical tokens for the optimizer and loss strategies a training
// harness commonly dispatches on. Nothing in this package interprets them;
// they exist so spaces and registries built by different callers agree on
// spelling.
const (
	OptimizerSGD      = "sgd"
	OptimizerMomentum = "momentum"
	OptimizerAdam     = "adam"
	OptimizerRMSProp  = "rmsprop"

	LossCrossEntropy = "cross_entropy"
	LossMSE          = "mse"
	LossNLL          = "nll"
)

// Registry maps categorical strategy tokens to implementations. It is the
// dispatch side of carrying strategies through a parameter space as
// Category values instead of as opaque callables: the search core only
// ever sees tokens, and the training harness resolves them here at the
// edge.
//
// Type Parameter:
//   - T: The implementation type (an optimizer constructor, a loss
//     function, ...)
//
// Usage example:
//
//	optimizers := NewRegistry[OptimizerFactory]()
//	optimizers.Register(OptimizerSGD, newSGD)
//	optimizers.Register(OptimizerAdam, newAdam)
//
//	factory, err := optimizers.ResolveValue(exp["optimizer"])
//
// Thread safety: Register and Resolve may be called concurrently; the
// usual pattern registers everything up front and resolves during the
// search.
type Registry[T any] struct {
	// mu protects entries.
	mu sync.RWMutex

	// entries maps token to implementation.
	entries map[string]T
}

//////
// Methods.
//////

// Register binds a token to an implementation, replacing any previous
// binding for the same token.
func (r *Registry[T]) Register(token string, impl T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[token] = impl
}

// Resolve returns the implementation bound to token, or ErrUnknownStrategy
// if nothing was registered for it.
func (r *Registry[T]) Resolve(token string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	impl, ok := r.entries[token]
	if !ok {
		var zero T

		return zero, fmt.Errorf("%w: %q", ErrUnknownStrategy, token)
	}

	return impl, nil
}

// ResolveValue resolves a categorical or handle Value drawn from an
// Experiment. Numeric values cannot name a strategy and return
// ErrInvalidArgument.
func (r *Registry[T]) ResolveValue(v Value) (T, error) {
	token, ok := v.Categorical()
	if !ok {
		var zero T

		return zero, fmt.Errorf("%w: numeric value cannot name a strategy", ErrInvalidArgument)
	}

	return r.Resolve(token)
}

// Tokens returns the registered tokens in sorted order.
func (r *Registry[T]) Tokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := make([]string, 0, len(r.entries))
	for token := range r.entries {
		tokens = append(tokens, token)
	}

	sort.Strings(tokens)

	return tokens
}

//////
// Factory.
//////

// NewRegistry returns an empty strategy registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]T)}
}
