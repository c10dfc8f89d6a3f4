package tune

import (
	"fmt"
	"math/rand"
	"time"
)

//////
// Const, vars, types.
//////

// Space is an ordered mapping from hyperparameter name to its list of
// candidate values. Declaration order matters: it fixes the enumeration
// order of FullGrid, with the last-declared parameter varying fastest.
//
// A Space is built once with NewSpace and Add, and is read-only afterwards;
// the grid generators never mutate it.
//
// Usage example:
//
//	space := NewSpace().
//	    Add("lr", Number(0.001), Number(0.01)).
//	    Add("optimizer", Category("sgd"), Category("adam"))
//
//	grid, err := FullGrid(space) // 4 experiments, "optimizer" varies fastest
type Space struct {
	// names holds parameter names in declaration order.
	names []string

	// values maps each name to its candidate list.
	values map[string][]Value
}

// Experiment assigns one concrete value to every parameter of a Space,
// representing a single point of the Cartesian product. Experiments are
// produced by the grid generators and treated as immutable by everything in
// this package; an external training harness consumes them.
type Experiment map[string]Value

//////
// Factory.
//////

// NewSpace returns an empty parameter space ready for Add calls.
func NewSpace() *Space {
	return &Space{values: make(map[string][]Value)}
}

//////
// Methods.
//////

// Add declares a parameter with its candidate values and returns the space
// for chaining. Re-declaring an existing name replaces its candidates but
// keeps the original declaration position, so grid ordering stays stable.
//
// Add copies the candidate slice, so the caller may reuse or modify its
// own slice afterwards.
func (s *Space) Add(name string, candidates ...Value) *Space {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}

	s.values[name] = append([]Value(nil), candidates...)

	return s
}

// Names returns the parameter names in declaration order. The returned
// slice is a copy.
func (s *Space) Names() []string {
	return append([]string(nil), s.names...)
}

// Candidates returns the candidate values declared for name, or nil for an
// unknown parameter. The returned slice is a copy.
func (s *Space) Candidates(name string) []Value {
	return append([]Value(nil), s.values[name]...)
}

// Size returns the number of points in the full Cartesian product: the
// product of the candidate-list lengths. A space with an empty candidate
// list has size zero.
func (s *Space) Size() int {
	if len(s.names) == 0 {
		return 0
	}

	size := 1
	for _, name := range s.names {
		size *= len(s.values[name])
	}

	return size
}

// validate checks the enumeration preconditions: at least one parameter,
// and no empty candidate list.
func (s *Space) validate() error {
	if s == nil || len(s.names) == 0 {
		return fmt.Errorf("%w: no parameters declared", ErrInvalidSpace)
	}

	for _, name := range s.names {
		if len(s.values[name]) == 0 {
			return fmt.Errorf("%w: parameter %q has no candidate values", ErrInvalidSpace, name)
		}
	}

	return nil
}

//////
// Exported functionalities.
//////

// FullGrid enumerates every point of the space's Cartesian product, in
// odometer order: the last-declared parameter varies fastest, the
// first-declared slowest. The result is deterministic — two calls with the
// same space produce identical ordered output — and its length equals
// space.Size().
//
// Returns ErrInvalidSpace if any parameter has an empty candidate list, or
// if the space declares no parameters at all. The check happens up front,
// before any experiment is produced.
//
// Usage example:
//
//	space := NewSpace().
//	    Add("a", Number(1), Number(2)).
//	    Add("b", Number(10), Number(20))
//
//	grid, _ := FullGrid(space)
//	// [{a:1 b:10} {a:1 b:20} {a:2 b:10} {a:2 b:20}]
//
// The full grid grows multiplicatively with the number of parameters;
// consider RandomGrid when the product is too large to evaluate
// exhaustively.
func FullGrid(space *Space) ([]Experiment, error) {
	if err := space.validate(); err != nil {
		return nil, err
	}

	grid := make([]Experiment, 0, space.Size())

	// idx is the odometer: one digit per parameter, the last digit
	// incrementing on every step.
	idx := make([]int, len(space.names))

	for {
		exp := make(Experiment, len(space.names))
		for i, name := range space.names {
			exp[name] = space.values[name][idx[i]]
		}

		grid = append(grid, exp)

		// Advance the odometer; carry leftwards on overflow.
		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(space.values[space.names[i]]) {
				break
			}

			idx[i] = 0
		}

		// Every digit carried over: enumeration is complete.
		if i < 0 {
			break
		}
	}

	return grid, nil
}

// RandomGrid draws n experiments by sampling independently and uniformly,
// with replacement, from the space's full Cartesian product. Duplicates
// across the n draws are permitted and, for n larger than the grid size,
// guaranteed.
//
// Parameters:
// - space: The parameter space to sample from
// - n: Number of experiments to draw (must be >= 0)
// - rng: Random source; pass a seeded *rand.Rand for reproducible draws,
//   or nil for a time-seeded source that varies run to run
//
// Returns ErrInvalidSpace under the same conditions as FullGrid, and
// ErrInvalidArgument for a negative n. Every returned experiment is an
// element of FullGrid(space).
//
// Sampling one candidate per parameter independently is equivalent to
// sampling uniformly from the full product, without materializing it.
func RandomGrid(space *Space, n int, rng *rand.Rand) ([]Experiment, error) {
	if err := space.validate(); err != nil {
		return nil, err
	}

	if n < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", ErrInvalidArgument, n)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	draws := make([]Experiment, 0, n)

	for i := 0; i < n; i++ {
		exp := make(Experiment, len(space.names))
		for _, name := range space.names {
			candidates := space.values[name]
			exp[name] = candidates[rng.Intn(len(candidates))]
		}

		draws = append(draws, exp)
	}

	return draws, nil
}
