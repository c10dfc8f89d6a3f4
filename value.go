package tune

import (
	"strconv"

	"golang.org/x/exp/constraints"
)

//////
// Const, vars, types.
//////

// ValueKind discriminates the payload carried by a Value.
type ValueKind int

const (
	// KindNumber marks a numeric hyperparameter value (learning rate,
	// batch size, momentum, ...). Stored as float64; integers convert
	// exactly.
	KindNumber ValueKind = iota

	// KindCategory marks a categorical choice drawn from a finite set of
	// tokens ("adam", "sgd", "relu", ...). Resolved to a concrete
	// implementation by the caller, typically through a Registry.
	KindCategory

	// KindHandle marks an opaque handle token: an identifier the search
	// core carries through untouched and never interprets.
	KindHandle
)

// Value is a tagged-variant hyperparameter value. Exactly one payload field
// is meaningful, selected by Kind. Values are small, comparable, and
// immutable once constructed, so they are safe to share freely between
// goroutines and to use as map values in Experiments.
//
// Construct values with Number, Category, or Handle rather than with struct
// literals; the constructors keep Kind and payload consistent.
type Value struct {
	// Kind selects which payload field below is meaningful.
	Kind ValueKind

	// Num holds the numeric payload when Kind is KindNumber.
	Num float64

	// Token holds the categorical or handle token when Kind is
	// KindCategory or KindHandle.
	Token string
}

//////
// Factories.
//////

// Number wraps a numeric hyperparameter value. Accepts any integer or float
// type; the payload is stored as float64.
//
// Usage example:
//
//	space := NewSpace().
//	    Add("lr", Number(0.001), Number(0.01), Number(0.1)).
//	    Add("batch", Number(32), Number(64))
func Number[T constraints.Integer | constraints.Float](v T) Value {
	return Value{Kind: KindNumber, Num: float64(v)}
}

// Category wraps a categorical choice token, such as an optimizer or loss
// name. The token itself is opaque to the search core; see Registry for the
// dispatch side.
func Category(token string) Value {
	return Value{Kind: KindCategory, Token: token}
}

// Handle wraps an opaque handle token that the search core carries through
// without interpretation.
func Handle(token string) Value {
	return Value{Kind: KindHandle, Token: token}
}

//////
// Methods.
//////

// Float returns the numeric payload. The second return is false when the
// value is not numeric.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}

	return v.Num, true
}

// Int returns the numeric payload truncated to int. The second return is
// false when the value is not numeric.
func (v Value) Int() (int, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}

	return int(v.Num), true
}

// Categorical returns the token payload. The second return is false when
// the value is numeric.
func (v Value) Categorical() (string, bool) {
	if v.Kind == KindNumber {
		return "", false
	}

	return v.Token, true
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	return v == o
}

// String renders the payload: numbers in shortest-round-trip form, tokens
// verbatim.
func (v Value) String() string {
	if v.Kind == KindNumber {
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}

	return v.Token
}
