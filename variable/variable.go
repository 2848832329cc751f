// Package variable implements the external variable identity Solver reads
// from and writes to: a quantity the client cares about, not a value
// container. Many client-side references can share one identity; equality
// is by identity, never by the numbers they currently hold.
package variable

import "github.com/google/uuid"

// Variable is an identity that the solver assigns a value to. The zero
// value is not usable; construct with New. Variable is always used by
// pointer: copying a *Variable copies the reference, not the identity,
// matching rhea's shared-pointer variable semantics.
type Variable struct {
	// id is an opaque debug identity, distinct from the pointer identity
	// that Solver and Constraint actually key on. It lets two variables
	// sharing a human-readable Name stay distinguishable in log output.
	id    uuid.UUID
	name  string
	value float64
}

// New returns a fresh Variable named name with initial value 0.
func New(name string) *Variable {
	return &Variable{id: uuid.New(), name: name}
}

// WithValue returns a fresh Variable named name, initialized to value.
func WithValue(name string, value float64) *Variable {
	return &Variable{id: uuid.New(), name: name, value: value}
}

// ID returns v's debug identity. It has no bearing on equality: two
// distinct *Variable values always have distinct ID()s, but Solver and
// Constraint compare variables by pointer (Is), never by ID.
func (v *Variable) ID() uuid.UUID { return v.id }

// Name returns v's human-readable label, purely for diagnostics.
func (v *Variable) Name() string { return v.name }

// Value returns v's most recently solved-for value.
func (v *Variable) Value() float64 { return v.value }

// SetValue overwrites v's stored value. Solver calls this during
// UpdateExternalVariables; callers should not mutate a Variable's value
// while a Solver holds a reference to it mid-operation (spec §5).
func (v *Variable) SetValue(value float64) { v.value = value }

// Is reports whether v and o are the same identity.
func (v *Variable) Is(o *Variable) bool { return v == o }

// String renders the variable for diagnostics.
func (v *Variable) String() string {
	if v.name != "" {
		return v.name
	}
	return v.id.String()
}
