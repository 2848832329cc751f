// Package strength implements the Cassowary preference hierarchy: a total
// ordering on constraint priorities, with a distinguished Required level
// that dominates every other level.
//
// A Strength is internally a single float64 chosen so that any Strong
// dominates any Medium, any Medium dominates any Weak, and Required
// dominates all of them:
//
//	weak     = w
//	medium   = w * 1e3
//	strong   = w * 1e6
//	required = 1e9
package strength

import (
	"fmt"

	"github.com/katalvlaran/casso"
)

// Strength orders constraint preferences. The zero value is not a valid
// Strength; use one of the constructors below.
type Strength struct {
	weight float64
}

const (
	weakScale     = 1.0
	mediumScale   = 1e3
	strongScale   = 1e6
	requiredValue = 1e9

	// strongWeakMax is the exclusive upper bound on the weight factor for
	// Strong and Medium strengths; Weak allows a ten-times-larger range.
	strongWeakMax = 1000.0
	weakMax       = 10000.0
	minWeight     = 1.0
)

// Required returns the strength that must always be satisfied exactly.
func Required() Strength { return Strength{weight: requiredValue} }

// Strong returns the default weight-1 strong preference.
func Strong() Strength { return Strength{weight: strongScale} }

// Medium returns the default weight-1 medium preference.
func Medium() Strength { return Strength{weight: mediumScale} }

// Weak returns the default weight-1 weak preference.
func Weak() Strength { return Strength{weight: weakScale} }

// StrongWeighted returns a strong preference scaled by weight, which must
// lie in [1, 1000); otherwise it returns ErrBadWeight.
func StrongWeighted(weight float64) (Strength, error) {
	if err := checkWeight(weight, strongWeakMax); err != nil {
		return Strength{}, fmt.Errorf("strength.StrongWeighted: %w", err)
	}
	return Strength{weight: weight * strongScale}, nil
}

// MediumWeighted returns a medium preference scaled by weight, which must
// lie in [1, 1000); otherwise it returns ErrBadWeight.
func MediumWeighted(weight float64) (Strength, error) {
	if err := checkWeight(weight, strongWeakMax); err != nil {
		return Strength{}, fmt.Errorf("strength.MediumWeighted: %w", err)
	}
	return Strength{weight: weight * mediumScale}, nil
}

// WeakWeighted returns a weak preference scaled by weight, which must lie
// in [1, 10000); otherwise it returns ErrBadWeight.
func WeakWeighted(weight float64) (Strength, error) {
	if err := checkWeight(weight, weakMax); err != nil {
		return Strength{}, fmt.Errorf("strength.WeakWeighted: %w", err)
	}
	return Strength{weight: weight * weakScale}, nil
}

func checkWeight(weight, max float64) error {
	if weight < minWeight || weight >= max {
		return casso.ErrBadWeight
	}
	return nil
}

// Weight returns the strength's raw float64 weight. Exposed so Solver can
// add it directly into the objective row.
func (s Strength) Weight() float64 { return s.weight }

// IsRequired reports whether s is the Required strength.
func (s Strength) IsRequired() bool { return s.weight == requiredValue }

// Equal reports whether s and o carry the same weight.
func (s Strength) Equal(o Strength) bool { return s.weight == o.weight }

// Less reports whether s is a weaker preference than o.
func (s Strength) Less(o Strength) bool { return s.weight < o.weight }

// LessOrEqual reports whether s is no stronger a preference than o.
func (s Strength) LessOrEqual(o Strength) bool { return s.weight <= o.weight }

// Negate returns a strength with the opposite-signed weight.
func (s Strength) Negate() Strength { return Strength{weight: -s.weight} }

// String renders the strength for diagnostics and log fields.
func (s Strength) String() string {
	switch {
	case s.weight == requiredValue:
		return "required"
	case s.weight >= strongScale:
		return fmt.Sprintf("strong(%g)", s.weight/strongScale)
	case s.weight >= mediumScale:
		return fmt.Sprintf("medium(%g)", s.weight/mediumScale)
	default:
		return fmt.Sprintf("weak(%g)", s.weight/weakScale)
	}
}
