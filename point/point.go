// Package point is a convenience pairing of two external variables for
// 2D layout problems, ported from rhea's point.hpp.
package point

import "github.com/katalvlaran/casso/variable"

// Point bundles an x and y variable so callers building layout
// constraints don't have to pass the pair around separately.
type Point struct {
	X *variable.Variable
	Y *variable.Variable
}

// New returns a Point over freshly named variables name+".x"/name+".y".
func New(name string) Point {
	return Point{X: variable.New(name + ".x"), Y: variable.New(name + ".y")}
}

// SetXY overwrites both coordinates directly, bypassing the solver. Useful
// for seeding an initial layout before any constraints are installed.
func (p Point) SetXY(x, y float64) {
	p.X.SetValue(x)
	p.Y.SetValue(y)
}

// XValue returns the x variable's current value.
func (p Point) XValue() float64 { return p.X.Value() }

// YValue returns the y variable's current value.
func (p Point) YValue() float64 { return p.Y.Value() }
