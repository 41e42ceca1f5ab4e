package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the tolerance used for float64 comparisons and for deciding
// that a vector has no usable direction.
const (
	Epsilon = 1e-9
)

// ErrDegenerateVector is returned by the checked normalization helpers when
// the vector is too short to carry a direction.
var ErrDegenerateVector = errors.New("vector has zero length")

// Vector2D represents a 2D vector or point in cartesian space.
// It is a plain value: every method returns a new vector and never mutates the receiver.
type Vector2D struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// NewVectorPolar creates a new Vector2D from polar coordinates.
// theta is in radians.
func NewVectorPolar(radius, theta float64) Vector2D {
	sin, cos := math.Sincos(theta)
	x := radius * cos
	y := radius * sin

	// Snap floating point residue near the axes
	if math.Abs(x) < Epsilon {
		x = 0
	}
	if math.Abs(y) < Epsilon {
		y = 0
	}

	return Vector2D{X: x, Y: y}
}

// String implements the fmt.Stringer interface.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts the other vector from the current vector.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// Use it for comparisons, it avoids the square root.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len calculates the magnitude (length) of the vector.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether the vector is too short to have a direction.
func (v Vector2D) IsZero() bool {
	return v.Len() < Epsilon
}

// Normalize returns a unit vector in the same direction.
// Returns the zero vector if the length is effectively zero.
func (v Vector2D) Normalize() Vector2D {
	l := v.Len()
	if l < Epsilon {
		return Vector2D{0, 0}
	}
	return v.Mul(1 / l)
}

// NormalizeOr returns a unit vector in the same direction, or fallback
// when v has no direction. fallback is returned as given.
func (v Vector2D) NormalizeOr(fallback Vector2D) Vector2D {
	l := v.Len()
	if l < Epsilon {
		return fallback
	}
	return v.Mul(1 / l)
}

// Unit is the checked form of Normalize.
func (v Vector2D) Unit() (Vector2D, error) {
	l := v.Len()
	if l < Epsilon {
		return Vector2D{}, ErrDegenerateVector
	}
	return v.Mul(1 / l), nil
}

// WithLen returns a vector with the direction of v and magnitude m.
// Like Normalize, a zero vector stays zero.
func (v Vector2D) WithLen(m float64) Vector2D {
	return v.Normalize().Mul(m)
}

// WithLenOr returns a vector with the direction of v and magnitude m.
// When v has no direction the direction of fallback is used instead, and
// when fallback has none either the result points along +X.
func (v Vector2D) WithLenOr(m float64, fallback Vector2D) Vector2D {
	dir := v.NormalizeOr(fallback.NormalizeOr(Vector2D{1, 0}))
	return dir.Mul(m)
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector2D) DistanceSquaredTo(other Vector2D) float64 {
	return v.Sub(other).LenSqr()
}

// Angle returns the angle (in radians) of the vector relative to the X-axis.
// Range: [-Pi, Pi]
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Lerp (Linear Interpolate) calculates a point between v and target based on t [0, 1].
func (v Vector2D) Lerp(target Vector2D, t float64) Vector2D {
	// v + (target - v) * t
	return v.Add(target.Sub(v).Mul(t))
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}
