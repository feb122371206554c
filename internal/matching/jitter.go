package matching

import "math/rand/v2"

// JitterSource yields values in [0, 1). *rand.Rand satisfies it.
type JitterSource interface {
	Float64() float64
}

// JitterFunc adapts a plain function to JitterSource.
type JitterFunc func() float64

// Float64 implements JitterSource.
func (f JitterFunc) Float64() float64 { return f() }

// DefaultJitter draws from the shared math/rand/v2 generator, which is safe for
// concurrent use.
var DefaultJitter JitterSource = JitterFunc(rand.Float64)

// FixedJitter returns a source that always yields v.
func FixedJitter(v float64) JitterSource {
	return JitterFunc(func() float64 { return v })
}

// NoJitter pins the diversity addend to zero.
func NoJitter() JitterSource {
	return FixedJitter(0)
}
