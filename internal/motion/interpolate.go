package motion

import (
	"errors"
	"fmt"
	"math"
)

// Extrapolate controls the output for inputs outside the input range
type Extrapolate int

const (
	// Extend continues the nearest segment linearly
	Extend Extrapolate = iota
	// Clamp holds the nearest output value
	Clamp
	// Identity returns the input unchanged
	Identity
)

// String returns the extrapolation name
func (e Extrapolate) String() string {
	switch e {
	case Extend:
		return "extend"
	case Clamp:
		return "clamp"
	case Identity:
		return "identity"
	default:
		return fmt.Sprintf("Extrapolate(%d)", int(e))
	}
}

// Easing maps linear segment progress in [0,1] to eased progress
type Easing func(t float64) float64

// Common easings
var (
	Linear    Easing = func(t float64) float64 { return t }
	EaseIn    Easing = func(t float64) float64 { return t * t }
	EaseOut   Easing = func(t float64) float64 { return 1 - (1-t)*(1-t) }
	EaseInOut Easing = func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - math.Pow(-2*t+2, 2)/2
	}
	CubicIn  Easing = func(t float64) float64 { return t * t * t }
	CubicOut Easing = func(t float64) float64 { return 1 - math.Pow(1-t, 3) }
)

type interpolateOptions struct {
	left   Extrapolate
	right  Extrapolate
	easing Easing
}

// Option configures Interpolate
type Option func(*interpolateOptions)

// Clamped clamps both sides
func Clamped() Option {
	return func(o *interpolateOptions) {
		o.left = Clamp
		o.right = Clamp
	}
}

// ExtrapolateLeft sets the behavior below the input range
func ExtrapolateLeft(e Extrapolate) Option {
	return func(o *interpolateOptions) { o.left = e }
}

// ExtrapolateRight sets the behavior above the input range
func ExtrapolateRight(e Extrapolate) Option {
	return func(o *interpolateOptions) { o.right = e }
}

// WithEasing applies e to the progress within each segment
func WithEasing(e Easing) Option {
	return func(o *interpolateOptions) { o.easing = e }
}

// Range validation errors
var (
	ErrRangeTooShort      = errors.New("input range needs at least 2 values")
	ErrRangeMismatch      = errors.New("input and output ranges differ in length")
	ErrRangeNotFinite     = errors.New("ranges must contain finite numbers")
	ErrRangeNotIncreasing = errors.New("input range must be strictly increasing")
)

// ValidateRanges reports why in and out cannot be interpolated, or nil
func ValidateRanges(in, out []float64) error {
	if len(in) < 2 {
		return ErrRangeTooShort
	}
	if len(in) != len(out) {
		return fmt.Errorf("%w: %d inputs, %d outputs", ErrRangeMismatch, len(in), len(out))
	}
	for i := range in {
		if !isFinite(in[i]) || !isFinite(out[i]) {
			return fmt.Errorf("%w: index %d", ErrRangeNotFinite, i)
		}
		if i > 0 && in[i] <= in[i-1] {
			return fmt.Errorf("%w: %v then %v", ErrRangeNotIncreasing, in[i-1], in[i])
		}
	}
	return nil
}

// Interpolate maps x from the piecewise linear input range to the output
// range. Ranges must satisfy ValidateRanges; malformed ranges are a
// programming error and panic.
func Interpolate(x float64, in, out []float64, opts ...Option) float64 {
	if err := ValidateRanges(in, out); err != nil {
		panic(fmt.Sprintf("motion.Interpolate: %v", err))
	}

	o := interpolateOptions{easing: Linear}
	for _, opt := range opts {
		opt(&o)
	}

	// segment whose upper bound is the first input >= x, last segment otherwise
	i := 1
	for ; i < len(in)-1; i++ {
		if in[i] >= x {
			break
		}
	}

	return interpolateSegment(x, in[i-1], in[i], out[i-1], out[i], o)
}

func interpolateSegment(x, inMin, inMax, outMin, outMax float64, o interpolateOptions) float64 {
	result := x

	if result < inMin {
		switch o.left {
		case Identity:
			return result
		case Clamp:
			result = inMin
		}
	}
	if result > inMax {
		switch o.right {
		case Identity:
			return result
		case Clamp:
			result = inMax
		}
	}

	if outMin == outMax {
		return outMin
	}

	progress := (result - inMin) / (inMax - inMin)
	progress = o.easing(progress)
	return progress*(outMax-outMin) + outMin
}

// Fade is a clamped two-point interpolation, the most common case
func Fade(frame, start, end, from, to float64) float64 {
	return Interpolate(frame, []float64{start, end}, []float64{from, to}, Clamped())
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
