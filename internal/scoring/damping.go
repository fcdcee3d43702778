package scoring

import (
	"fmt"
	"math"

	"github.com/spigell/rolecolor/internal/framework"
)

const (
	defaultDampingCap   = 2.2
	defaultDampingDecay = 0.7
)

// Damping is the diminishing-returns curve applied to repeated keyword
// occurrences:
//
//	f(n) = 1 + (Cap-1) * (1 - Decay^(n-1))
//
// f(1) is exactly 1, every further occurrence adds a geometrically smaller
// amount, and f never exceeds Cap.
type Damping struct {
	Cap   float64 `mapstructure:"cap" json:"cap"`
	Decay float64 `mapstructure:"decay" json:"decay"`
}

// DefaultDamping returns a curve that saturates at 2.2x the base weight.
func DefaultDamping() Damping {
	return Damping{Cap: defaultDampingCap, Decay: defaultDampingDecay}
}

// Validate checks that the curve is bounded, increasing and concave.
func (d Damping) Validate() error {
	if math.IsNaN(d.Cap) || math.IsInf(d.Cap, 0) || d.Cap <= 1 {
		return fmt.Errorf("%w: damping cap must be a finite number greater than 1, got %v", framework.ErrConfiguration, d.Cap)
	}
	if math.IsNaN(d.Decay) || d.Decay <= 0 || d.Decay >= 1 {
		return fmt.Errorf("%w: damping decay must be between 0 and 1 exclusive, got %v", framework.ErrConfiguration, d.Decay)
	}
	// The second occurrence must not add more than the first one did.
	if (d.Cap-1)*(1-d.Decay) > 1 {
		return fmt.Errorf("%w: damping cap %v with decay %v grows faster than linear on the second occurrence", framework.ErrConfiguration, d.Cap, d.Decay)
	}
	return nil
}

// Factor returns f(n). Non-positive counts yield 0.
func (d Damping) Factor(n int) float64 {
	if n <= 0 {
		return 0
	}
	return 1 + (d.Cap-1)*(1-math.Pow(d.Decay, float64(n-1)))
}

// Contribution returns the damped score of a keyword with base weight w
// matched n times.
func (d Damping) Contribution(weight float64, n int) float64 {
	return weight * d.Factor(n)
}

// Increment returns how much the n-th occurrence adds to the factor.
func (d Damping) Increment(n int) float64 {
	return d.Factor(n) - d.Factor(n-1)
}
