package motion

import "math"

// SpringConfig is the physical model of a spring
type SpringConfig struct {
	Damping   float64 `json:"damping" yaml:"damping"`
	Stiffness float64 `json:"stiffness" yaml:"stiffness"`
	Mass      float64 `json:"mass" yaml:"mass"`
	// OvershootClamping stops the value at To instead of bouncing past it
	OvershootClamping bool `json:"overshoot_clamping,omitempty" yaml:"overshoot_clamping,omitempty"`
}

// DefaultSpring is damping 10, stiffness 100, mass 1
var DefaultSpring = SpringConfig{Damping: 10, Stiffness: 100, Mass: 1}

func (c SpringConfig) withDefaults() SpringConfig {
	if c.Damping <= 0 {
		c.Damping = DefaultSpring.Damping
	}
	if c.Stiffness <= 0 {
		c.Stiffness = DefaultSpring.Stiffness
	}
	if c.Mass <= 0 {
		c.Mass = DefaultSpring.Mass
	}
	return c
}

// SpringParams describes one spring evaluation
type SpringParams struct {
	Frame  float64
	FPS    float64
	Config SpringConfig
	// Delay is subtracted from Frame before evaluating
	Delay float64
	// From and To default to 0 and 1. Set To explicitly to spring to 0.
	From float64
	To   *float64
}

// Spring evaluates a damped harmonic oscillator released at From with no
// initial velocity and settling on To, at t = frame/fps seconds. Frames
// at or before zero return From.
func Spring(p SpringParams) float64 {
	to := 1.0
	if p.To != nil {
		to = *p.To
	}
	from := p.From
	frame := p.Frame - p.Delay
	if frame <= 0 || p.FPS <= 0 {
		return from
	}

	cfg := p.Config.withDefaults()
	t := frame / p.FPS

	zeta := cfg.Damping / (2 * math.Sqrt(cfg.Stiffness*cfg.Mass))
	omega0 := math.Sqrt(cfg.Stiffness / cfg.Mass)
	x0 := to - from
	const v0 = 0.0

	var position float64
	switch {
	case zeta < 1:
		omega1 := omega0 * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-zeta * omega0 * t)
		position = to - envelope*((v0+zeta*omega0*x0)/omega1*math.Sin(omega1*t)+x0*math.Cos(omega1*t))
	case zeta == 1:
		envelope := math.Exp(-omega0 * t)
		position = to - envelope*(x0+(v0+omega0*x0)*t)
	default:
		omega2 := omega0 * math.Sqrt(zeta*zeta-1)
		envelope := math.Exp(-zeta * omega0 * t)
		position = to - envelope*((v0+zeta*omega0*x0)*math.Sinh(omega2*t)+omega2*x0*math.Cosh(omega2*t))/omega2
	}

	if cfg.OvershootClamping {
		if from <= to {
			position = math.Min(position, to)
		} else {
			position = math.Max(position, to)
		}
	}
	return position
}

// SpringProgress is Spring from 0 to 1 for frame elapsed since start,
// the form every entrance in the compositions uses.
func SpringProgress(frame, start int, fps int, cfg SpringConfig) float64 {
	elapsed := frame - start
	if elapsed < 0 {
		elapsed = 0
	}
	return Spring(SpringParams{Frame: float64(elapsed), FPS: float64(fps), Config: cfg})
}

// Hand-tuned springs shared by the compositions
var (
	SpringEndCardLogo = SpringConfig{Damping: 12, Stiffness: 120, Mass: 0.8}
	SpringEndCardText = SpringConfig{Damping: 14, Stiffness: 100, Mass: 0.6}
	SpringBattleMenu  = SpringConfig{Damping: 12, Stiffness: 160, Mass: 0.6}
	SpringPhoneFrame  = SpringConfig{Damping: 12, Stiffness: 100, Mass: 0.8}
	SpringDialogBox   = SpringConfig{Damping: 14, Stiffness: 150, Mass: 0.7}
	SpringSplitScreen = SpringConfig{Damping: 14, Stiffness: 120, Mass: 0.8}
	SpringCounter     = SpringConfig{Damping: 14, Stiffness: 80, Mass: 0.8}
)
