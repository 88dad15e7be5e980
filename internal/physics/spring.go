package physics

import "math"

// RestLength returns the spring rest length for an edge whose busiest
// endpoint has the given total degree. With adaptive springs disabled
// it is simply SpringLength; otherwise the base length is stretched by
// the configured growth mode so hub nodes get longer edges and their
// neighborhoods stay readable. The result is clamped to
// [0.5, 5] x SpringLength.
func RestLength(cfg Config, degree int) float64 {
	base := cfg.SpringLength
	if !cfg.AdaptiveSpringEnabled {
		return base
	}

	d := float64(degree)
	var factor float64
	switch cfg.AdaptiveSpringMode {
	case SpringLinear:
		factor = 1 + d*cfg.AdaptiveSpringScale
	case SpringLogarithmic:
		factor = 1 + math.Log(d+1)*cfg.AdaptiveSpringScale
	default: // SpringSqrt
		factor = 1 + math.Sqrt(d)*cfg.AdaptiveSpringScale
	}

	rest := base * factor
	if rest < 0.5*base {
		rest = 0.5 * base
	}
	if rest > 5*base {
		rest = 5 * base
	}
	return rest
}
