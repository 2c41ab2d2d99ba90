package canvas

import (
	"image/color"
	"sort"
)

// GradientStop defines a color stop within a gradient.
type GradientStop struct {
	Position float64
	Color    color.NRGBA
}

// RadialGradient blends colors outward from Center. Positions are fractions
// of Radius; distances past the last stop use the last color.
type RadialGradient struct {
	Center Point
	Radius float64
	Stops  []GradientStop
}

// NewRadialGradient constructs a radial gradient with stops sorted by position.
func NewRadialGradient(center Point, radius float64, stops ...GradientStop) *RadialGradient {
	sorted := make([]GradientStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })
	return &RadialGradient{Center: center, Radius: radius, Stops: sorted}
}

// IsValid reports whether the gradient has usable stops.
func (g *RadialGradient) IsValid() bool {
	if g == nil || g.Radius <= 0 || len(g.Stops) < 2 {
		return false
	}
	for _, s := range g.Stops {
		if s.Position < 0 || s.Position > 1 {
			return false
		}
	}
	return true
}
