package render

import (
	"image"
	"math"

	"github.com/mj1618/clockface/internal/canvas"
)

const (
	// BezelThickness is the bezel width as a fraction of the outer radius.
	BezelThickness = 0.075

	previewMargin = 4.0
	marginRatio   = 0.08
	maxMargin     = 60.0
)

// Geometry is the layout of the clock on a canvas. It is derived from the
// canvas size and the preview flag and never stored.
type Geometry struct {
	Size       image.Point
	Center     canvas.Point
	Margin     float64
	Radius     float64
	FaceRadius float64
}

// NewGeometry lays out a clock for a canvas of the given size. Previews use a
// small fixed margin; full-screen clocks use a proportional margin capped at
// maxMargin. The margin never exceeds a quarter of the short side.
func NewGeometry(size image.Point, preview bool) Geometry {
	side := math.Min(float64(size.X), float64(size.Y))
	margin := math.Min(side*marginRatio, maxMargin)
	if preview {
		margin = previewMargin
	}
	margin = math.Min(margin, side/4)

	radius := side/2 - margin
	return Geometry{
		Size:       size,
		Center:     canvas.Point{X: float64(size.X) / 2, Y: float64(size.Y) / 2},
		Margin:     margin,
		Radius:     radius,
		FaceRadius: radius * (1 - BezelThickness),
	}
}
