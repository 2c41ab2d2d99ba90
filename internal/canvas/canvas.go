// Package canvas provides a small 2D drawing surface for the clock renderer.
//
// Coordinates are y-up with the origin at the bottom-left corner of the
// surface. Angles follow the same convention, so rotating by θ turns the
// positive x axis counter-clockwise on screen.
//
// The software implementation maps paths to device pixels and fills and
// strokes them with github.com/fogleman/gg into a premultiplied *image.RGBA.
// Drop shadows are blurred with github.com/disintegration/imaging.
package canvas

import "image/color"

// Canvas records drawing commands onto a raster surface.
type Canvas interface {
	// Size returns the surface size in pixels.
	Size() Size

	// Clear replaces every pixel with c, ignoring transforms.
	Clear(c color.NRGBA)

	// FillPath fills p using the nonzero winding rule.
	FillPath(p *Path, paint Paint)

	// StrokePath strokes p with round joins and the given line width.
	StrokePath(p *Path, width float64, paint Paint)

	// FillCircle fills a circle.
	FillCircle(center Point, radius float64, paint Paint)

	// WithTransform applies t on top of the current transform for the
	// duration of fn. The previous transform is restored when fn returns,
	// including when it panics.
	WithTransform(t Transform, fn func())

	// WithShadow draws everything fn draws as one group with a single soft
	// drop shadow underneath it.
	WithShadow(s Shadow, fn func())
}

// Point is a position in canvas coordinates.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a width and height in pixels.
type Size struct {
	Width, Height float64
}

// Paint describes how a shape is filled. A non-nil Gradient takes precedence
// over Color.
type Paint struct {
	Color    color.NRGBA
	Gradient *RadialGradient
}

// Solid returns a Paint with a single color.
func Solid(c color.NRGBA) Paint {
	return Paint{Color: c}
}

// Transform translates the origin and then rotates around the new origin.
type Transform struct {
	DX, DY float64
	Angle  float64
}

// At returns a Transform that moves the origin to (x, y).
func At(x, y float64) Transform {
	return Transform{DX: x, DY: y}
}

// Rotate returns a copy of t that also rotates by angle radians.
func (t Transform) Rotate(angle float64) Transform {
	t.Angle += angle
	return t
}

// Shadow is a soft drop shadow. Offset is in canvas coordinates, so a
// lower-right shadow has a positive X and negative Y.
type Shadow struct {
	Color  color.NRGBA
	Offset Point
	Blur   float64
}
