package render

import (
	"image/color"
	"math"

	"github.com/mj1618/clockface/internal/canvas"
)

const (
	bezelSegments = 36
	edgeStroke    = 0.008 // highlight/shadow arc width, fraction of radius

	markerOuter        = 0.93
	minuteMarkerLength = 0.05
	minuteMarkerWidth  = 0.008
	hourMarkerLength   = 0.13
	hourMarkerWidth    = 0.035
	hourMarkerRounding = 0.25 // corner radius, fraction of marker width

	glassOffsetX  = -0.30
	glassOffsetY  = 0.35
	glassRadius   = 0.95
	vignetteStart = 0.85
)

// BezelBrightness is the brushed-metal brightness in [0, 1] at angle theta.
func BezelBrightness(theta float64) float64 {
	return 0.5 + 0.5*math.Sin(2*theta+math.Pi/4)
}

// drawStatic paints everything that does not depend on the time.
func (r *Renderer) drawStatic(c canvas.Canvas, g Geometry, mode Mode) {
	if mode.TransparentBackground {
		c.Clear(color.NRGBA{})
	} else {
		c.Clear(r.palette.Background)
	}
	r.drawBezel(c, g)
	c.FillCircle(g.Center, g.FaceRadius, canvas.Solid(r.palette.Face))
	r.drawMarkers(c, g)
	r.drawGlass(c, g)
}

// drawBezel approximates an angular gradient with wedges whose brightness
// is sampled at each wedge midpoint.
func (r *Renderer) drawBezel(c canvas.Canvas, g Geometry) {
	cx, cy := g.Center.X, g.Center.Y
	outer, inner := g.Radius, g.FaceRadius

	base := canvas.NewPath()
	base.AddAnnulus(cx, cy, outer, inner)
	c.FillPath(base, canvas.Solid(r.palette.Bezel))

	step := 2 * math.Pi / bezelSegments
	for i := 0; i < bezelSegments; i++ {
		start := float64(i) * step
		shade := blend(r.palette.BezelDark, r.palette.BezelLight, BezelBrightness(start+step/2))
		wedge := canvas.NewPath()
		wedge.AddAnnularSector(cx, cy, outer, inner, start, start+step)
		c.FillPath(wedge, canvas.Solid(shade))
	}

	w := math.Max(outer*edgeStroke, 1)
	lit, dark := math.Pi/4, 5*math.Pi/4
	for _, radius := range []float64{outer - w/2, inner + w/2} {
		highlight := canvas.NewPath()
		highlight.Arc(cx, cy, radius, lit, dark)
		c.StrokePath(highlight, w, canvas.Solid(r.palette.BezelHighlight))

		shadow := canvas.NewPath()
		shadow.Arc(cx, cy, radius, dark, lit+2*math.Pi)
		c.StrokePath(shadow, w, canvas.Solid(r.palette.BezelShadow))
	}
}

// drawMarkers paints 48 minute ticks and 12 hour bars.
func (r *Renderer) drawMarkers(c canvas.Canvas, g Geometry) {
	fr := g.FaceRadius
	outer := markerOuter * fr
	paint := canvas.Solid(r.palette.Marker)

	for m := 0; m < 60; m++ {
		if m%5 == 0 {
			continue
		}
		angle := math.Pi/2 - float64(m)*math.Pi/30
		length, width := minuteMarkerLength*fr, minuteMarkerWidth*fr
		c.WithTransform(canvas.At(g.Center.X, g.Center.Y).Rotate(angle), func() {
			p := canvas.NewPath()
			p.AddRect(outer-length, -width/2, length, width)
			c.FillPath(p, paint)
		})
	}

	for h := 0; h < 12; h++ {
		angle := math.Pi/2 - float64(h)*math.Pi/6
		length, width := hourMarkerLength*fr, hourMarkerWidth*fr
		c.WithTransform(canvas.At(g.Center.X, g.Center.Y).Rotate(angle), func() {
			p := canvas.NewPath()
			p.AddRoundedRect(outer-length, -width/2, length, width, width*hourMarkerRounding)
			c.FillPath(p, paint)
		})
	}
}

// drawGlass adds an off-center highlight and an edge vignette, both limited
// to the face.
func (r *Renderer) drawGlass(c canvas.Canvas, g Geometry) {
	fr := g.FaceRadius
	face := canvas.NewPath()
	face.AddCircle(g.Center.X, g.Center.Y, fr)

	fade := r.palette.Glass
	fade.A = 0
	highlight := canvas.NewRadialGradient(
		canvas.Point{X: g.Center.X + glassOffsetX*fr, Y: g.Center.Y + glassOffsetY*fr},
		glassRadius*fr,
		canvas.GradientStop{Position: 0, Color: r.palette.Glass},
		canvas.GradientStop{Position: 1, Color: fade},
	)
	c.FillPath(face, canvas.Paint{Gradient: highlight})

	edge := r.palette.Vignette
	edge.A = 0
	vignette := canvas.NewRadialGradient(g.Center, fr,
		canvas.GradientStop{Position: 0, Color: edge},
		canvas.GradientStop{Position: vignetteStart, Color: edge},
		canvas.GradientStop{Position: 1, Color: r.palette.Vignette},
	)
	c.FillPath(face, canvas.Paint{Gradient: vignette})
}
