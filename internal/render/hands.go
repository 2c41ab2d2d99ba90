package render

import (
	"github.com/mj1618/clockface/internal/canvas"
	"github.com/mj1618/clockface/internal/clock"
)

// HandSpec describes a tapered hand. All values are fractions of the face
// radius.
type HandSpec struct {
	Length    float64 // pivot to tip
	Tail      float64 // extension behind the pivot
	BaseWidth float64 // width at the tail end
	TipWidth  float64 // width at the tip
}

// SecondHandSpec describes the second hand: a thin shaft ending in a round
// counterweight ball. Values are fractions of the face radius.
type SecondHandSpec struct {
	Length     float64 // pivot to ball center
	Tail       float64
	Width      float64
	BallRadius float64
}

var (
	HourHand   = HandSpec{Length: 0.50, Tail: 0.12, BaseWidth: 0.075, TipWidth: 0.045}
	MinuteHand = HandSpec{Length: 0.80, Tail: 0.14, BaseWidth: 0.055, TipWidth: 0.030}
	SecondHand = SecondHandSpec{Length: 0.78, Tail: 0.22, Width: 0.014, BallRadius: 0.045}
)

const (
	capRadius    = 0.035
	shadowDX     = 0.012
	shadowDY     = 0.018
	shadowBlur   = 0.012
	minShadowPix = 1.0
)

// drawDynamic paints the hands and the center cap over whatever is already
// on c.
func (r *Renderer) drawDynamic(c canvas.Canvas, g Geometry, ts clock.TimeState) {
	fr := g.FaceRadius
	shadow := canvas.Shadow{
		Color:  r.palette.HandShadow,
		Offset: canvas.Point{X: fr * shadowDX, Y: -fr * shadowDY},
		Blur:   max(fr*shadowBlur, minShadowPix),
	}

	c.WithShadow(shadow, func() {
		r.drawTaperedHand(c, g, HourHand, ts.Hour)
	})
	c.WithShadow(shadow, func() {
		r.drawTaperedHand(c, g, MinuteHand, ts.Minute)
	})
	c.WithShadow(shadow, func() {
		r.drawSecondHand(c, g, ts.Second)
	})

	c.FillCircle(g.Center, fr*capRadius, canvas.Solid(r.palette.Accent))
}

func (r *Renderer) drawTaperedHand(c canvas.Canvas, g Geometry, spec HandSpec, angle float64) {
	fr := g.FaceRadius
	tail := -spec.Tail * fr
	tip := spec.Length * fr
	base := spec.BaseWidth * fr / 2
	narrow := spec.TipWidth * fr / 2

	c.WithTransform(canvas.At(g.Center.X, g.Center.Y).Rotate(angle), func() {
		p := canvas.NewPath()
		p.AddPolygon(
			canvas.Point{X: tail, Y: -base},
			canvas.Point{X: tip, Y: -narrow},
			canvas.Point{X: tip, Y: narrow},
			canvas.Point{X: tail, Y: base},
		)
		c.FillPath(p, canvas.Solid(r.palette.Hand))
	})
}

// drawSecondHand fills the shaft and the ball as one path so they share a
// single shadow.
func (r *Renderer) drawSecondHand(c canvas.Canvas, g Geometry, angle float64) {
	fr := g.FaceRadius
	spec := SecondHand
	tail := spec.Tail * fr
	ball := spec.BallRadius * fr
	ballCenter := spec.Length * fr
	shaftEnd := ballCenter - ball/2
	w := spec.Width * fr

	c.WithTransform(canvas.At(g.Center.X, g.Center.Y).Rotate(angle), func() {
		p := canvas.NewPath()
		p.AddRect(-tail, -w/2, shaftEnd+tail, w)
		p.AddCircle(ballCenter, 0, ball)
		c.FillPath(p, canvas.Solid(r.palette.Accent))
	})
}
