package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/math/f64"
)

// Software is a Canvas that rasterizes on the CPU into an *image.RGBA.
// Paths are mapped to device pixels before they reach gg, so every gg
// context runs with the identity matrix.
// It is not safe for concurrent use.
type Software struct {
	dst   *image.RGBA
	dc    *gg.Context
	w, h  int
	xform f64.Aff3
	group *group
}

// shape is a path in device pixels together with how to paint it.
type shape struct {
	cmds   []PathCommand
	stroke float64 // line width in pixels; 0 fills
	paint  Paint   // gradient center and radius in device pixels
}

// group collects the shapes drawn inside WithShadow and their device bounds.
type group struct {
	shapes []shape
	bounds image.Rectangle
}

func (g *group) add(sh shape) {
	pad := sh.stroke/2 + 1
	for _, cmd := range sh.cmds {
		for i := 0; i+1 < len(cmd.Args); i += 2 {
			x, y := cmd.Args[i], cmd.Args[i+1]
			g.bounds = g.bounds.Union(image.Rect(
				int(math.Floor(x-pad)), int(math.Floor(y-pad)),
				int(math.Ceil(x+pad)), int(math.Ceil(y+pad)),
			))
		}
	}
	g.shapes = append(g.shapes, sh)
}

// New returns a Software canvas drawing into dst. The y axis is flipped so
// that (0, 0) is the bottom-left pixel corner of dst.
func New(dst *image.RGBA) *Software {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	return &Software{
		dst:   dst,
		dc:    newContext(dst),
		w:     w,
		h:     h,
		xform: f64.Aff3{1, 0, 0, 0, -1, float64(h)},
	}
}

func newContext(img *image.RGBA) *gg.Context {
	dc := gg.NewContextForRGBA(img)
	dc.SetFillRuleWinding()
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	return dc
}

func (s *Software) Size() Size {
	return Size{Width: float64(s.w), Height: float64(s.h)}
}

func (s *Software) Clear(c color.NRGBA) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

func (s *Software) FillPath(p *Path, paint Paint) {
	if p == nil || len(p.Commands) == 0 || !visible(paint) {
		return
	}
	s.draw(shape{cmds: s.devicePath(p), paint: s.devicePaint(paint)})
}

func (s *Software) StrokePath(p *Path, width float64, paint Paint) {
	if p == nil || len(p.Commands) == 0 || width <= 0 || !visible(paint) {
		return
	}
	s.draw(shape{cmds: s.devicePath(p), stroke: width * s.scale(), paint: s.devicePaint(paint)})
}

func (s *Software) FillCircle(center Point, radius float64, paint Paint) {
	if radius <= 0 {
		return
	}
	p := NewPath()
	p.AddCircle(center.X, center.Y, radius)
	s.FillPath(p, paint)
}

func (s *Software) WithTransform(t Transform, fn func()) {
	saved := s.xform
	defer func() { s.xform = saved }()

	sin, cos := math.Sincos(t.Angle)
	s.xform = mul(s.xform, f64.Aff3{cos, -sin, t.DX, sin, cos, t.DY})
	fn()
}

// WithShadow records what fn draws, renders it into a layer that covers only
// the group and its blurred shadow, and composites shadow and layer onto the
// surface. Groups do not nest: shapes of an inner group join the outer one.
func (s *Software) WithShadow(sh Shadow, fn func()) {
	outer := s.group
	g := &group{}
	if outer != nil {
		g = outer
	}
	func() {
		s.group = g
		defer func() { s.group = outer }()
		fn()
	}()
	if outer != nil || len(g.shapes) == 0 {
		return
	}

	sigma := math.Max(sh.Blur*s.scale(), 0)
	off := s.deviceVector(sh.Offset)
	area := s.shadowArea(g.bounds, sh.Color.A > 0, sigma, off)
	if area.Empty() {
		return
	}

	layer := image.NewRGBA(image.Rectangle{Max: area.Size()})
	dc := newContext(layer)
	for _, shp := range g.shapes {
		render(dc, shp, area.Min)
	}

	if sh.Color.A > 0 {
		mask := imaging.Blur(layer, sigma)
		draw.DrawMask(s.dst, area.Add(off), image.NewUniform(sh.Color), image.Point{}, mask, image.Point{}, draw.Over)
	}
	draw.Draw(s.dst, area, layer, image.Point{}, draw.Over)
}

// shadowArea is the device rectangle a shadow layer must cover: the group's
// bounds limited to the pixels that can reach the surface directly or through
// the shadow offset, padded by the blur kernel.
func (s *Software) shadowArea(bounds image.Rectangle, shadowed bool, sigma float64, off image.Point) image.Rectangle {
	surface := image.Rect(0, 0, s.w, s.h)
	pad := 0
	if shadowed {
		pad = int(math.Ceil(3 * sigma))
		surface = surface.Union(surface.Sub(off))
	}
	box := bounds.Intersect(surface.Inset(-pad))
	if box.Empty() {
		return image.Rectangle{}
	}
	return box.Inset(-pad)
}

func (s *Software) draw(sh shape) {
	if s.group != nil {
		s.group.add(sh)
		return
	}
	render(s.dc, sh, image.Point{})
}

// render paints a device-space shape into dc, whose pixel (0, 0) sits at
// origin on the surface.
func render(dc *gg.Context, sh shape, origin image.Point) {
	ox, oy := float64(origin.X), float64(origin.Y)
	dc.ClearPath()
	for _, cmd := range sh.cmds {
		a := cmd.Args
		switch cmd.Op {
		case PathOpMoveTo:
			dc.MoveTo(a[0]-ox, a[1]-oy)
		case PathOpLineTo:
			dc.LineTo(a[0]-ox, a[1]-oy)
		case PathOpCubicTo:
			dc.CubicTo(a[0]-ox, a[1]-oy, a[2]-ox, a[3]-oy, a[4]-ox, a[5]-oy)
		case PathOpClose:
			dc.ClosePath()
		}
	}

	pattern := sh.paint.pattern(ox, oy)
	if sh.stroke > 0 {
		dc.SetStrokeStyle(pattern)
		dc.SetLineWidth(sh.stroke)
		dc.Stroke()
		return
	}
	dc.SetFillStyle(pattern)
	dc.Fill()
}

// pattern converts p to a gg pattern shifted by (-ox, -oy).
func (p Paint) pattern(ox, oy float64) gg.Pattern {
	if !p.Gradient.IsValid() {
		return gg.NewSolidPattern(p.Color)
	}
	g := p.Gradient
	cx, cy := g.Center.X-ox, g.Center.Y-oy
	grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, g.Radius)
	for _, stop := range g.Stops {
		grad.AddColorStop(stop.Position, stop.Color)
	}
	return grad
}

// devicePath returns the commands of p mapped through the current transform.
func (s *Software) devicePath(p *Path) []PathCommand {
	out := make([]PathCommand, len(p.Commands))
	for i, cmd := range p.Commands {
		args := make([]float64, len(cmd.Args))
		for j := 0; j+1 < len(cmd.Args); j += 2 {
			d := s.device(Point{X: cmd.Args[j], Y: cmd.Args[j+1]})
			args[j], args[j+1] = d.X, d.Y
		}
		out[i] = PathCommand{Op: cmd.Op, Args: args}
	}
	return out
}

func (s *Software) devicePaint(p Paint) Paint {
	if !p.Gradient.IsValid() {
		return p
	}
	g := *p.Gradient
	g.Center = s.device(g.Center)
	g.Radius *= s.scale()
	return Paint{Gradient: &g}
}

func (s *Software) device(p Point) Point {
	m := s.xform
	return Point{X: m[0]*p.X + m[1]*p.Y + m[2], Y: m[3]*p.X + m[4]*p.Y + m[5]}
}

func (s *Software) deviceVector(v Point) image.Point {
	m := s.xform
	return image.Point{
		X: int(math.Round(m[0]*v.X + m[1]*v.Y)),
		Y: int(math.Round(m[3]*v.X + m[4]*v.Y)),
	}
}

// scale is the length scale of the current transform.
func (s *Software) scale() float64 {
	m := s.xform
	return math.Sqrt(math.Abs(m[0]*m[4] - m[1]*m[3]))
}

func visible(p Paint) bool {
	return p.Gradient.IsValid() || p.Color.A > 0
}

// mul returns a·b, the transform that applies b first and then a.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}
