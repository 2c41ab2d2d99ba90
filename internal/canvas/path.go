package canvas

import "math"

// PathOp represents a path drawing operation type.
type PathOp int

const (
	PathOpMoveTo  PathOp = iota // Start new subpath at point (x, y)
	PathOpLineTo                // Draw line to point (x, y)
	PathOpCubicTo               // Draw cubic curve to (x3, y3) via controls (x1, y1), (x2, y2)
	PathOpClose                 // Close subpath with line to start point
)

// PathCommand represents a single path operation with its coordinate arguments.
type PathCommand struct {
	Op   PathOp
	Args []float64 // MoveTo/LineTo=[x,y], CubicTo=[x1,y1,x2,y2,x3,y3]
}

// Path is a sequence of subpaths. Filling uses the nonzero rule, so a hole
// must wind in the opposite direction to its outline. Every helper below
// winds counter-clockwise unless noted.
type Path struct {
	Commands []PathCommand
	open     bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpMoveTo, Args: []float64{x, y}})
	p.open = true
}

// LineTo adds a line segment from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	if !p.open {
		p.MoveTo(x, y)
		return
	}
	p.Commands = append(p.Commands, PathCommand{Op: PathOpLineTo, Args: []float64{x, y}})
}

// CubicTo adds a cubic bezier curve from the current point to (x3, y3)
// with control points (x1, y1) and (x2, y2).
func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpCubicTo, Args: []float64{x1, y1, x2, y2, x3, y3}})
}

// Close closes the current subpath by drawing a line to the starting point.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.Commands = append(p.Commands, PathCommand{Op: PathOpClose})
	p.open = false
}

// Arc appends a circular arc from angle start to angle end. A negative sweep
// (end < start) runs clockwise. If a subpath is open the arc is joined to it
// with a straight line; otherwise a new subpath starts at the arc's first point.
func (p *Path) Arc(cx, cy, r, start, end float64) {
	x0, y0 := cx+r*math.Cos(start), cy+r*math.Sin(start)
	if p.open {
		p.LineTo(x0, y0)
	} else {
		p.MoveTo(x0, y0)
	}

	sweep := end - start
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if n == 0 {
		return
	}
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	a0 := start
	for i := 0; i < n; i++ {
		a1 := a0 + step
		cos0, sin0 := math.Cos(a0), math.Sin(a0)
		cos1, sin1 := math.Cos(a1), math.Sin(a1)
		p.CubicTo(
			cx+r*(cos0-k*sin0), cy+r*(sin0+k*cos0),
			cx+r*(cos1+k*sin1), cy+r*(sin1-k*cos1),
			cx+r*cos1, cy+r*sin1,
		)
		a0 = a1
	}
}

// AddCircle appends a closed circle.
func (p *Path) AddCircle(cx, cy, r float64) {
	p.Close()
	p.Arc(cx, cy, r, 0, 2*math.Pi)
	p.Close()
}

// AddAnnulus appends a ring between outer and inner radii. The inner edge
// winds clockwise so the center stays empty.
func (p *Path) AddAnnulus(cx, cy, outer, inner float64) {
	p.AddCircle(cx, cy, outer)
	p.Arc(cx, cy, inner, 2*math.Pi, 0)
	p.Close()
}

// AddAnnularSector appends the part of a ring between two angles.
func (p *Path) AddAnnularSector(cx, cy, outer, inner, start, end float64) {
	p.Close()
	p.Arc(cx, cy, outer, start, end)
	p.Arc(cx, cy, inner, end, start)
	p.Close()
}

// AddRect appends an axis-aligned rectangle with its bottom-left corner at (x, y).
func (p *Path) AddRect(x, y, w, h float64) {
	p.Close()
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// AddRoundedRect appends a rectangle with corners rounded by r.
func (p *Path) AddRoundedRect(x, y, w, h, r float64) {
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		p.AddRect(x, y, w, h)
		return
	}
	p.Close()
	p.MoveTo(x+r, y)
	p.Arc(x+w-r, y+r, r, -math.Pi/2, 0)
	p.Arc(x+w-r, y+h-r, r, 0, math.Pi/2)
	p.Arc(x+r, y+h-r, r, math.Pi/2, math.Pi)
	p.Arc(x+r, y+r, r, math.Pi, 3*math.Pi/2)
	p.Close()
}

// AddPolygon appends a closed polygon through pts.
func (p *Path) AddPolygon(pts ...Point) {
	if len(pts) == 0 {
		return
	}
	p.Close()
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	p.Close()
}
