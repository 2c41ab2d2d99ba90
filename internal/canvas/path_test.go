package canvas

import (
	"math"
	"testing"
)

func TestPath_ArcSplitsIntoQuarterCurves(t *testing.T) {
	p := NewPath()
	p.Arc(0, 0, 1, 0, 2*math.Pi)

	cubics := 0
	for _, c := range p.Commands {
		if c.Op == PathOpCubicTo {
			cubics++
		}
	}
	if cubics != 4 {
		t.Errorf("full circle: got %d cubics, want 4", cubics)
	}
	last := p.Commands[len(p.Commands)-1].Args
	if math.Abs(last[4]-1) > 1e-9 || math.Abs(last[5]) > 1e-9 {
		t.Errorf("arc should end at (1, 0), got (%v, %v)", last[4], last[5])
	}
}

func TestPath_ArcJoinsOpenSubpath(t *testing.T) {
	p := NewPath()
	p.MoveTo(5, 5)
	p.Arc(0, 0, 1, 0, math.Pi/2)
	if p.Commands[1].Op != PathOpLineTo {
		t.Errorf("expected line to arc start, got %v", p.Commands[1].Op)
	}
}

func TestPath_CloseWithoutOpenSubpathIsNoop(t *testing.T) {
	p := NewPath()
	p.Close()
	if len(p.Commands) != 0 {
		t.Errorf("got %d commands", len(p.Commands))
	}
}

func TestPath_CircleEndpointsStayOnRadius(t *testing.T) {
	p := NewPath()
	p.AddCircle(0, 0, 10)
	for _, c := range p.Commands {
		if c.Op == PathOpClose {
			continue
		}
		x, y := c.Args[len(c.Args)-2], c.Args[len(c.Args)-1]
		if r := math.Hypot(x, y); math.Abs(r-10) > 1e-9 {
			t.Fatalf("endpoint (%v, %v) off the circle: r=%v", x, y, r)
		}
	}
}

func TestPath_RoundedRectFills(t *testing.T) {
	c, img := newCanvas(20, 20)
	p := NewPath()
	p.AddRoundedRect(2, 2, 16, 16, 6)
	c.FillPath(p, Solid(black))

	if a := alphaAt(img, 10, 10); a < 250 {
		t.Errorf("center alpha %d", a)
	}
	if a := alphaAt(img, 2, 2); a != 0 {
		t.Errorf("rounded corner should be empty, alpha %d", a)
	}
}

func TestPath_AnnularSector(t *testing.T) {
	c, img := newCanvas(40, 40)
	p := NewPath()
	p.AddAnnularSector(20, 20, 15, 8, 0, math.Pi/2)
	c.FillPath(p, Solid(black))

	// Sector spans from +x to +y, which is the upper-right quadrant on screen.
	if a := alphaAt(img, 28, 12); a < 250 {
		t.Errorf("inside sector alpha %d", a)
	}
	if a := alphaAt(img, 12, 28); a != 0 {
		t.Errorf("opposite quadrant alpha %d", a)
	}
}
