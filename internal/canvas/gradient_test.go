package canvas

import (
	"image/color"
	"testing"
)

func TestRadialGradient_SortsStops(t *testing.T) {
	g := NewRadialGradient(Point{}, 10,
		GradientStop{Position: 1, Color: color.NRGBA{R: 200, A: 255}},
		GradientStop{Position: 0, Color: color.NRGBA{A: 255}},
	)
	if g.Stops[0].Position != 0 || g.Stops[1].Position != 1 {
		t.Errorf("stops not sorted: %+v", g.Stops)
	}
}

func TestFillPath_GradientPlateau(t *testing.T) {
	c, img := newCanvas(100, 100)
	none := color.NRGBA{}
	dark := color.NRGBA{A: 200}
	g := NewRadialGradient(Point{X: 50, Y: 50}, 50,
		GradientStop{Position: 0, Color: none},
		GradientStop{Position: 0.85, Color: none},
		GradientStop{Position: 1, Color: dark},
	)
	p := NewPath()
	p.AddRect(0, 0, 100, 100)
	c.FillPath(p, Paint{Gradient: g})

	if a := alphaAt(img, 50, 50); a != 0 {
		t.Errorf("inside plateau: alpha %d", a)
	}
	if a := alphaAt(img, 70, 50); a != 0 {
		t.Errorf("still inside plateau: alpha %d", a)
	}
	mid := alphaAt(img, 50+46, 50)
	if mid == 0 || mid >= 200 {
		t.Errorf("fade zone should be partially dark, alpha %d", mid)
	}
	if a := alphaAt(img, 0, 0); a < 195 {
		t.Errorf("past the last stop uses the last color, alpha %d", a)
	}
}

func TestFillPath_GradientFollowsTransform(t *testing.T) {
	c, img := newCanvas(60, 60)
	g := NewRadialGradient(Point{}, 10,
		GradientStop{Position: 0, Color: color.NRGBA{R: 255, A: 255}},
		GradientStop{Position: 1, Color: color.NRGBA{B: 255, A: 255}},
	)
	c.WithTransform(At(40, 40), func() {
		p := NewPath()
		p.AddRect(-40, -40, 60, 60)
		c.FillPath(p, Paint{Gradient: g})
	})
	// Canvas (40, 40) is device (40, 20).
	if got := img.RGBAAt(40, 20); got.R < 200 || got.B > 60 {
		t.Errorf("gradient center should be red, got %v", got)
	}
	if got := img.RGBAAt(10, 50); got.B < 250 || got.R != 0 {
		t.Errorf("far from center should be blue, got %v", got)
	}
}

func TestRadialGradient_IsValid(t *testing.T) {
	stops := []GradientStop{{Position: 0}, {Position: 1}}
	tests := []struct {
		name string
		g    *RadialGradient
		want bool
	}{
		{"nil", nil, false},
		{"ok", NewRadialGradient(Point{}, 1, stops...), true},
		{"zero radius", NewRadialGradient(Point{}, 0, stops...), false},
		{"one stop", NewRadialGradient(Point{}, 1, stops[0]), false},
		{"out of range", NewRadialGradient(Point{}, 1, GradientStop{Position: -0.1}, GradientStop{Position: 1}), false},
	}
	for _, tt := range tests {
		if got := tt.g.IsValid(); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}
