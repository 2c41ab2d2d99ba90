package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var layoutSize = image.Pt(1000, 1000)

// staticLayer renders one frame and returns the cached static layer with its
// geometry.
func staticLayer(t *testing.T, opts ...Option) (*image.RGBA, Geometry) {
	t.Helper()
	r := New(opts...)
	_, err := r.Render(layoutSize, at(10, 10, 30), Mode{})
	require.NoError(t, err)
	require.NotNil(t, r.StaticLayer())
	return r.StaticLayer(), NewGeometry(layoutSize, false)
}

// pixelAt returns the pixel at distance d from the clock center along angle,
// measured counter-clockwise from three o'clock.
func pixelAt(img *image.RGBA, g Geometry, angle, d float64) color.RGBA {
	x := g.Center.X + d*math.Cos(angle)
	y := g.Center.Y + d*math.Sin(angle)
	return img.RGBAAt(int(math.Floor(x)), int(math.Floor(float64(g.Size.Y)-y)))
}

func isMarker(c color.RGBA) bool {
	return c.R < 140 && c.G < 140 && c.B < 140
}

func isFace(c color.RGBA) bool {
	return c.R > 180 && c.G > 180 && c.B > 170 && c.A == 255
}

// countMarks walks the circle of radius d clockwise from just past twelve and
// counts separate runs of marker pixels.
func countMarks(img *image.RGBA, g Geometry, d float64) int {
	const (
		samples = 7200
		minGap  = 20
	)
	start := math.Pi/2 - math.Pi/60
	runs, gap := 0, minGap
	for i := 0; i < samples; i++ {
		angle := start - 2*math.Pi*float64(i)/samples
		if !isMarker(pixelAt(img, g, angle, d)) {
			gap++
			continue
		}
		if gap >= minGap {
			runs++
		}
		gap = 0
	}
	return runs
}

func minuteAngle(m float64) float64 { return math.Pi/2 - m*math.Pi/30 }

func hourAngle(h float64) float64 { return math.Pi/2 - h*math.Pi/6 }

func TestStaticLayer_MarkerCounts(t *testing.T) {
	img, g := staticLayer(t)
	fr := g.FaceRadius

	// Minute ticks and hour bars both reach this radius: 48 + 12.
	assert.Equal(t, 60, countMarks(img, g, (markerOuter-minuteMarkerLength/2)*fr))
	// Only hour bars are long enough to reach this one.
	assert.Equal(t, 12, countMarks(img, g, (markerOuter-minuteMarkerLength-0.03)*fr))
	// Nothing is drawn past the outer marker edge.
	assert.Equal(t, 0, countMarks(img, g, markerOuter*fr+3))
}

func TestStaticLayer_MinuteTicks(t *testing.T) {
	img, g := staticLayer(t)
	d := (markerOuter - minuteMarkerLength/2) * g.FaceRadius

	for m := 0; m < 60; m++ {
		if m%5 == 0 {
			continue
		}
		c := pixelAt(img, g, minuteAngle(float64(m)), d)
		assert.True(t, isMarker(c), "minute %d: expected a tick, got %v", m, c)
	}
	for m := 0; m < 60; m++ {
		c := pixelAt(img, g, minuteAngle(float64(m)+0.5), d)
		assert.True(t, isFace(c), "between minute %d and %d: expected face, got %v", m, m+1, c)
	}
}

func TestStaticLayer_HourBars(t *testing.T) {
	img, g := staticLayer(t)
	fr := g.FaceRadius
	mid := (markerOuter - hourMarkerLength/2) * fr

	for h := 0; h < 12; h++ {
		c := pixelAt(img, g, hourAngle(float64(h)), mid)
		assert.True(t, isMarker(c), "hour %d: expected a bar, got %v", h, c)

		half := pixelAt(img, g, hourAngle(float64(h)+0.5), mid)
		assert.True(t, isFace(half), "half past %d: expected face, got %v", h, half)

		inside := pixelAt(img, g, hourAngle(float64(h)), (markerOuter-hourMarkerLength)*fr-3)
		assert.True(t, isFace(inside), "hour %d: bar should end at its length, got %v", h, inside)
	}
}

func TestStaticLayer_MarkersStartAtOuterRadius(t *testing.T) {
	img, g := staticLayer(t)
	outer := markerOuter * g.FaceRadius

	for _, angle := range []float64{hourAngle(0), hourAngle(4), minuteAngle(1), minuteAngle(38)} {
		assert.True(t, isMarker(pixelAt(img, g, angle, outer-2)), "angle %.3f: marker missing just inside the outer edge", angle)
		assert.True(t, isFace(pixelAt(img, g, angle, outer+2)), "angle %.3f: face expected just outside the outer edge", angle)
	}
}

func TestStaticLayer_GlassClippedToFace(t *testing.T) {
	plain := DefaultPalette()
	plain.Glass.A = 0
	plain.Vignette.A = 0

	withGlass, g := staticLayer(t)
	noGlass, _ := staticLayer(t, WithPalette(plain))

	limit := g.FaceRadius + 1.5
	inside, outside := 0, 0
	b := withGlass.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-g.Center.X, float64(g.Size.Y-y)-0.5-g.Center.Y)
			same := withGlass.RGBAAt(x, y) == noGlass.RGBAAt(x, y)
			switch {
			case d > limit && !same:
				outside++
			case d < g.FaceRadius-1 && !same:
				inside++
			}
		}
	}
	assert.Zero(t, outside, "glass or vignette leaked outside the face")
	assert.NotZero(t, inside, "glass and vignette should change the face")
}
