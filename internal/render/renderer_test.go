package render

import (
	"crypto/sha256"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/clockface/internal/clock"
)

func hashImage(img *image.RGBA) [32]byte {
	return sha256.Sum256(img.Pix)
}

func at(h, m, s int) clock.TimeState {
	return clock.Sample(time.Date(2024, 1, 1, h, m, s, 0, time.UTC))
}

func TestRender_ReusesStaticLayerAcrossTimes(t *testing.T) {
	r := New()
	size := image.Pt(160, 160)

	first, err := r.Render(size, at(10, 10, 30), Mode{})
	require.NoError(t, err)
	staticBefore := r.StaticLayer()
	hashBefore := hashImage(staticBefore)

	second, err := r.Render(size, at(3, 45, 12), Mode{})
	require.NoError(t, err)

	assert.Same(t, staticBefore, r.StaticLayer(), "static layer should be reused, not replaced")
	assert.Equal(t, hashBefore, hashImage(r.StaticLayer()), "static layer must not change between frames")
	assert.NotEqual(t, hashImage(first), hashImage(second), "hands should differ between times")
	assert.Equal(t, Stats{Frames: 2, CacheHits: 1, Regenerations: 1}, r.Stats())
}

func TestRender_StaticLayerHasNoHands(t *testing.T) {
	r := New()
	frame, err := r.Render(image.Pt(120, 120), at(1, 2, 3), Mode{})
	require.NoError(t, err)
	assert.NotEqual(t, hashImage(frame), hashImage(r.StaticLayer()))
}

func TestRender_InvalidatesOnKeyChange(t *testing.T) {
	base := image.Pt(150, 150)
	tests := []struct {
		name string
		size image.Point
		mode Mode
	}{
		{"one pixel wider", image.Pt(151, 150), Mode{}},
		{"one pixel taller", image.Pt(150, 151), Mode{}},
		{"preview toggled", base, Mode{Preview: true}},
		{"transparent toggled", base, Mode{TransparentBackground: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			_, err := r.Render(base, at(6, 0, 0), Mode{})
			require.NoError(t, err)
			before := hashImage(r.StaticLayer())

			_, err = r.Render(tt.size, at(6, 0, 0), tt.mode)
			require.NoError(t, err)

			assert.NotEqual(t, before, hashImage(r.StaticLayer()))
			assert.Equal(t, 2, r.Stats().Regenerations)
			assert.Equal(t, 0, r.Stats().CacheHits)
		})
	}
}

func TestRender_InvalidSizeLeavesCache(t *testing.T) {
	r := New()
	_, err := r.Render(image.Pt(64, 64), at(9, 0, 0), Mode{})
	require.NoError(t, err)
	cached := r.StaticLayer()
	stats := r.Stats()

	for _, size := range []image.Point{
		{X: 0, Y: 64},
		{X: 64, Y: 0},
		{X: -1, Y: 10},
		{X: 10, Y: -10},
		{X: MaxDimension + 1, Y: 1},
	} {
		img, err := r.Render(size, at(9, 0, 0), Mode{})
		assert.Nil(t, img, "size %v", size)
		assert.ErrorIs(t, err, ErrInvalidSize, "size %v", size)
	}

	assert.Same(t, cached, r.StaticLayer())
	assert.Equal(t, stats, r.Stats())
}

func TestRender_InvalidSizeBeforeFirstFrame(t *testing.T) {
	r := New()
	img, err := r.Render(image.Pt(0, 0), at(9, 0, 0), Mode{})
	assert.Nil(t, img)
	assert.ErrorIs(t, err, ErrInvalidSize)
	assert.Nil(t, r.StaticLayer())
}

func TestRender_Idempotent(t *testing.T) {
	r := New()
	size := image.Pt(140, 100)
	ts := at(4, 20, 12)

	a, err := r.Render(size, ts, Mode{Preview: true})
	require.NoError(t, err)
	b, err := r.Render(size, ts, Mode{Preview: true})
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)

	fresh, err := New().Render(size, ts, Mode{Preview: true})
	require.NoError(t, err)
	assert.Equal(t, a.Pix, fresh.Pix, "cached and freshly generated frames should match")
}

func TestRender_Background(t *testing.T) {
	r := New()
	size := image.Pt(100, 100)

	opaque, err := r.Render(size, at(12, 0, 0), Mode{})
	require.NoError(t, err)
	assert.Equal(t, uint8(255), opaque.RGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), opaque.RGBAAt(0, 0).R)

	transparent, err := r.Render(size, at(12, 0, 0), Mode{TransparentBackground: true})
	require.NoError(t, err)
	assert.Equal(t, uint8(0), transparent.RGBAAt(0, 0).A)
	assert.Equal(t, uint8(255), transparent.RGBAAt(50, 50).A, "the clock itself stays opaque")
}

func TestRender_HourHandPointsAtThree(t *testing.T) {
	r := New()
	frame, err := r.Render(image.Pt(400, 400), at(3, 0, 0), Mode{})
	require.NoError(t, err)

	g := NewGeometry(image.Pt(400, 400), false)
	off := int(0.3 * g.FaceRadius)

	hand := frame.RGBAAt(200+off, 200)
	assert.Less(t, hand.R, uint8(80), "hour hand should cover the right side, got %v", hand)

	face := frame.RGBAAt(200-off, 200)
	assert.Greater(t, face.R, uint8(200), "left side should show the face, got %v", face)

	pivot := frame.RGBAAt(200, 200)
	assert.Greater(t, pivot.R, uint8(150))
	assert.Less(t, pivot.G, uint8(100), "center cap should use the accent color, got %v", pivot)
}

func TestRender_TinyPreviewCanvas(t *testing.T) {
	r := New()
	img, err := r.Render(image.Pt(6, 6), at(1, 0, 0), Mode{Preview: true})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 6), img.Bounds())
}

func TestInvalidate(t *testing.T) {
	r := New()
	_, err := r.Render(image.Pt(50, 50), at(1, 0, 0), Mode{})
	require.NoError(t, err)
	r.Invalidate()
	assert.Nil(t, r.StaticLayer())

	_, err = r.Render(image.Pt(50, 50), at(1, 0, 0), Mode{})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Stats().Regenerations)
}

func TestWithPalette(t *testing.T) {
	p := DefaultPalette()
	p.Background.R = 0x40
	r := New(WithPalette(p), WithLogger(nil))

	img, err := r.Render(image.Pt(60, 60), at(1, 0, 0), Mode{})
	require.NoError(t, err)
	assert.Equal(t, uint8(0x40), img.RGBAAt(0, 0).R)
	assert.Equal(t, p, r.Palette())
}

func TestSetPalette_RegeneratesStaticLayer(t *testing.T) {
	r := New()
	size := image.Pt(60, 60)
	_, err := r.Render(size, at(1, 0, 0), Mode{})
	require.NoError(t, err)

	p := DefaultPalette()
	p.Background.R = 0x40
	r.SetPalette(p)
	assert.Nil(t, r.StaticLayer())

	img, err := r.Render(size, at(1, 0, 0), Mode{})
	require.NoError(t, err)
	assert.Equal(t, uint8(0x40), img.RGBAAt(0, 0).R)
	assert.Equal(t, 2, r.Stats().Regenerations)
}
