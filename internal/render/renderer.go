// Package render draws an analog clock face into a raster image.
//
// A frame has two layers. The static layer (background, bezel, face,
// markers, glass) depends only on the canvas size and the Mode and is cached;
// the dynamic layer (hands and cap) is drawn on a copy of it every call.
package render

import (
	"errors"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/clockface/internal/canvas"
	"github.com/mj1618/clockface/internal/clock"
)

// MaxDimension is the largest width or height Render accepts.
const MaxDimension = 16384

// ErrInvalidSize is returned when no surface can be allocated for the
// requested canvas size. Callers should skip the frame.
var ErrInvalidSize = errors.New("render: canvas size must be between 1 and 16384 pixels per side")

// Mode is the rendering configuration that affects the static layer.
type Mode struct {
	Preview               bool `yaml:"preview"                json:"preview"`
	TransparentBackground bool `yaml:"transparent_background" json:"transparent_background"`
}

// cacheKey is the tuple a static layer was generated for.
type cacheKey struct {
	size        image.Point
	preview     bool
	transparent bool
}

type staticContent struct {
	key   cacheKey
	image *image.RGBA
}

// Stats counts cache behaviour since the renderer was created.
type Stats struct {
	Frames        int `yaml:"frames"        json:"frames"`
	CacheHits     int `yaml:"cache_hits"    json:"cache_hits"`
	Regenerations int `yaml:"regenerations" json:"regenerations"`
}

// Renderer draws clock frames and caches the static layer of the last
// geometry it rendered. It is not safe for concurrent use.
type Renderer struct {
	palette Palette
	logger  *zap.Logger
	static  *staticContent
	stats   Stats
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPalette sets the colors used for every layer.
func WithPalette(p Palette) Option {
	return func(r *Renderer) { r.palette = p }
}

// WithLogger sets the logger used for cache events.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a Renderer with an empty cache.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		palette: DefaultPalette(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws a frame of the given size showing ts. The static layer is
// reused when size and mode match the previous call and regenerated
// otherwise. On ErrInvalidSize no image is returned and the cache is left as
// it was.
func (r *Renderer) Render(size image.Point, ts clock.TimeState, mode Mode) (*image.RGBA, error) {
	if size.X <= 0 || size.Y <= 0 || size.X > MaxDimension || size.Y > MaxDimension {
		return nil, ErrInvalidSize
	}

	g := NewGeometry(size, mode.Preview)
	key := cacheKey{size: size, preview: mode.Preview, transparent: mode.TransparentBackground}
	if r.static == nil || r.static.key != key {
		r.static = r.generateStatic(g, key, mode)
		r.stats.Regenerations++
	} else {
		r.stats.CacheHits++
	}

	dst := image.NewRGBA(image.Rectangle{Max: size})
	copy(dst.Pix, r.static.image.Pix)
	r.drawDynamic(canvas.New(dst), g, ts)
	r.stats.Frames++
	return dst, nil
}

// StaticLayer returns the cached static image, or nil before the first
// successful Render. The image must not be modified.
func (r *Renderer) StaticLayer() *image.RGBA {
	if r.static == nil {
		return nil
	}
	return r.static.image
}

// Stats returns cache counters.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Palette returns the renderer's colors.
func (r *Renderer) Palette() Palette {
	return r.palette
}

// SetPalette replaces the renderer's colors. The cached static layer was
// painted with the old colors, so it is dropped.
func (r *Renderer) SetPalette(p Palette) {
	r.palette = p
	r.Invalidate()
}

// Invalidate drops the cached static layer.
func (r *Renderer) Invalidate() {
	r.static = nil
}

func (r *Renderer) generateStatic(g Geometry, key cacheKey, mode Mode) *staticContent {
	start := time.Now()
	img := image.NewRGBA(image.Rectangle{Max: key.size})
	r.drawStatic(canvas.New(img), g, mode)

	r.logger.Debug("static layer regenerated",
		zap.Int("width", key.size.X),
		zap.Int("height", key.size.Y),
		zap.Bool("preview", key.preview),
		zap.Bool("transparent", key.transparent),
		zap.Duration("took", time.Since(start)),
	)
	return &staticContent{key: key, image: img}
}
