package export

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/mj1618/clockface/internal/clock"
	"github.com/mj1618/clockface/internal/render"
)

// IconSizes are the square sizes of the static export.
var IconSizes = []int{512, 1024}

// IconsetSizes are the extra sizes written when Options.Iconset is set.
// They are downscaled from the largest icon rather than rendered directly.
var IconsetSizes = []int{16, 32, 64, 128, 256}

// Options configures Icons.
type Options struct {
	Format   string
	Iconset  bool
	Location *time.Location
	// Renderer is reused if set, otherwise a default one is created.
	Renderer *render.Renderer
	Logger   *zap.Logger
}

// File describes one written icon.
type File struct {
	Path   string `yaml:"path" json:"path"`
	Size   int    `yaml:"size" json:"size"`
	Scaled bool   `yaml:"scaled,omitempty" json:"scaled,omitempty"`
}

// IconName returns the file name for a square icon of the given size.
func IconName(size int, format string) string {
	return fmt.Sprintf("clock_%d.%s", size, format)
}

// Icons renders the clock at the demonstration time (10:10:30) in full
// screen mode with an opaque background and writes one file per size
// into dir.
func Icons(dir string, opts Options) ([]File, error) {
	format, err := NormalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := opts.Renderer
	if r == nil {
		r = render.New(render.WithLogger(logger))
	}

	ts := clock.Sample(clock.DemoTime(opts.Location))
	mode := render.Mode{}

	var (
		files   []File
		largest *image.RGBA
	)
	for _, size := range IconSizes {
		img, err := r.Render(image.Pt(size, size), ts, mode)
		if err != nil {
			return files, fmt.Errorf("render %dx%d: %w", size, size, err)
		}
		path := filepath.Join(dir, IconName(size, format))
		if err := WriteFile(path, img, format); err != nil {
			return files, err
		}
		logger.Debug("icon written", zap.String("path", path), zap.Int("size", size))
		files = append(files, File{Path: path, Size: size})
		largest = img
	}

	if !opts.Iconset || largest == nil {
		return files, nil
	}
	for _, size := range IconsetSizes {
		path := filepath.Join(dir, IconName(size, format))
		if err := WriteFile(path, Downscale(largest, size), format); err != nil {
			return files, err
		}
		logger.Debug("icon written", zap.String("path", path), zap.Int("size", size), zap.Bool("scaled", true))
		files = append(files, File{Path: path, Size: size, Scaled: true})
	}
	return files, nil
}

// Downscale resamples src into a size×size image with Catmull-Rom.
func Downscale(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
