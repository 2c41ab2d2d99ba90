package animate

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"

	"github.com/mj1618/clockface/internal/export"
)

// DiscardSink drops every frame.
type DiscardSink struct{}

func (DiscardSink) WriteFrame(*image.RGBA, time.Time) error { return nil }
func (DiscardSink) Close() error                            { return nil }

// DirSink writes each frame as a numbered image file.
type DirSink struct {
	Dir    string
	Format string
	n      int
}

// NewDirSink creates dir and returns a sink writing frame_00000.<format>.
func NewDirSink(dir, format string) (*DirSink, error) {
	f, err := export.NormalizeFormat(format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}
	return &DirSink{Dir: dir, Format: f}, nil
}

func (s *DirSink) WriteFrame(img *image.RGBA, _ time.Time) error {
	path := filepath.Join(s.Dir, fmt.Sprintf("frame_%05d.%s", s.n, s.Format))
	if err := export.WriteFile(path, img, s.Format); err != nil {
		return err
	}
	s.n++
	return nil
}

// Frames returns the number of frames written.
func (s *DirSink) Frames() int { return s.n }

func (s *DirSink) Close() error { return nil }

// minGIFDelay is the shortest frame delay, in centiseconds, that viewers
// honour; shorter delays are replaced by a slow default.
const minGIFDelay = 2

// GIFSink collects frames and writes an animated GIF on Close. Frames are
// quantized to the Plan 9 palette with Floyd-Steinberg dithering.
//
// GIF delays are whole centiseconds. Each frame is placed at the centisecond
// nearest its nominal start, so the total running time tracks frames×Delay
// instead of drifting. Frames that would be shown for less than
// minGIFDelay are dropped, which caps playback at 50 frames per second.
type GIFSink struct {
	Path    string
	Delay   time.Duration
	anim    gif.GIF
	elapsed time.Duration
	lastCS  int
	dropped int
}

// NewGIFSink returns a sink writing to path with delay between frames.
func NewGIFSink(path string, delay time.Duration) *GIFSink {
	return &GIFSink{Path: path, Delay: delay}
}

func (s *GIFSink) WriteFrame(img *image.RGBA, _ time.Time) error {
	cs := centiseconds(s.elapsed)
	s.elapsed += s.Delay

	if n := len(s.anim.Image); n > 0 {
		d := cs - s.lastCS
		if d < minGIFDelay {
			s.dropped++
			return nil
		}
		s.anim.Delay[n-1] = d
	}

	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	s.anim.Image = append(s.anim.Image, p)
	s.anim.Delay = append(s.anim.Delay, minGIFDelay)
	s.lastCS = cs
	return nil
}

func centiseconds(d time.Duration) int {
	return int((d + 5*time.Millisecond) / (10 * time.Millisecond))
}

// Frames returns the number of frames collected.
func (s *GIFSink) Frames() int { return len(s.anim.Image) }

// Dropped returns the number of frames skipped to respect minGIFDelay.
func (s *GIFSink) Dropped() int { return s.dropped }

// Delays returns the per-frame delays in centiseconds, including the final
// frame's, as they will be encoded.
func (s *GIFSink) Delays() []int {
	s.finish()
	return append([]int(nil), s.anim.Delay...)
}

// finish sets the last frame's delay from the total running time.
func (s *GIFSink) finish() {
	n := len(s.anim.Delay)
	if n == 0 {
		return
	}
	d := centiseconds(s.elapsed) - s.lastCS
	if d < minGIFDelay {
		d = minGIFDelay
	}
	s.anim.Delay[n-1] = d
}

func (s *GIFSink) Close() error {
	if len(s.anim.Image) == 0 {
		return nil
	}
	s.finish()
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &s.anim); err != nil {
		f.Close()
		return fmt.Errorf("encode gif: %w", err)
	}
	return f.Close()
}
