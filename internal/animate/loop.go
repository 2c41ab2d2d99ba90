// Package animate drives the renderer at a fixed cadence and hands every
// frame to a Sink.
package animate

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/clockface/internal/clock"
	"github.com/mj1618/clockface/internal/render"
)

// DefaultFPS is the screensaver refresh rate.
const DefaultFPS = 30

// Sink receives rendered frames. Frames are owned by the sink once passed.
type Sink interface {
	WriteFrame(img *image.RGBA, at time.Time) error
	Close() error
}

// Stats counts loop outcomes.
type Stats struct {
	Rendered int `yaml:"rendered" json:"rendered"`
	Skipped  int `yaml:"skipped" json:"skipped"`
}

// Loop renders frames from Clock through Renderer into Sink.
type Loop struct {
	Clock    clock.Clock
	Sampler  clock.Sampler
	Renderer *render.Renderer
	Sink     Sink
	FPS      int
	Logger   *zap.Logger

	mu    sync.Mutex
	size  image.Point
	mode  render.Mode
	stats Stats
}

// NewLoop creates a loop with a real clock, a fresh renderer and a
// discarding sink. Callers replace fields before running.
func NewLoop(size image.Point, mode render.Mode) *Loop {
	return &Loop{
		Clock:    clock.RealClock{},
		Renderer: render.New(),
		Sink:     DiscardSink{},
		FPS:      DefaultFPS,
		Logger:   zap.NewNop(),
		size:     size,
		mode:     mode,
	}
}

// Reconfigure changes the frame size and mode. It takes effect on the
// next frame; the renderer rebuilds its static layer when the key changes.
func (l *Loop) Reconfigure(size image.Point, mode render.Mode) {
	l.mu.Lock()
	l.size, l.mode = size, mode
	l.mu.Unlock()
	l.logger().Info("loop reconfigured",
		zap.Int("width", size.X), zap.Int("height", size.Y),
		zap.Bool("preview", mode.Preview), zap.Bool("transparent", mode.TransparentBackground))
}

// Stats returns the counts so far.
func (l *Loop) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Interval is the time between frames.
func (l *Loop) Interval() time.Duration {
	fps := l.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// Run renders one frame per tick until ctx is done. Render failures skip
// the frame; sink failures stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.Interval())
	defer ticker.Stop()

	if err := l.Step(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := l.Step(); err != nil {
				return err
			}
		}
	}
}

// RunFrames renders n frames back to back, advancing fc by one interval
// after each frame. It is the offline counterpart of Run.
func (l *Loop) RunFrames(ctx context.Context, fc *clock.FakeClock, n int) error {
	l.Clock = fc
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.Step(); err != nil {
			return err
		}
		fc.Advance(l.Interval())
	}
	return nil
}

// Step renders and emits a single frame at the clock's current time.
func (l *Loop) Step() error {
	l.mu.Lock()
	size, mode := l.size, l.mode
	l.mu.Unlock()

	now := l.Clock.Now()
	img, err := l.Renderer.Render(size, l.Sampler.Sample(now), mode)
	if err != nil {
		// The previous frame stays on screen.
		l.count(false)
		l.logger().Debug("frame skipped", zap.Error(err))
		return nil
	}
	if err := l.Sink.WriteFrame(img, now); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	l.count(true)
	return nil
}

func (l *Loop) count(rendered bool) {
	l.mu.Lock()
	if rendered {
		l.stats.Rendered++
	} else {
		l.stats.Skipped++
	}
	l.mu.Unlock()
}

func (l *Loop) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}
