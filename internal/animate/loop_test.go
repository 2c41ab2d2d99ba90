package animate

import (
	"context"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/clockface/internal/clock"
	"github.com/mj1618/clockface/internal/render"
)

type recordSink struct {
	frames []*image.RGBA
	times  []time.Time
	closed bool
}

func (s *recordSink) WriteFrame(img *image.RGBA, at time.Time) error {
	s.frames = append(s.frames, img)
	s.times = append(s.times, at)
	return nil
}

func (s *recordSink) Close() error {
	s.closed = true
	return nil
}

var start = time.Date(2024, 1, 1, 10, 10, 30, 0, time.UTC)

func TestRunFrames_AdvancesClock(t *testing.T) {
	sink := &recordSink{}
	l := NewLoop(image.Pt(64, 64), render.Mode{Preview: true})
	l.Sink = sink
	l.FPS = 10

	fc := clock.NewFakeClock(start)
	require.NoError(t, l.RunFrames(context.Background(), fc, 5))

	require.Len(t, sink.frames, 5)
	for i, at := range sink.times {
		assert.Equal(t, start.Add(time.Duration(i)*100*time.Millisecond), at)
	}
	assert.Equal(t, start.Add(500*time.Millisecond), fc.Now())
	assert.Equal(t, Stats{Rendered: 5}, l.Stats())

	rs := l.Renderer.Stats()
	assert.Equal(t, 1, rs.Regenerations, "static layer built once")
	assert.Equal(t, 4, rs.CacheHits)
}

func TestRunFrames_SecondHandMoves(t *testing.T) {
	sink := &recordSink{}
	l := NewLoop(image.Pt(96, 96), render.Mode{})
	l.Sink = sink
	l.FPS = 1

	require.NoError(t, l.RunFrames(context.Background(), clock.NewFakeClock(start), 2))
	require.Len(t, sink.frames, 2)
	assert.NotEqual(t, sink.frames[0].Pix, sink.frames[1].Pix)
}

func TestStep_InvalidSizeSkipsFrame(t *testing.T) {
	sink := &recordSink{}
	l := NewLoop(image.Pt(0, 64), render.Mode{})
	l.Sink = sink
	l.Clock = clock.NewFakeClock(start)

	require.NoError(t, l.Step())
	assert.Empty(t, sink.frames)
	assert.Equal(t, Stats{Skipped: 1}, l.Stats())

	l.Reconfigure(image.Pt(64, 64), render.Mode{})
	require.NoError(t, l.Step())
	assert.Len(t, sink.frames, 1)
}

func TestReconfigure_RebuildsStaticLayer(t *testing.T) {
	l := NewLoop(image.Pt(64, 64), render.Mode{})
	l.Clock = clock.NewFakeClock(start)

	require.NoError(t, l.Step())
	require.NoError(t, l.Step())
	l.Reconfigure(image.Pt(64, 64), render.Mode{TransparentBackground: true})
	require.NoError(t, l.Step())

	assert.Equal(t, 2, l.Renderer.Stats().Regenerations)
}

func TestRun_StopsOnCancel(t *testing.T) {
	sink := &recordSink{}
	l := NewLoop(image.Pt(32, 32), render.Mode{Preview: true})
	l.Sink = sink
	l.FPS = 100

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	require.NoError(t, l.Run(ctx))
	assert.NotEmpty(t, sink.frames)
}

func TestInterval(t *testing.T) {
	l := &Loop{FPS: 30}
	assert.Equal(t, time.Second/30, l.Interval())
	l.FPS = 0
	assert.Equal(t, time.Second/DefaultFPS, l.Interval())
}

func TestGIFSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.gif")
	sink := NewGIFSink(path, 100*time.Millisecond)
	l := NewLoop(image.Pt(48, 48), render.Mode{Preview: true})
	l.Sink = sink
	l.FPS = 10

	require.NoError(t, l.RunFrames(context.Background(), clock.NewFakeClock(start), 3))
	require.NoError(t, sink.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 3)
	assert.Equal(t, []int{10, 10, 10}, anim.Delay)
}

func feedGIF(fps, frames int) *GIFSink {
	sink := NewGIFSink("unused.gif", time.Second/time.Duration(fps))
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < frames; i++ {
		_ = sink.WriteFrame(img, start)
	}
	return sink
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestGIFSink_DelaysTrackFrameRate(t *testing.T) {
	tests := []struct {
		fps, frames int
		want        []int
		dropped     int
	}{
		{fps: 10, frames: 3, want: []int{10, 10, 10}},
		{fps: 30, frames: 3, want: []int{3, 4, 3}},
		{fps: 30, frames: 30, dropped: 0},
		{fps: 60, frames: 6, want: []int{2, 3, 2, 3}, dropped: 2},
		{fps: 60, frames: 60, dropped: 20},
	}
	for _, tt := range tests {
		sink := feedGIF(tt.fps, tt.frames)
		delays := sink.Delays()
		if tt.want != nil {
			assert.Equal(t, tt.want, delays, "fps=%d", tt.fps)
		}
		// Total running time matches frames/fps to the centisecond.
		assert.Equal(t, tt.frames*100/tt.fps, sum(delays), "fps=%d frames=%d", tt.fps, tt.frames)
		assert.Equal(t, tt.dropped, sink.Dropped(), "fps=%d frames=%d", tt.fps, tt.frames)
		assert.Equal(t, tt.frames-tt.dropped, sink.Frames())
	}
}

func TestGIFSink_NeverBelowMinimumDelay(t *testing.T) {
	delays := feedGIF(120, 24).Delays()
	require.NotEmpty(t, delays)
	for i, d := range delays {
		assert.GreaterOrEqual(t, d, minGIFDelay, "frame %d", i)
	}
	assert.InDelta(t, 20, sum(delays), 1)
}

func TestGIFSink_EmptyWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gif")
	require.NoError(t, NewGIFSink(path, time.Second).Close())
	assert.NoFileExists(t, path)
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	sink, err := NewDirSink(dir, "png")
	require.NoError(t, err)

	l := NewLoop(image.Pt(32, 32), render.Mode{})
	l.Sink = sink
	require.NoError(t, l.RunFrames(context.Background(), clock.NewFakeClock(start), 2))

	assert.Equal(t, 2, sink.Frames())
	assert.FileExists(t, filepath.Join(dir, "frame_00000.png"))
	assert.FileExists(t, filepath.Join(dir, "frame_00001.png"))
}

func TestNewDirSink_BadFormat(t *testing.T) {
	_, err := NewDirSink(t.TempDir(), "heic")
	assert.Error(t, err)
}
