package cmd

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mj1618/clockface/internal/animate"
	"github.com/mj1618/clockface/internal/clock"
	"github.com/mj1618/clockface/internal/config"
	"github.com/mj1618/clockface/internal/output"
)

var animateCmd = &cobra.Command{
	Use:   "animate",
	Short: "Drive the clock at a fixed frame rate",
	Long: `Render frames at a fixed cadence and write them to an animated GIF or a
directory of numbered images.

With --frames the frames are rendered offline as fast as possible, starting
at --at (default: now) and advancing by 1/fps each frame. Otherwise frames
follow the wall clock for --duration, or until interrupted.

With --watch the config file is watched and size or mode changes apply from
the next frame.

Examples:
  clockface animate --frames 60 --fps 10 --at 10:10:00 --output tick.gif
  clockface animate --duration 5s --output frames/
  clockface animate --watch`,
	RunE: runAnimate,
}

func init() {
	rootCmd.AddCommand(animateCmd)
	addRenderFlags(animateCmd)
	addTimeFlags(animateCmd)
	animateCmd.Flags().Int("fps", 0, "Frames per second (default: config fps)")
	animateCmd.Flags().Int("frames", 0, "Render this many frames offline instead of following the clock")
	animateCmd.Flags().Duration("duration", 0, "Stop after this long (0 = until interrupted)")
	animateCmd.Flags().String("output", "", "Output .gif file or frame directory (default: discard frames)")
	animateCmd.Flags().String("frame-format", "png", "Image format for frame directories")
	animateCmd.Flags().Bool("watch", false, "Reload size and mode from the config file while running")
}

func runAnimate(cmd *cobra.Command, args []string) error {
	frames, _ := cmd.Flags().GetInt("frames")
	duration, _ := cmd.Flags().GetDuration("duration")
	outPath, _ := cmd.Flags().GetString("output")
	frameFormat, _ := cmd.Flags().GetString("frame-format")
	watch, _ := cmd.Flags().GetBool("watch")

	fps := appConfig.FPS
	if cmd.Flags().Changed("fps") {
		fps, _ = cmd.Flags().GetInt("fps")
	}
	if fps <= 0 || fps > 120 {
		return fmt.Errorf("fps %d out of range 1-120", fps)
	}

	loc, err := location(cmd)
	if err != nil {
		return err
	}
	r, err := newRenderer()
	if err != nil {
		return err
	}

	loop := animate.NewLoop(renderSize(cmd), renderMode(cmd))
	loop.Renderer = r
	loop.Sampler = clock.Sampler{Location: loc}
	loop.FPS = fps
	loop.Logger = appLogger.Named("animate")

	sink, err := newSink(outPath, frameFormat, loop.Interval())
	if err != nil {
		return err
	}
	loop.Sink = sink

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	if watch {
		loader, err := watchConfig(func(cfg *config.Config) {
			loop.Reconfigure(image.Pt(cfg.Width, cfg.Height), cfg.RenderMode())
		})
		if err != nil {
			sink.Close()
			return err
		}
		defer loader.Close()
	}

	if frames > 0 {
		start, err := resolveTime(cmd)
		if err != nil {
			sink.Close()
			return err
		}
		err = loop.RunFrames(ctx, clock.NewFakeClock(start), frames)
		if err != nil && ctx.Err() == nil {
			sink.Close()
			return err
		}
	} else if err := loop.Run(ctx); err != nil {
		sink.Close()
		return err
	}

	if err := sink.Close(); err != nil {
		return err
	}

	stats, rs := loop.Stats(), r.Stats()
	return output.Print(output.AnimateResult{
		Output:        outPath,
		Frames:        stats.Rendered,
		Skipped:       stats.Skipped,
		FPS:           fps,
		Regenerations: rs.Regenerations,
		CacheHits:     rs.CacheHits,
	})
}

// newSink picks a sink from the output path: .gif files are animated,
// anything else is a directory of frames.
func newSink(path, frameFormat string, interval time.Duration) (animate.Sink, error) {
	switch {
	case path == "":
		return animate.DiscardSink{}, nil
	case strings.EqualFold(filepath.Ext(path), ".gif"):
		return animate.NewGIFSink(path, interval), nil
	default:
		return animate.NewDirSink(path, frameFormat)
	}
}

// watchConfig reloads the config file on change and passes every valid
// reload to onChange. Reload errors are logged until the loader is closed.
func watchConfig(onChange func(*config.Config)) (*config.Loader, error) {
	loader := config.NewLoader(configPath())
	if _, err := loader.Load(); err != nil {
		loader.Close()
		return nil, err
	}
	loader.OnChange(onChange)
	if err := loader.Watch(); err != nil {
		loader.Close()
		return nil, err
	}
	go func() {
		for err := range loader.Errors() {
			appLogger.Warn("config reload failed", zap.Error(err))
		}
	}()
	return loader, nil
}
