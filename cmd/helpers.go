package cmd

import (
	"fmt"
	"image"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/clockface/internal/clock"
	"github.com/mj1618/clockface/internal/render"
)

// addRenderFlags registers the flags shared by commands that render frames.
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().Int("width", 0, "Canvas width in pixels (default: config width)")
	cmd.Flags().Int("height", 0, "Canvas height in pixels (default: config height)")
	cmd.Flags().Bool("preview", false, "Use the small fixed preview margin")
	cmd.Flags().Bool("transparent", false, "Leave the background transparent")
}

// addTimeFlags registers --at and --tz.
func addTimeFlags(cmd *cobra.Command) {
	cmd.Flags().String("at", "", "Wall-clock time HH:MM[:SS[.fff]] (default: now)")
	cmd.Flags().String("tz", "", "IANA time zone (default: config timezone)")
}

// renderSize returns the canvas size from flags, falling back to config.
func renderSize(cmd *cobra.Command) image.Point {
	size := image.Pt(appConfig.Width, appConfig.Height)
	if cmd.Flags().Changed("width") {
		size.X, _ = cmd.Flags().GetInt("width")
	}
	if cmd.Flags().Changed("height") {
		size.Y, _ = cmd.Flags().GetInt("height")
	}
	return size
}

// renderMode returns the mode flags, falling back to config.
func renderMode(cmd *cobra.Command) render.Mode {
	mode := appConfig.RenderMode()
	if cmd.Flags().Changed("preview") {
		mode.Preview, _ = cmd.Flags().GetBool("preview")
	}
	if cmd.Flags().Changed("transparent") {
		mode.TransparentBackground, _ = cmd.Flags().GetBool("transparent")
	}
	return mode
}

// location resolves --tz, falling back to the configured timezone.
func location(cmd *cobra.Command) (*time.Location, error) {
	if tz, _ := cmd.Flags().GetString("tz"); tz != "" {
		return clock.LoadLocation(tz)
	}
	return appConfig.Location()
}

// resolveTime returns the instant to draw: --at on today's demo date, or now.
func resolveTime(cmd *cobra.Command) (time.Time, error) {
	loc, err := location(cmd)
	if err != nil {
		return time.Time{}, err
	}
	if at, _ := cmd.Flags().GetString("at"); at != "" {
		return clock.ParseClockTime(at, loc)
	}
	return time.Now().In(loc), nil
}

// newRenderer creates a renderer with the configured palette and logger.
func newRenderer() (*render.Renderer, error) {
	p, err := appConfig.RenderPalette()
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	return render.New(render.WithPalette(p), render.WithLogger(appLogger)), nil
}
