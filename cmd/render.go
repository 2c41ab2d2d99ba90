package cmd

import (
	"encoding/base64"
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mj1618/clockface/internal/clock"
	"github.com/mj1618/clockface/internal/export"
	"github.com/mj1618/clockface/internal/output"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one clock frame",
	Long: `Render a single frame of the clock face.

Without --output the encoded image is written to stdout as base64.

Examples:
  clockface render --output clock.png
  clockface render --at 10:10:30 --width 256 --height 256 --preview
  clockface render --tz Asia/Tokyo --transparent --format tiff --output tokyo.tiff`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addRenderFlags(renderCmd)
	addTimeFlags(renderCmd)
	renderCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
	renderCmd.Flags().String("format", "", "Image format: png, jpg, bmp, tiff (default: from --output extension, else png)")
	renderCmd.Flags().Bool("annotate", false, "Stamp the rendered time in the bottom-left corner")
}

func runRender(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("output")
	annotate, _ := cmd.Flags().GetBool("annotate")

	format, _ := cmd.Flags().GetString("format")
	var err error
	if format == "" && outPath != "" {
		format, err = export.FormatFromPath(outPath)
	} else {
		format, err = export.NormalizeFormat(format)
	}
	if err != nil {
		return err
	}

	at, err := resolveTime(cmd)
	if err != nil {
		return err
	}
	r, err := newRenderer()
	if err != nil {
		return err
	}
	size, mode := renderSize(cmd), renderMode(cmd)

	frame, err := r.Render(size, clock.Sample(at), mode)
	if err != nil {
		return fmt.Errorf("render %dx%d: %w", size.X, size.Y, err)
	}
	var img image.Image = frame
	if annotate {
		img = export.Annotate(frame, at.Format("15:04:05"))
	}

	// Output to file or stdout
	if outPath != "" {
		if err := export.WriteFile(outPath, img, format); err != nil {
			return err
		}
		info, err := os.Stat(outPath)
		if err != nil {
			return err
		}
		appLogger.Debug("frame written", zap.String("path", outPath), zap.Int64("bytes", info.Size()))
		return output.Print(output.RenderResult{
			Path:        outPath,
			Format:      format,
			Width:       size.X,
			Height:      size.Y,
			Time:        at.Format("15:04:05.000"),
			Preview:     mode.Preview,
			Transparent: mode.TransparentBackground,
			Bytes:       info.Size(),
		})
	}

	// Default: write to stdout as base64 for easy agent consumption
	encoder := base64.NewEncoder(base64.StdEncoding, output.Stdout)
	if err := export.Encode(encoder, img, format); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	fmt.Fprintln(output.Stdout) // newline after base64
	return nil
}
