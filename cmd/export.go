package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/clockface/internal/clock"
	"github.com/mj1618/clockface/internal/export"
	"github.com/mj1618/clockface/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the static icon set",
	Long: `Render the clock at 10:10:30 in full-screen mode with an opaque
background and write clock_512 and clock_1024 images into a directory.

Examples:
  clockface export --dir icons
  clockface export --dir icons --iconset --format tiff`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("dir", ".", "Output directory")
	exportCmd.Flags().String("format", "png", "Image format: png, jpg, bmp, tiff")
	exportCmd.Flags().Bool("iconset", false, "Also write 16-256 pixel icons downscaled from the 1024 render")
}

func runExport(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	format, _ := cmd.Flags().GetString("format")
	iconset, _ := cmd.Flags().GetBool("iconset")

	format, err := export.NormalizeFormat(format)
	if err != nil {
		return err
	}
	loc, err := appConfig.Location()
	if err != nil {
		return err
	}
	r, err := newRenderer()
	if err != nil {
		return err
	}

	files, err := export.Icons(dir, export.Options{
		Format:   format,
		Iconset:  iconset,
		Location: loc,
		Renderer: r,
		Logger:   appLogger,
	})
	if err != nil {
		return err
	}

	result := output.ExportResult{
		Dir:    dir,
		Format: format,
		Time:   clock.DemoTime(loc).Format("15:04:05"),
	}
	for _, f := range files {
		result.Files = append(result.Files, output.ExportFile{Path: f.Path, Size: f.Size, Scaled: f.Scaled})
	}
	return output.Print(result)
}
