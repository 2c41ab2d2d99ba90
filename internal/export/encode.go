// Package export encodes rendered frames and produces the static icon set.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for image formats Encode cannot write.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// JPEGQuality is used for jpg output.
const JPEGQuality = 90

// Formats lists the accepted format names.
var Formats = []string{"png", "jpg", "bmp", "tiff"}

// NormalizeFormat lowercases a format name and folds aliases ("jpeg",
// "tif", leading dots) onto the canonical names in Formats.
func NormalizeFormat(format string) (string, error) {
	f := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
	switch f {
	case "", "png":
		return "png", nil
	case "jpg", "jpeg":
		return "jpg", nil
	case "bmp":
		return "bmp", nil
	case "tif", "tiff":
		return "tiff", nil
	}
	return "", fmt.Errorf("%w: %q (use %s)", ErrUnsupportedFormat, format, strings.Join(Formats, ", "))
}

// FormatFromPath guesses the format from a file extension, falling back
// to png when the path has none.
func FormatFromPath(path string) (string, error) {
	return NormalizeFormat(filepath.Ext(path))
}

// MIMEType returns the content type for a normalized format.
func MIMEType(format string) string {
	switch format {
	case "jpg":
		return "image/jpeg"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	}
	return "image/png"
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	f, err := NormalizeFormat(format)
	if err != nil {
		return err
	}
	switch f {
	case "jpg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// WriteFile encodes img into path, creating parent directories.
func WriteFile(path string, img image.Image, format string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
