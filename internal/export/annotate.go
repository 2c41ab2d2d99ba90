package export

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const labelPadding = 4

var (
	labelColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Annotate returns a copy of img with text stamped in the bottom-left corner.
func Annotate(img image.Image, text string) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	if text == "" {
		return dst
	}
	face := basicfont.Face7x13
	baseline := b.Max.Y - labelPadding - face.Descent
	drawTextWithOutline(dst, text, b.Min.X+labelPadding, baseline, labelColor, outlineColor)
	return dst
}

// drawTextWithOutline draws text with its baseline starting at (x, y),
// outlined one pixel in every direction.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outline color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(outline),
		Face: basicfont.Face7x13,
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d.Dot = fixed.P(x+dx, y+dy)
			d.DrawString(text)
		}
	}

	d.Src = image.NewUniform(textColor)
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}
