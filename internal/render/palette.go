package render

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is every color the renderer paints with.
type Palette struct {
	Background     color.NRGBA
	Bezel          color.NRGBA
	BezelDark      color.NRGBA
	BezelLight     color.NRGBA
	BezelHighlight color.NRGBA
	BezelShadow    color.NRGBA
	Face           color.NRGBA
	Marker         color.NRGBA
	Hand           color.NRGBA
	Accent         color.NRGBA
	HandShadow     color.NRGBA
	Glass          color.NRGBA
	Vignette       color.NRGBA
}

// DefaultPalette returns the canonical brushed-steel and ivory palette.
func DefaultPalette() Palette {
	return Palette{
		Background:     color.NRGBA{A: 0xff},
		Bezel:          color.NRGBA{R: 0x8a, G: 0x8d, B: 0x91, A: 0xff},
		BezelDark:      color.NRGBA{R: 0x5a, G: 0x5d, B: 0x62, A: 0xff},
		BezelLight:     color.NRGBA{R: 0xd8, G: 0xdb, B: 0xe0, A: 0xff},
		BezelHighlight: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x99},
		BezelShadow:    color.NRGBA{A: 0x80},
		Face:           color.NRGBA{R: 0xf4, G: 0xf1, B: 0xea, A: 0xff},
		Marker:         color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
		Hand:           color.NRGBA{R: 0x1c, G: 0x1c, B: 0x1e, A: 0xff},
		Accent:         color.NRGBA{R: 0xd6, G: 0x2d, B: 0x20, A: 0xff},
		HandShadow:     color.NRGBA{A: 0x59},
		Glass:          color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x5a},
		Vignette:       color.NRGBA{A: 0x2e},
	}
}

func (p *Palette) fields() map[string]*color.NRGBA {
	return map[string]*color.NRGBA{
		"background":      &p.Background,
		"bezel":           &p.Bezel,
		"bezel_dark":      &p.BezelDark,
		"bezel_light":     &p.BezelLight,
		"bezel_highlight": &p.BezelHighlight,
		"bezel_shadow":    &p.BezelShadow,
		"face":            &p.Face,
		"marker":          &p.Marker,
		"hand":            &p.Hand,
		"accent":          &p.Accent,
		"hand_shadow":     &p.HandShadow,
		"glass":           &p.Glass,
		"vignette":        &p.Vignette,
	}
}

// PaletteKeys lists the names accepted by ParsePalette.
func PaletteKeys() []string {
	var p Palette
	keys := make([]string, 0, 13)
	for k := range p.fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Hex returns every color formatted by FormatColor, keyed by PaletteKeys
// names.
func (p Palette) Hex() map[string]string {
	out := make(map[string]string, 13)
	for k, c := range p.fields() {
		out[k] = FormatColor(*c)
	}
	return out
}

// ParsePalette applies hex color overrides, keyed by PaletteKeys names, on
// top of the default palette.
func ParsePalette(overrides map[string]string) (Palette, error) {
	p := DefaultPalette()
	fields := p.fields()
	for key, value := range overrides {
		field, ok := fields[strings.ToLower(key)]
		if !ok {
			return Palette{}, fmt.Errorf("unknown palette color %q (valid: %s)", key, strings.Join(PaletteKeys(), ", "))
		}
		c, err := ParseColor(value)
		if err != nil {
			return Palette{}, fmt.Errorf("palette %s: %w", key, err)
		}
		*field = c
	}
	return p, nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor returns c as "#rrggbb", or "#rrggbbaa" when not opaque.
func FormatColor(c color.NRGBA) string {
	hex := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	if c.A == 0xff {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, c.A)
}

// blend mixes a towards b by t in RGB space.
func blend(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(alpha + 0.5)}
}
