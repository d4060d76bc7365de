// Package theme derives a club's display palette from its primary brand color.
package theme

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidColor = errors.New("invalid hex color")

// Steps are the conventional shade indices, lightest to darkest.
var Steps = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900}

// Interpolation fractions per step. Steps below 500 move toward white,
// steps above 500 toward black. 500 is the base color unchanged.
var (
	lightenAmounts = map[int]float64{50: 0.95, 100: 0.85, 200: 0.7, 300: 0.5, 400: 0.25}
	darkenAmounts  = map[int]float64{600: 0.15, 700: 0.3, 800: 0.45, 900: 0.6}
)

// Palette maps shade step to a "#rrggbb" hex string.
type Palette map[int]string

type rgb struct {
	r, g, b int
}

// Derive produces the 10-step shade palette for a 24-bit hex color.
// Pure: the same input always yields the same palette, and the base
// step equals the input exactly.
func Derive(hex string) (Palette, error) {
	base, err := parseHex(hex)
	if err != nil {
		return nil, err
	}

	p := make(Palette, len(Steps))
	for _, step := range Steps {
		switch {
		case step == 500:
			p[step] = normalizeHex(hex)
		case step < 500:
			p[step] = encodeHex(lighten(base, lightenAmounts[step]))
		default:
			p[step] = encodeHex(darken(base, darkenAmounts[step]))
		}
	}
	return p, nil
}

// CSSVariables renders the palette as CSS custom properties for the
// document root, e.g. "--color-primary-500".
func (p Palette) CSSVariables() map[string]string {
	out := make(map[string]string, len(p))
	for step, hex := range p {
		out[fmt.Sprintf("--color-primary-%d", step)] = hex
	}
	return out
}

func lighten(c rgb, amount float64) rgb {
	return rgb{
		r: clamp(c.r + int(round(float64(255-c.r)*amount))),
		g: clamp(c.g + int(round(float64(255-c.g)*amount))),
		b: clamp(c.b + int(round(float64(255-c.b)*amount))),
	}
}

func darken(c rgb, amount float64) rgb {
	return rgb{
		r: clamp(int(round(float64(c.r) * (1 - amount)))),
		g: clamp(int(round(float64(c.g) * (1 - amount)))),
		b: clamp(int(round(float64(c.b) * (1 - amount)))),
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func round(f float64) float64 {
	if f < 0 {
		return float64(int(f - 0.5))
	}
	return float64(int(f + 0.5))
}

func parseHex(hex string) (rgb, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return rgb{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return rgb{
		r: int(v >> 16 & 0xff),
		g: int(v >> 8 & 0xff),
		b: int(v & 0xff),
	}, nil
}

func normalizeHex(hex string) string {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	return "#" + strings.ToLower(s)
}

func encodeHex(c rgb) string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}
