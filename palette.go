package dailypost

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

// Palette is the set of colors shared by the stylesheet and the generated images.
type Palette struct {
	Primary    string
	Background string
	Secondary  string
	Accent     string
}

const (
	defaultSecondary = "#2c3e50"
	defaultAccent    = "#e67e22"
)

// seasonalPalettes maps a month to its primary and background colors.
var seasonalPalettes = map[time.Month][2]string{
	time.January:   {"#c49a6c", "#fff9f2"},
	time.February:  {"#e89fb2", "#fff6fb"},
	time.March:     {"#f2c17d", "#fff9f2"},
	time.April:     {"#b0d7c6", "#f7fffb"},
	time.May:       {"#9aa8ff", "#f6f8ff"},
	time.June:      {"#f6d6a6", "#fffaf6"},
	time.July:      {"#ffd7e0", "#fff6f8"},
	time.August:    {"#c7f0d8", "#f8fffb"},
	time.September: {"#e6c9ff", "#fbf8ff"},
	time.October:   {"#f3b57d", "#fff8f2"},
	time.November:  {"#c8c8c8", "#fbfbfb"},
	time.December:  {"#ffd9a6", "#fffaf6"},
}

// FixedPalette is used when the palette mode is "fixed", and as the seasonal
// fallback for an unknown month.
var FixedPalette = Palette{
	Primary:    "#b8860b",
	Background: "#fffaf6",
	Secondary:  defaultSecondary,
	Accent:     defaultAccent,
}

// SeasonalPalette returns the palette for the month of t.
func SeasonalPalette(t time.Time) Palette {
	pc, ok := seasonalPalettes[t.Month()]
	if !ok {
		return FixedPalette
	}
	return Palette{
		Primary:    pc[0],
		Background: pc[1],
		Secondary:  defaultSecondary,
		Accent:     defaultAccent,
	}
}

// SelectPalette picks the palette for the given mode. Unknown modes are
// treated as seasonal.
func SelectPalette(mode string, t time.Time) Palette {
	if mode == PaletteFixed {
		return FixedPalette
	}
	return SeasonalPalette(t)
}

// ParseHexColor parses "#rgb" or "#rrggbb".
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// rgba is ParseHexColor for palette values, falling back to fallback on a bad value.
func rgba(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return fallback
	}
	return c
}
