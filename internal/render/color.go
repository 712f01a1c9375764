package render

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// FallbackSwatch is used for colors that cannot be parsed.
const FallbackSwatch = "#9e9e9e"

// ParseColor parses a display color: "#rgb", "#rrggbb" or a CSS color name.
//
// Returns false for anything else.
func ParseColor(s string) (colorful.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return colorful.Color{}, false
	}

	if strings.HasPrefix(s, "#") {
		if len(s) == 4 {
			s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, false
		}
		return c, true
	}

	named, ok := colornames.Map[s]
	if !ok {
		return colorful.Color{}, false
	}
	c, _ := colorful.MakeColor(named)
	return c, true
}

// SwatchHex returns the normalized "#rrggbb" form of a display color,
// or FallbackSwatch when it cannot be parsed.
func SwatchHex(s string) string {
	c, ok := ParseColor(s)
	if !ok {
		return FallbackSwatch
	}
	return c.Clamped().Hex()
}

// TextOn returns a readable text color ("#1a1a1a" or "#f5f5f5") for text
// drawn on top of the swatch hex.
func TextOn(swatch string) string {
	c, err := colorful.Hex(swatch)
	if err != nil {
		return "#1a1a1a"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#1a1a1a"
	}
	return "#f5f5f5"
}
