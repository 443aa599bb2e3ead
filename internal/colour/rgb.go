package colour

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Hex is a canonical "#rrggbb" colour string (lowercase).
// It is the interchange representation between the engine and its callers.
type Hex string

// Black and White are the two candidate text colours.
const (
	Black Hex = "#000000"
	White Hex = "#ffffff"
)

// String returns the hex string.
func (h Hex) String() string {
	return string(h)
}

// RGB represents a colour as three 8-bit sRGB channels.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// NewRGB builds an RGB from integer channels, rejecting values outside [0,255].
func NewRGB(r, g, b int) (RGB, error) {
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("%w: rgb(%d, %d, %d)", ErrOutOfRangeChannel, r, g, b)
		}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// RGBFromFloat builds an RGB from real-valued channels on the 0-255 scale.
// Channels are clamped to [0,255] and rounded to the nearest integer.
func RGBFromFloat(r, g, b float64) RGB {
	return RGB{R: channel(r), G: channel(g), B: channel(b)}
}

// channel clamps and rounds a single 0-255 channel. NaN maps to 0.
func channel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// Hex returns the colour as a canonical hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() Hex {
	return Hex(fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B))
}

// String returns the RGB colour in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return FormatRGB(rgb)
}

// Color converts the RGB value to an opaque color.RGBA.
func (rgb RGB) Color() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ToRGB converts a color.Color to RGB, dropping alpha.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ParseHex parses "#rgb", "#rrggbb" or "rrggbb" (any case) into RGB.
// Shorthand is expanded by digit duplication ("#abc" is "#aabbcc") and
// needs its leading '#', since bare three-letter words such as "bad" or
// "fed" are otherwise indistinguishable from colours.
func ParseHex(input string) (RGB, error) {
	trimmed := strings.TrimSpace(input)
	digits := strings.TrimPrefix(trimmed, "#")
	hasHash := len(digits) != len(trimmed)

	switch len(digits) {
	case 3:
		if !hasHash {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, input)
		}
		digits = string([]byte{
			digits[0], digits[0],
			digits[1], digits[1],
			digits[2], digits[2],
		})
	case 6:
	default:
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, input)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, input)
	}

	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// NormalizeHex returns the canonical lowercase "#rrggbb" form of a hex colour.
func NormalizeHex(input string) (Hex, error) {
	rgb, err := ParseHex(input)
	if err != nil {
		return "", err
	}
	return rgb.Hex(), nil
}

// HexToRGB is ParseHex for an already typed Hex value.
func HexToRGB(h Hex) (RGB, error) {
	return ParseHex(string(h))
}

// RGBToHex encodes an RGB value as canonical hex.
func RGBToHex(rgb RGB) Hex {
	return rgb.Hex()
}

// mustRGB decodes a Hex for the total, Hex-typed entry points. Engine-produced
// hex values are always well formed; anything else decodes to black, which
// those functions document. Their string-taking *Hex variants report the
// error instead.
func mustRGB(h Hex) RGB {
	rgb, err := ParseHex(string(h))
	if err != nil {
		return RGB{}
	}
	return rgb
}
