package colour

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL represents a colour in the HSL colour space.
// H is hue in degrees [0,360), S and L are percentages [0,100].
type HSL struct {
	H float64 `json:"h" yaml:"h"`
	S float64 `json:"s" yaml:"s"`
	L float64 `json:"l" yaml:"l"`
}

// NewHSL builds an HSL value. Hue wraps into [0,360); saturation and
// lightness outside [0,100] are rejected.
func NewHSL(h, s, l float64) (HSL, error) {
	if math.IsNaN(h) || math.IsInf(h, 0) || s < 0 || s > 100 || l < 0 || l > 100 || math.IsNaN(s) || math.IsNaN(l) {
		return HSL{}, fmt.Errorf("%w: hsl(%g, %g%%, %g%%)", ErrOutOfRangeChannel, h, s, l)
	}
	return HSL{H: NormalizeHue(h), S: s, L: l}, nil
}

// String returns the HSL colour in the format "hsl(h, s%, l%)".
func (c HSL) String() string {
	return FormatHSL(c)
}

// NormalizeHue wraps a hue angle into [0,360). For example -10 becomes 350.
func NormalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// math.Mod of a tiny negative value can round back up to 360.
	if h >= 360 {
		h = 0
	}
	return h
}

// RGBToHSL converts RGB to HSL. Achromatic colours (s == 0) report hue 0.
func RGBToHSL(rgb RGB) HSL {
	h, s, l := toColorful(rgb).Hsl()
	if s == 0 {
		h = 0
	}
	return HSL{H: NormalizeHue(h), S: s * 100, L: l * 100}
}

// HSLToRGB converts HSL to RGB. Hue is wrapped, saturation and lightness
// are clamped to [0,100]. When saturation is zero the hue has no effect.
func HSLToRGB(c HSL) RGB {
	s := clamp(c.S, 0, 100) / 100
	l := clamp(c.L, 0, 100) / 100
	if s == 0 {
		return RGBFromFloat(l*255, l*255, l*255)
	}
	return fromColorful(colorful.Hsl(NormalizeHue(c.H), s, l))
}

// HexToHSL parses a hex colour and converts it to HSL.
func HexToHSL(input string) (HSL, error) {
	rgb, err := ParseHex(input)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(rgb), nil
}

// HSLToHex converts HSL to canonical hex.
func HSLToHex(c HSL) Hex {
	return HSLToRGB(c).Hex()
}

// toColorful converts an RGB value into go-colorful's [0,1] float form.
func toColorful(rgb RGB) colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

// fromColorful clamps a go-colorful colour into gamut and rounds it to RGB.
func fromColorful(c colorful.Color) RGB {
	return RGBFromFloat(c.R*255, c.G*255, c.B*255)
}

// clamp restricts v to [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
