package colour

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// achromaticChroma is the chroma below which hue is reported as 0.
// White decodes to a chroma of ~4e-8 with an arbitrary hue.
const achromaticChroma = 1e-6

// OKLCH represents a colour in the perceptually uniform OKLCH space.
// L is lightness [0,1], C is chroma (>= 0, about 0.37 at most inside sRGB),
// H is hue in degrees [0,360).
type OKLCH struct {
	L float64 `json:"l" yaml:"l"`
	C float64 `json:"c" yaml:"c"`
	H float64 `json:"h" yaml:"h"`
}

// NewOKLCH builds an OKLCH value. Hue wraps into [0,360); lightness outside
// [0,1] and negative chroma are rejected.
func NewOKLCH(l, c, h float64) (OKLCH, error) {
	if math.IsNaN(l) || math.IsNaN(c) || math.IsNaN(h) || math.IsInf(h, 0) || math.IsInf(c, 0) ||
		l < 0 || l > 1 || c < 0 {
		return OKLCH{}, fmt.Errorf("%w: oklch(%g %g %g)", ErrOutOfRangeChannel, l, c, h)
	}
	return OKLCH{L: l, C: c, H: NormalizeHue(h)}, nil
}

// String returns the colour in the format "oklch(l% c h)".
func (c OKLCH) String() string {
	return FormatOKLCH(c)
}

// OKLab represents a colour in the OKLab space.
type OKLab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// linearRGB holds linear-light sRGB channels. Values outside [0,1] are
// out of gamut.
type linearRGB struct {
	R, G, B float64
}

// toLinear decodes the sRGB transfer curve.
func toLinear(rgb RGB) linearRGB {
	r, g, b := toColorful(rgb).LinearRgb()
	return linearRGB{R: r, G: g, B: b}
}

// fromLinear clips to gamut, re-encodes the sRGB transfer curve and rounds.
func fromLinear(c linearRGB) RGB {
	return fromColorful(colorful.LinearRgb(clamp(c.R, 0, 1), clamp(c.G, 0, 1), clamp(c.B, 0, 1)))
}

// inGamut reports whether every linear channel lies in [0,1].
func (c linearRGB) inGamut() bool {
	return c.R >= 0 && c.R <= 1 && c.G >= 0 && c.G <= 1 && c.B >= 0 && c.B <= 1
}

// linearToOKLab converts linear sRGB to OKLab through LMS.
func linearToOKLab(c linearRGB) OKLab {
	// M1: linear RGB -> LMS
	l := 0.4122214708*c.R + 0.5363325363*c.G + 0.0514459929*c.B
	m := 0.2119034982*c.R + 0.6806995451*c.G + 0.1073969566*c.B
	s := 0.0883024619*c.R + 0.2817188376*c.G + 0.6299787005*c.B

	lp := math.Cbrt(l)
	mp := math.Cbrt(m)
	sp := math.Cbrt(s)

	// M2: LMS' -> Lab
	return OKLab{
		L: 0.2104542553*lp + 0.7936177850*mp - 0.0040720468*sp,
		A: 1.9779984951*lp - 2.4285922050*mp + 0.4505937099*sp,
		B: 0.0259040371*lp + 0.7827717662*mp - 0.8086757660*sp,
	}
}

// okLabToLinear converts OKLab back to linear sRGB without clipping.
func okLabToLinear(c OKLab) linearRGB {
	lp := c.L + 0.3963377774*c.A + 0.2158037573*c.B
	mp := c.L - 0.1055613458*c.A - 0.0638541728*c.B
	sp := c.L - 0.0894841775*c.A - 1.2914855480*c.B

	l := lp * lp * lp
	m := mp * mp * mp
	s := sp * sp * sp

	return linearRGB{
		R: +4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		G: -1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		B: -0.0041960863*l - 0.7034186147*m + 1.7076147010*s,
	}
}

// LCH converts OKLab to its cylindrical OKLCH form.
func (c OKLab) LCH() OKLCH {
	chroma := math.Hypot(c.A, c.B)
	hue := 0.0
	if chroma >= achromaticChroma {
		hue = NormalizeHue(math.Atan2(c.B, c.A) * 180 / math.Pi)
	}
	return OKLCH{L: c.L, C: chroma, H: hue}
}

// Lab converts OKLCH to its rectangular OKLab form.
func (c OKLCH) Lab() OKLab {
	rad := c.H * math.Pi / 180
	return OKLab{L: c.L, A: c.C * math.Cos(rad), B: c.C * math.Sin(rad)}
}

// InGamut reports whether the colour is representable in sRGB.
func (c OKLCH) InGamut() bool {
	return okLabToLinear(c.Lab()).inGamut()
}

// RGBToOKLab converts RGB to OKLab.
func RGBToOKLab(rgb RGB) OKLab {
	return linearToOKLab(toLinear(rgb))
}

// RGBToOKLCH converts RGB to OKLCH.
func RGBToOKLCH(rgb RGB) OKLCH {
	return RGBToOKLab(rgb).LCH()
}

// OKLCHToRGB converts OKLCH to RGB. Colours outside the sRGB gamut are
// clipped per channel rather than rejected.
func OKLCHToRGB(c OKLCH) RGB {
	return fromLinear(okLabToLinear(c.Lab()))
}

// HexToOKLCH parses a hex colour and converts it to OKLCH.
func HexToOKLCH(input string) (OKLCH, error) {
	rgb, err := ParseHex(input)
	if err != nil {
		return OKLCH{}, err
	}
	return RGBToOKLCH(rgb), nil
}

// OKLCHToHex converts OKLCH to canonical hex, clipping out-of-gamut colours.
func OKLCHToHex(c OKLCH) Hex {
	return OKLCHToRGB(c).Hex()
}

// FitGamut reduces chroma, holding lightness and hue, until the colour fits
// inside sRGB. Colours already in gamut are returned unchanged.
func FitGamut(c OKLCH) OKLCH {
	if c.InGamut() {
		return c
	}
	lo, hi := 0.0, c.C
	for range 24 {
		mid := (lo + hi) / 2
		if (OKLCH{L: c.L, C: mid, H: c.H}).InGamut() {
			lo = mid
		} else {
			hi = mid
		}
	}
	c.C = lo
	return c
}
