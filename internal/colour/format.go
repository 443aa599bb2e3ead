package colour

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Notation represents the display string forms a colour can take.
type Notation string

const (
	NotationHex   Notation = "hex"   // #rrggbb
	NotationRGB   Notation = "rgb"   // rgb(r, g, b)
	NotationHSL   Notation = "hsl"   // hsl(h, s%, l%)
	NotationOKLCH Notation = "oklch" // oklch(l% c h)
)

// Notations returns every supported display notation.
func Notations() []Notation {
	return []Notation{NotationHex, NotationRGB, NotationHSL, NotationOKLCH}
}

// ParseNotation validates a display notation name.
func ParseNotation(s string) (Notation, error) {
	f := Notation(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Notations() {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown colour notation: %s (valid: hex, rgb, hsl, oklch)", s)
}

// Format renders a colour in the given notation.
// Unknown notations fall back to hex.
func Format(rgb RGB, notation Notation) string {
	switch notation {
	case NotationRGB:
		return FormatRGB(rgb)
	case NotationHSL:
		return FormatHSL(RGBToHSL(rgb))
	case NotationOKLCH:
		return FormatOKLCH(RGBToOKLCH(rgb))
	default:
		return string(rgb.Hex())
	}
}

// FormatRGB renders "rgb(r, g, b)".
func FormatRGB(rgb RGB) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// FormatHSL renders "hsl(h, s%, l%)" with two decimal places.
func FormatHSL(c HSL) string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)",
		formatNumber(NormalizeHue(c.H), 2), formatNumber(c.S, 2), formatNumber(c.L, 2))
}

// FormatOKLCH renders "oklch(l% c h)". Lightness and hue carry two decimal
// places; chroma carries four since it rarely exceeds 0.4.
func FormatOKLCH(c OKLCH) string {
	return fmt.Sprintf("oklch(%s%% %s %s)",
		formatNumber(c.L*100, 2), formatNumber(c.C, 4), formatNumber(NormalizeHue(c.H), 2))
}

// formatNumber rounds to the given decimal places and trims trailing zeros.
func formatNumber(v float64, places int) string {
	s := strconv.FormatFloat(v, 'f', places, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

const numberPattern = `([+-]?(?:\d+\.?\d*|\.\d+))`

var (
	rgbPattern   = regexp.MustCompile(`^rgb\(\s*` + numberPattern + `\s*[,\s]\s*` + numberPattern + `\s*[,\s]\s*` + numberPattern + `\s*\)$`)
	hslPattern   = regexp.MustCompile(`^hsl\(\s*` + numberPattern + `(?:deg)?\s*[,\s]\s*` + numberPattern + `%\s*[,\s]\s*` + numberPattern + `%\s*\)$`)
	oklchPattern = regexp.MustCompile(`^oklch\(\s*` + numberPattern + `(%?)\s+` + numberPattern + `\s+` + numberPattern + `(?:deg)?\s*\)$`)
)

// Parse accepts a hex colour or any of the functional notations produced by
// FormatRGB, FormatHSL and FormatOKLCH, and returns canonical hex.
func Parse(input string) (Hex, error) {
	s := strings.ToLower(strings.TrimSpace(input))

	switch {
	case strings.HasPrefix(s, "rgb("):
		m := rgbPattern.FindStringSubmatch(s)
		if m == nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidColorFormat, input)
		}
		v := parseFloats(m[1:])
		for _, c := range v {
			if c < 0 || c > 255 {
				return "", fmt.Errorf("%w: %q", ErrOutOfRangeChannel, input)
			}
		}
		return RGBFromFloat(v[0], v[1], v[2]).Hex(), nil

	case strings.HasPrefix(s, "hsl("):
		m := hslPattern.FindStringSubmatch(s)
		if m == nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidColorFormat, input)
		}
		v := parseFloats(m[1:])
		c, err := NewHSL(v[0], v[1], v[2])
		if err != nil {
			return "", err
		}
		return HSLToHex(c), nil

	case strings.HasPrefix(s, "oklch("):
		m := oklchPattern.FindStringSubmatch(s)
		if m == nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidColorFormat, input)
		}
		v := parseFloats([]string{m[1], m[3], m[4]})
		l := v[0]
		if m[2] == "%" {
			l /= 100
		}
		c, err := NewOKLCH(l, v[1], v[2])
		if err != nil {
			return "", err
		}
		return OKLCHToHex(c), nil
	}

	return NormalizeHex(input)
}

// parseFloats converts regexp captures that are already known to be numeric.
func parseFloats(in []string) []float64 {
	out := make([]float64, len(in))
	for i, s := range in {
		out[i], _ = strconv.ParseFloat(s, 64)
	}
	return out
}
