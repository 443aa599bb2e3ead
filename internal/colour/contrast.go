// Package colour provides WCAG legibility scoring.
package colour

import "math"

// WCAG 2.x contrast thresholds.
const (
	ThresholdAANormal  = 4.5
	ThresholdAALarge   = 3.0
	ThresholdAAANormal = 7.0
	ThresholdAAALarge  = 4.5
)

// RelativeLuminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func RelativeLuminance(rgb RGB) float64 {
	r := gammaDecode(float64(rgb.R) / 255.0)
	g := gammaDecode(float64(rgb.G) / 255.0)
	b := gammaDecode(float64(rgb.B) / 255.0)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaDecode linearises a gamma-encoded channel using the WCAG constants.
func gammaDecode(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// The ratio is symmetric in its arguments.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(a, b RGB) float64 {
	l1 := RelativeLuminance(a)
	l2 := RelativeLuminance(b)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// Compliance holds WCAG pass flags for a contrast ratio.
type Compliance struct {
	AANormal  bool `json:"aa_normal"`
	AALarge   bool `json:"aa_large"`
	AAANormal bool `json:"aaa_normal"`
	AAALarge  bool `json:"aaa_large"`
}

// Level summarises the compliance as the strongest normal-text level met,
// falling back to "AA Large" when only large text passes.
func (c Compliance) Level() string {
	switch {
	case c.AAANormal:
		return "AAA"
	case c.AANormal:
		return "AA"
	case c.AALarge:
		return "AA Large"
	default:
		return "Fail"
	}
}

// Classify maps a contrast ratio onto the WCAG AA/AAA pass flags.
func Classify(ratio float64) Compliance {
	return Compliance{
		AANormal:  ratio >= ThresholdAANormal,
		AALarge:   ratio >= ThresholdAALarge,
		AAANormal: ratio >= ThresholdAAANormal,
		AAALarge:  ratio >= ThresholdAAALarge,
	}
}

// ContrastResult is a contrast ratio together with its classification.
type ContrastResult struct {
	Ratio float64 `json:"ratio"`
	Compliance
}

// Contrast scores two RGB colours.
func Contrast(a, b RGB) ContrastResult {
	ratio := ContrastRatio(a, b)
	return ContrastResult{Ratio: ratio, Compliance: Classify(ratio)}
}

// ContrastHex parses two hex colours and scores them.
func ContrastHex(a, b string) (ContrastResult, error) {
	ra, err := ParseHex(a)
	if err != nil {
		return ContrastResult{}, err
	}
	rb, err := ParseHex(b)
	if err != nil {
		return ContrastResult{}, err
	}
	return Contrast(ra, rb), nil
}

// OptimalTextColor returns pure black or pure white, whichever contrasts
// more with the background. Equal ratios resolve to black.
//
// The background must be a well-formed Hex; a malformed one is treated as
// black (and so yields white). Use OptimalTextColorHex for unvalidated input.
func OptimalTextColor(background Hex) Hex {
	bg := mustRGB(background)
	onBlack := ContrastRatio(bg, RGB{})
	onWhite := ContrastRatio(bg, RGB{R: 255, G: 255, B: 255})
	return pickTextColor(onBlack, onWhite)
}

// pickTextColor chooses between black and white text given each one's
// contrast against the background.
func pickTextColor(onBlack, onWhite float64) Hex {
	if onBlack >= onWhite {
		return Black
	}
	return White
}

// OptimalTextColorHex parses a hex background and picks its text colour.
func OptimalTextColorHex(background string) (Hex, error) {
	h, err := NormalizeHex(background)
	if err != nil {
		return "", err
	}
	return OptimalTextColor(h), nil
}
