// Package colour provides colour-vision-deficiency simulation.
package colour

import (
	"fmt"
	"strings"
)

// Deficiency identifies a simulated colour-vision deficiency.
type Deficiency string

const (
	Protanopia    Deficiency = "protanopia"
	Deuteranopia  Deficiency = "deuteranopia"
	Tritanopia    Deficiency = "tritanopia"
	Protanomaly   Deficiency = "protanomaly"
	Deuteranomaly Deficiency = "deuteranomaly"
	Tritanomaly   Deficiency = "tritanomaly"
	Achromatopsia Deficiency = "achromatopsia"
)

// Deficiencies returns every simulated deficiency in display order.
func Deficiencies() []Deficiency {
	return []Deficiency{
		Protanopia, Deuteranopia, Tritanopia,
		Protanomaly, Deuteranomaly, Tritanomaly,
		Achromatopsia,
	}
}

// ParseDeficiency validates a deficiency name.
func ParseDeficiency(s string) (Deficiency, error) {
	d := Deficiency(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Deficiencies() {
		if d == valid {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown deficiency: %s (valid: protanopia, deuteranopia, tritanopia, protanomaly, deuteranomaly, tritanomaly, achromatopsia)", s)
}

// matrix3 is a row-major 3x3 transform on linear RGB.
type matrix3 [3][3]float64

func identityMatrix() matrix3 {
	return matrix3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// matrix returns the linear-RGB transform for a deficiency.
//
// Dichromacies use the Machado, Oliveira & Fernandes (2009) matrices at
// severity 1.0, anomalous trichromacies the same model at severity 0.6.
// Achromatopsia projects onto Rec. 709 luminance. Every row sums to 1, which
// keeps black and white fixed. Unknown values map to the identity.
func (d Deficiency) matrix() matrix3 {
	switch d {
	case Protanopia:
		return matrix3{
			{0.152286, 1.052583, -0.204868},
			{0.114503, 0.786281, 0.099216},
			{-0.003882, -0.048116, 1.051998},
		}
	case Deuteranopia:
		return matrix3{
			{0.367322, 0.860646, -0.227968},
			{0.280085, 0.672501, 0.047413},
			{-0.011820, 0.042940, 0.968881},
		}
	case Tritanopia:
		return matrix3{
			{1.255528, -0.076749, -0.178779},
			{-0.078411, 0.930809, 0.147602},
			{0.004733, 0.691367, 0.303900},
		}
	case Protanomaly:
		return matrix3{
			{0.385450, 0.769005, -0.154455},
			{0.100526, 0.829802, 0.069673},
			{-0.007442, -0.022190, 1.029632},
		}
	case Deuteranomaly:
		return matrix3{
			{0.547494, 0.607765, -0.155259},
			{0.181692, 0.781742, 0.036566},
			{-0.010410, 0.027275, 0.983136},
		}
	case Tritanomaly:
		return matrix3{
			{1.104996, -0.046633, -0.058363},
			{-0.032137, 0.971635, 0.060503},
			{0.001336, 0.317922, 0.680742},
		}
	case Achromatopsia:
		return matrix3{
			{0.2126, 0.7152, 0.0722},
			{0.2126, 0.7152, 0.0722},
			{0.2126, 0.7152, 0.0722},
		}
	default:
		return identityMatrix()
	}
}

// apply multiplies a linear colour by the matrix.
func (m matrix3) apply(c linearRGB) linearRGB {
	return linearRGB{
		R: m[0][0]*c.R + m[0][1]*c.G + m[0][2]*c.B,
		G: m[1][0]*c.R + m[1][1]*c.G + m[1][2]*c.B,
		B: m[2][0]*c.R + m[2][1]*c.G + m[2][2]*c.B,
	}
}

// lerp blends from the identity (t = 0) to m (t = 1).
func (m matrix3) lerp(t float64) matrix3 {
	out := identityMatrix()
	for i := range 3 {
		for j := range 3 {
			out[i][j] += (m[i][j] - out[i][j]) * t
		}
	}
	return out
}

// SimulateRGB transforms a colour as perceived under a deficiency.
func SimulateRGB(rgb RGB, d Deficiency) RGB {
	return fromLinear(d.matrix().apply(toLinear(rgb)))
}

// Simulate transforms a hex colour as perceived under a deficiency.
// It is total: every well-formed hex and deficiency yields a valid hex.
// A malformed Hex is treated as black; SimulateHex reports it instead.
func Simulate(h Hex, d Deficiency) Hex {
	return SimulateRGB(mustRGB(h), d).Hex()
}

// SimulateSeverity blends between normal vision (severity 0) and the full
// deficiency (severity 1). Severity is clamped to [0,1]. Like Simulate, a
// malformed Hex is treated as black.
func SimulateSeverity(h Hex, d Deficiency, severity float64) Hex {
	if severity >= 1 {
		return Simulate(h, d)
	}
	m := d.matrix().lerp(clamp(severity, 0, 1))
	return fromLinear(m.apply(toLinear(mustRGB(h)))).Hex()
}

// SimulateHex parses a hex colour and simulates it.
func SimulateHex(input string, d Deficiency) (Hex, error) {
	rgb, err := ParseHex(input)
	if err != nil {
		return "", err
	}
	return SimulateRGB(rgb, d).Hex(), nil
}

// SimulateAll returns the colour under every deficiency.
func SimulateAll(h Hex) map[Deficiency]Hex {
	out := make(map[Deficiency]Hex, len(Deficiencies()))
	for _, d := range Deficiencies() {
		out[d] = Simulate(h, d)
	}
	return out
}
