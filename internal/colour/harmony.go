// Package colour provides hue-rotation colour harmonies.
package colour

import (
	"fmt"
	"strings"
)

// HarmonyKind identifies a colour-wheel harmony rule.
type HarmonyKind string

const (
	HarmonyComplementary      HarmonyKind = "complementary"
	HarmonyAnalogous          HarmonyKind = "analogous"
	HarmonyTriadic            HarmonyKind = "triadic"
	HarmonyTetradic           HarmonyKind = "tetradic"
	HarmonySplitComplementary HarmonyKind = "split-complementary"
	HarmonyMonochromatic      HarmonyKind = "monochromatic"
)

// HarmonyKinds returns every harmony kind in display order.
func HarmonyKinds() []HarmonyKind {
	return []HarmonyKind{
		HarmonyComplementary,
		HarmonyAnalogous,
		HarmonyTriadic,
		HarmonyTetradic,
		HarmonySplitComplementary,
		HarmonyMonochromatic,
	}
}

// ParseHarmonyKind validates a harmony kind name.
func ParseHarmonyKind(s string) (HarmonyKind, error) {
	k := HarmonyKind(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range HarmonyKinds() {
		if k == valid {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown harmony kind: %s (valid: %s)", s, joinKinds(HarmonyKinds()))
}

func joinKinds(kinds []HarmonyKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// harmonyStep is one member of a harmony rule: a hue rotation and, for
// monochromatic sets only, a lightness shift in percentage points.
type harmonyStep struct {
	hue       float64
	lightness float64
}

// steps returns the ordered member rules for a kind, seed included.
// Order is rotation offset ascending.
func (k HarmonyKind) steps() []harmonyStep {
	switch k {
	case HarmonyComplementary:
		return []harmonyStep{{hue: 0}, {hue: 180}}
	case HarmonyAnalogous:
		return []harmonyStep{{hue: -30}, {hue: 0}, {hue: 30}}
	case HarmonyTriadic:
		return []harmonyStep{{hue: -120}, {hue: 0}, {hue: 120}}
	case HarmonyTetradic:
		return []harmonyStep{{hue: 0}, {hue: 90}, {hue: 180}, {hue: 270}}
	case HarmonySplitComplementary:
		return []harmonyStep{{hue: -150}, {hue: 0}, {hue: 150}}
	case HarmonyMonochromatic:
		return []harmonyStep{
			{lightness: -30}, {lightness: -15}, {lightness: 0}, {lightness: 15}, {lightness: 30},
		}
	default:
		return []harmonyStep{{hue: 0}}
	}
}

// HarmonyMember is one colour in a harmony set.
type HarmonyMember struct {
	Offset float64 `json:"offset"` // hue rotation applied to the seed, in degrees
	HSL    HSL     `json:"hsl"`
	Hex    Hex     `json:"hex"`
}

// HarmonySet is an ordered set of colours derived from one seed.
type HarmonySet struct {
	Kind    HarmonyKind     `json:"kind"`
	Seed    Hex             `json:"seed"`
	Members []HarmonyMember `json:"members"`
}

// Hexes returns the member colours in order.
func (s HarmonySet) Hexes() []Hex {
	out := make([]Hex, len(s.Members))
	for i, m := range s.Members {
		out[i] = m.Hex
	}
	return out
}

// Harmony derives a harmony set from a seed by rotating its HSL hue.
// Saturation and lightness are held except for monochromatic sets, which
// vary lightness instead of hue. Rotated hues are kept even for grey seeds,
// so their HSL members carry distinct hues although they render grey.
// Unknown kinds yield the seed alone. A malformed seed is treated as black;
// HarmonyHex validates its input instead.
func Harmony(seed Hex, kind HarmonyKind) HarmonySet {
	base := RGBToHSL(mustRGB(seed))
	seedHex := mustRGB(seed).Hex()

	steps := kind.steps()
	set := HarmonySet{
		Kind:    kind,
		Seed:    seedHex,
		Members: make([]HarmonyMember, len(steps)),
	}

	for i, step := range steps {
		hsl := HSL{
			H: NormalizeHue(base.H + step.hue),
			S: base.S,
			L: clamp(base.L+step.lightness, 0, 100),
		}
		hex := HSLToHex(hsl)
		if step.hue == 0 && step.lightness == 0 {
			// The seed itself is emitted unchanged, not re-quantised.
			hex = seedHex
		}
		set.Members[i] = HarmonyMember{Offset: step.hue, HSL: hsl, Hex: hex}
	}

	return set
}

// HarmonyHex parses a seed and derives a harmony set.
func HarmonyHex(seed string, kind HarmonyKind) (HarmonySet, error) {
	h, err := NormalizeHex(seed)
	if err != nil {
		return HarmonySet{}, err
	}
	return Harmony(h, kind), nil
}
