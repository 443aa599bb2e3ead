// Package colour provides OKLCH tonal scale generation.
package colour

import (
	"fmt"
	"math"
)

// Default tonal ramp bounds in OKLCH lightness.
const (
	DefaultMaxLightness = 0.97
	DefaultMinLightness = 0.26
)

// DefaultScaleLabels returns the conventional 11 stop labels (50 to 950).
func DefaultScaleLabels() []int {
	return []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900, 950}
}

// ScaleConfig controls tonal scale generation.
type ScaleConfig struct {
	// Labels names each stop, lightest first.
	Labels []int `json:"labels" yaml:"labels"`
	// MaxLightness is the OKLCH lightness of the first stop.
	MaxLightness float64 `json:"max_lightness" yaml:"max_lightness"`
	// MinLightness is the OKLCH lightness of the last stop.
	MinLightness float64 `json:"min_lightness" yaml:"min_lightness"`
}

// DefaultScaleConfig returns the 11-stop configuration.
func DefaultScaleConfig() ScaleConfig {
	return ScaleConfig{
		Labels:       DefaultScaleLabels(),
		MaxLightness: DefaultMaxLightness,
		MinLightness: DefaultMinLightness,
	}
}

// Validate checks that the configuration can produce a scale.
func (c ScaleConfig) Validate() error {
	if len(c.Labels) < 2 {
		return fmt.Errorf("%w: scale needs at least 2 stops, got %d", ErrOutOfRangeChannel, len(c.Labels))
	}
	if c.MaxLightness < 0 || c.MaxLightness > 1 || c.MinLightness < 0 || c.MinLightness > 1 ||
		math.IsNaN(c.MaxLightness) || math.IsNaN(c.MinLightness) {
		return fmt.Errorf("%w: scale lightness bounds must lie in [0,1]", ErrOutOfRangeChannel)
	}
	if c.MaxLightness <= c.MinLightness {
		return fmt.Errorf("%w: max lightness %g must exceed min lightness %g",
			ErrOutOfRangeChannel, c.MaxLightness, c.MinLightness)
	}
	return nil
}

// ScaleStop is one entry of a tonal scale.
type ScaleStop struct {
	Label int   `json:"label"`
	OKLCH OKLCH `json:"oklch"`
	Hex   Hex   `json:"hex"`
}

// TonalScale is an ordered lightness ramp of one hue, lightest first.
type TonalScale struct {
	Seed     Hex         `json:"seed"`
	SeedStop int         `json:"seed_stop"` // index into Stops holding the seed
	Stops    []ScaleStop `json:"stops"`
}

// Hexes returns the stop colours in order.
func (s TonalScale) Hexes() []Hex {
	out := make([]Hex, len(s.Stops))
	for i, stop := range s.Stops {
		out[i] = stop.Hex
	}
	return out
}

// Stop returns the stop with the given label.
func (s TonalScale) Stop(label int) (ScaleStop, bool) {
	for _, stop := range s.Stops {
		if stop.Label == label {
			return stop, true
		}
	}
	return ScaleStop{}, false
}

// NewTonalScale builds the default 11-stop scale for a seed. A malformed
// seed is treated as black; NewTonalScaleHex validates its input instead.
func NewTonalScale(seed Hex) TonalScale {
	scale, _ := NewTonalScaleWithConfig(seed, DefaultScaleConfig())
	return scale
}

// NewTonalScaleWithConfig builds a scale for a seed.
//
// The seed is anchored at the stop whose default lightness is closest to its
// own. Stops above the anchor interpolate linearly from MaxLightness to the
// seed's lightness, stops below from the seed's lightness to MinLightness, so
// a seed lighter than MaxLightness or darker than MinLightness stretches the
// ramp instead of dropping stops. Hue is held, chroma is held at the seed's
// chroma and reduced only as far as each stop needs to fit sRGB.
// Only the config is validated; a malformed seed is treated as black.
func NewTonalScaleWithConfig(seed Hex, config ScaleConfig) (TonalScale, error) {
	if err := config.Validate(); err != nil {
		return TonalScale{}, err
	}

	seedRGB := mustRGB(seed)
	base := RGBToOKLCH(seedRGB)
	n := len(config.Labels)
	anchor := anchorStop(base.L, config)
	lightness := rampLightness(base.L, anchor, config)

	scale := TonalScale{
		Seed:     seedRGB.Hex(),
		SeedStop: anchor,
		Stops:    make([]ScaleStop, n),
	}

	for i := range n {
		if i == anchor {
			scale.Stops[i] = ScaleStop{Label: config.Labels[i], OKLCH: base, Hex: seedRGB.Hex()}
			continue
		}
		c := FitGamut(OKLCH{L: lightness[i], C: base.C, H: base.H})
		scale.Stops[i] = ScaleStop{Label: config.Labels[i], OKLCH: c, Hex: OKLCHToHex(c)}
	}

	return scale, nil
}

// NewTonalScaleHex parses a seed and builds the default scale.
func NewTonalScaleHex(seed string) (TonalScale, error) {
	h, err := NormalizeHex(seed)
	if err != nil {
		return TonalScale{}, err
	}
	return NewTonalScale(h), nil
}

// defaultLightness is the lightness of stop i on the unanchored ramp.
func defaultLightness(i int, config ScaleConfig) float64 {
	n := len(config.Labels)
	step := (config.MaxLightness - config.MinLightness) / float64(n-1)
	return config.MaxLightness - float64(i)*step
}

// anchorStop picks the stop closest in default lightness to l.
// Ties go to the lighter stop.
func anchorStop(l float64, config ScaleConfig) int {
	best, bestDist := 0, math.Inf(1)
	for i := range config.Labels {
		if d := math.Abs(defaultLightness(i, config) - l); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// rampLightness lays out stop lightness with the seed pinned at anchor.
func rampLightness(seedL float64, anchor int, config ScaleConfig) []float64 {
	n := len(config.Labels)
	out := make([]float64, n)
	for i := range n {
		switch {
		case i == anchor:
			out[i] = seedL
		case i < anchor:
			out[i] = config.MaxLightness + (seedL-config.MaxLightness)*float64(i)/float64(anchor)
		default:
			out[i] = seedL + (config.MinLightness-seedL)*float64(i-anchor)/float64(n-1-anchor)
		}
	}
	return out
}
