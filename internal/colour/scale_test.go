package colour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emittedHueTolerance is the allowed hue drift, in degrees, of a stop's
// 8-bit hex from the scale hue. Rounding moves a and b by about 0.002, so
// the angular error grows as chroma falls; below minHueChroma hue is noise.
func emittedHueTolerance(chroma float64) float64 {
	return max(2, 0.15/chroma)
}

const minHueChroma = 0.02

// assertScaleInvariants checks stop count, strictly falling lightness and
// a constant hue across every stop, both in the stop's OKLCH value and in
// the hex it emits.
func assertScaleInvariants(t *testing.T, scale TonalScale, stops int) {
	t.Helper()

	require.Len(t, scale.Stops, stops, "seed %s", scale.Seed)
	hue := scale.Stops[scale.SeedStop].OKLCH.H
	for i, stop := range scale.Stops {
		assert.InDelta(t, hue, stop.OKLCH.H, 1e-9, "seed %s stop %d hue", scale.Seed, stop.Label)
		rgb, err := ParseHex(string(stop.Hex))
		if err != nil {
			t.Errorf("seed %s stop %d has invalid hex %q", scale.Seed, stop.Label, stop.Hex)
			continue
		}
		if emitted := RGBToOKLCH(rgb); emitted.C >= minHueChroma {
			assert.LessOrEqual(t, HueDistance(hue, emitted.H), emittedHueTolerance(emitted.C),
				"seed %s stop %d emits %s with hue %.2f, scale hue %.2f (chroma %.4f)",
				scale.Seed, stop.Label, stop.Hex, emitted.H, hue, emitted.C)
		}
		if i > 0 && stop.OKLCH.L >= scale.Stops[i-1].OKLCH.L {
			t.Errorf("seed %s: stop %d lightness %.4f not below stop %d lightness %.4f",
				scale.Seed, stop.Label, stop.OKLCH.L, scale.Stops[i-1].Label, scale.Stops[i-1].OKLCH.L)
		}
	}
}

func TestNewTonalScaleInvariants(t *testing.T) {
	seeds := []Hex{
		"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#3b82f6",
		"#808080", "#ffffff", "#000000", "#010101", "#fefefe",
	}
	for _, seed := range seeds {
		assertScaleInvariants(t, NewTonalScale(seed), 11)
	}
}

func TestNewTonalScaleRandomSeeds(t *testing.T) {
	rng := NewRand(2024)
	for range 500 {
		seed := RGB{R: uint8(rng.IntN(256)), G: uint8(rng.IntN(256)), B: uint8(rng.IntN(256))}.Hex()
		assertScaleInvariants(t, NewTonalScale(seed), 11)
	}
}

func TestNewTonalScaleAnchorsSeed(t *testing.T) {
	tests := []struct {
		seed   Hex
		anchor int
	}{
		{"#ff0000", 5},
		{"#3b82f6", 5},
		{"#808080", 5},
		{"#ffffff", 0},
		{"#ffff00", 0},
		{"#000000", 10},
	}

	for _, tt := range tests {
		t.Run(string(tt.seed), func(t *testing.T) {
			scale := NewTonalScale(tt.seed)
			assert.Equal(t, tt.anchor, scale.SeedStop)
			assert.Equal(t, tt.seed, scale.Stops[tt.anchor].Hex)
		})
	}
}

func TestNewTonalScaleRed(t *testing.T) {
	scale := NewTonalScale("#ff0000")

	assert.Equal(t, []Hex{
		"#fff2ef", "#ffd3cb", "#ffb2a6", "#ff8e7e", "#ff6251", "#ff0000",
		"#d80000", "#b30000", "#8f0000", "#6c0000", "#4b0000",
	}, scale.Hexes())
}

func TestNewTonalScaleExtremeSeedsExtrapolate(t *testing.T) {
	white := NewTonalScale(White)
	assert.Len(t, white.Stops, 11)
	assert.Equal(t, White, white.Stops[0].Hex)
	assert.Equal(t, Hex("#242424"), white.Stops[10].Hex)

	black := NewTonalScale(Black)
	assert.Len(t, black.Stops, 11)
	assert.Equal(t, Hex("#f5f5f5"), black.Stops[0].Hex)
	assert.Equal(t, Black, black.Stops[10].Hex)
}

func TestNewTonalScaleLabels(t *testing.T) {
	scale := NewTonalScale("#3b82f6")

	for i, label := range DefaultScaleLabels() {
		assert.Equal(t, label, scale.Stops[i].Label)
	}

	stop, ok := scale.Stop(500)
	require.True(t, ok)
	assert.Equal(t, Hex("#3b82f6"), stop.Hex)

	_, ok = scale.Stop(550)
	assert.False(t, ok)
}

func TestNewTonalScaleWithConfig(t *testing.T) {
	config := ScaleConfig{
		Labels:       []int{1, 2, 3, 4, 5},
		MaxLightness: 0.9,
		MinLightness: 0.3,
	}

	scale, err := NewTonalScaleWithConfig("#22c55e", config)
	require.NoError(t, err)
	assertScaleInvariants(t, scale, 5)
	assert.InDelta(t, 0.9, scale.Stops[0].OKLCH.L, 1e-9)
	assert.InDelta(t, 0.3, scale.Stops[4].OKLCH.L, 1e-9)
}

func TestScaleConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		config ScaleConfig
	}{
		{"one label", ScaleConfig{Labels: []int{500}, MaxLightness: 0.9, MinLightness: 0.2}},
		{"inverted bounds", ScaleConfig{Labels: DefaultScaleLabels(), MaxLightness: 0.2, MinLightness: 0.9}},
		{"equal bounds", ScaleConfig{Labels: DefaultScaleLabels(), MaxLightness: 0.5, MinLightness: 0.5}},
		{"max above one", ScaleConfig{Labels: DefaultScaleLabels(), MaxLightness: 1.2, MinLightness: 0.2}},
		{"min below zero", ScaleConfig{Labels: DefaultScaleLabels(), MaxLightness: 0.9, MinLightness: -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTonalScaleWithConfig("#3b82f6", tt.config)
			assert.ErrorIs(t, err, ErrOutOfRangeChannel)
		})
	}

	assert.NoError(t, DefaultScaleConfig().Validate())
}

func TestNewTonalScaleHex(t *testing.T) {
	scale, err := NewTonalScaleHex("#F00")
	require.NoError(t, err)
	assert.Equal(t, Hex("#ff0000"), scale.Seed)

	_, err = NewTonalScaleHex("#1234567")
	assert.ErrorIs(t, err, ErrInvalidColorFormat)
}

func TestNewTonalScaleDeterministic(t *testing.T) {
	assert.Equal(t, NewTonalScale("#a855f7"), NewTonalScale("#a855f7"))
}
