// Package colour provides random multi-category palette composition.
package colour

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Category names a palette category.
type Category string

const (
	CategoryPrimary   Category = "primary"
	CategorySecondary Category = "secondary"
	CategoryAccent    Category = "accent"
	CategoryNeutral   Category = "neutral"
	CategorySuccess   Category = "success"
	CategoryWarning   Category = "warning"
	CategoryError     Category = "error"
	CategoryInfo      Category = "info"
)

// Categories returns the fixed categories in palette order.
func Categories() []Category {
	return []Category{
		CategoryPrimary, CategorySecondary, CategoryAccent, CategoryNeutral,
		CategorySuccess, CategoryWarning, CategoryError, CategoryInfo,
	}
}

// IsSemantic reports whether the category carries a fixed meaning
// (success, warning, error, info) and so a constrained hue band.
func (c Category) IsSemantic() bool {
	_, ok := SemanticHueBand(c)
	return ok
}

// IsBuiltin reports whether the category is one of the fixed set.
func (c Category) IsBuiltin() bool {
	for _, b := range Categories() {
		if c == b {
			return true
		}
	}
	return false
}

// HueBand is an inclusive arc of HSL hue, running clockwise from Min to Max.
// Min may exceed Max when the band wraps through 0.
type HueBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// width returns the arc length in degrees.
func (b HueBand) width() float64 {
	return NormalizeHue(b.Max - b.Min)
}

// Contains reports whether hue h lies on the band.
func (b HueBand) Contains(h float64) bool {
	return NormalizeHue(h-b.Min) <= b.width()
}

// Nearest returns h if it lies on the band, otherwise the closer band edge.
func (b HueBand) Nearest(h float64) float64 {
	h = NormalizeHue(h)
	if b.Contains(h) {
		return h
	}
	if HueDistance(h, b.Min) <= HueDistance(h, b.Max) {
		return NormalizeHue(b.Min)
	}
	return NormalizeHue(b.Max)
}

// at returns the hue a fraction t of the way along the band.
func (b HueBand) at(t float64) float64 {
	return NormalizeHue(b.Min + b.width()*t)
}

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(NormalizeHue(h1) - NormalizeHue(h2))
	if diff > 180 {
		diff = 360 - diff // Handle wraparound
	}
	return diff
}

// SemanticHueBand returns the canonical hue band of a semantic category:
// red for error, amber for warning, green for success and blue for info.
func SemanticHueBand(c Category) (HueBand, bool) {
	switch c {
	case CategoryError:
		return HueBand{Min: 350, Max: 10}, true
	case CategoryWarning:
		return HueBand{Min: 35, Max: 50}, true
	case CategorySuccess:
		return HueBand{Min: 120, Max: 150}, true
	case CategoryInfo:
		return HueBand{Min: 200, Max: 225}, true
	default:
		return HueBand{}, false
	}
}

// CustomCategory is a caller-named category with an explicit seed.
// Custom categories are never hue-constrained.
type CustomCategory struct {
	Name string `json:"name" yaml:"name"`
	Seed Hex    `json:"seed" yaml:"seed"`
}

// Validate rejects names that collide with a built-in category, compared
// without regard to case, and seeds that are not hex colours.
func (c CustomCategory) Validate() error {
	if Category(strings.ToLower(strings.TrimSpace(c.Name))).IsBuiltin() {
		return fmt.Errorf("%w: %q is a built-in category", ErrReservedCategory, c.Name)
	}
	if _, err := NormalizeHex(string(c.Seed)); err != nil {
		return fmt.Errorf("custom category %s: %w", c.Name, err)
	}
	return nil
}

// ComposeOptions controls palette composition.
type ComposeOptions struct {
	// Seed makes composition reproducible when Rand is nil.
	Seed uint64
	// Rand overrides Seed as the source of randomness.
	Rand *rand.Rand
	// Seeds fixes the seed colour of individual categories.
	Seeds map[Category]Hex
	// Custom appends caller-defined categories after the fixed set.
	// A repeated name replaces the earlier custom entry; empty names are
	// skipped. Names of built-in categories are rejected.
	Custom []CustomCategory
	// Scale configures every category's tonal scale. The zero value means
	// DefaultScaleConfig.
	Scale ScaleConfig
}

// CategoryScale is one category of a composed palette.
type CategoryScale struct {
	Category Category   `json:"category"`
	Seed     Hex        `json:"seed"`
	Scale    TonalScale `json:"scale"`
}

// Palette is an ordered set of category scales.
type Palette struct {
	Categories []CategoryScale `json:"categories"`
}

// Get returns a category's scale.
func (p Palette) Get(c Category) (CategoryScale, bool) {
	for _, cs := range p.Categories {
		if cs.Category == c {
			return cs, true
		}
	}
	return CategoryScale{}, false
}

// Map returns the palette as category -> ordered stop colours.
func (p Palette) Map() map[Category][]Hex {
	out := make(map[Category][]Hex, len(p.Categories))
	for _, cs := range p.Categories {
		out[cs.Category] = cs.Scale.Hexes()
	}
	return out
}

// Names returns the category names in palette order.
func (p Palette) Names() []Category {
	out := make([]Category, len(p.Categories))
	for i, cs := range p.Categories {
		out[i] = cs.Category
	}
	return out
}

// NewRand returns a deterministic ChaCha8 source for a seed value.
func NewRand(seed uint64) *rand.Rand {
	var seedArray [32]byte
	binary.LittleEndian.PutUint64(seedArray[:8], seed)
	return rand.New(rand.NewChaCha8(seedArray))
}

// Compose builds a multi-category starter palette.
//
// Primary gets a random vivid hue. Secondary is a random analogous, triadic
// or complementary partner of primary, accent one of its split-complements,
// and neutral a near-grey of primary's hue. Semantic categories draw a hue
// from their canonical band; an accepted seed outside its band is rotated to
// the nearest band edge. Every category is then expanded into a tonal scale.
// Random draws happen for every category whether or not its seed is
// accepted, so fixing one category never reshuffles the others.
func Compose(opts ComposeOptions) (Palette, error) {
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(opts.Seed)
	}

	scaleConfig := opts.Scale
	if len(scaleConfig.Labels) == 0 && scaleConfig.MaxLightness == 0 && scaleConfig.MinLightness == 0 {
		scaleConfig = DefaultScaleConfig()
	}
	if err := scaleConfig.Validate(); err != nil {
		return Palette{}, err
	}

	accepted := make(map[Category]Hex, len(opts.Seeds))
	for c, h := range opts.Seeds {
		norm, err := NormalizeHex(string(h))
		if err != nil {
			return Palette{}, err
		}
		accepted[c] = norm
	}

	seeds := make(map[Category]Hex, len(Categories()))

	// Primary.
	primary := HSL{
		H: rng.Float64() * 360,
		S: 55 + rng.Float64()*30,
		L: 45 + rng.Float64()*15,
	}
	seeds[CategoryPrimary] = pick(accepted, CategoryPrimary, HSLToHex(primary))
	primaryHex := seeds[CategoryPrimary]

	// Secondary: a harmony partner of primary.
	partnerKinds := []HarmonyKind{HarmonyAnalogous, HarmonyTriadic, HarmonyComplementary}
	kind := partnerKinds[rng.IntN(len(partnerKinds))]
	seeds[CategorySecondary] = pick(accepted, CategorySecondary, partner(Harmony(primaryHex, kind), rng))

	// Accent: a split-complement of primary.
	seeds[CategoryAccent] = pick(accepted, CategoryAccent, partner(Harmony(primaryHex, HarmonySplitComplementary), rng))

	// Neutral: primary's hue, almost no saturation.
	neutral := HSL{
		H: RGBToHSL(mustRGB(primaryHex)).H,
		S: 4 + rng.Float64()*6,
		L: 50,
	}
	seeds[CategoryNeutral] = pick(accepted, CategoryNeutral, HSLToHex(neutral))

	// Semantic categories.
	for _, c := range []Category{CategorySuccess, CategoryWarning, CategoryError, CategoryInfo} {
		band, _ := SemanticHueBand(c)
		generated := HSL{
			H: band.at(rng.Float64()),
			S: 60 + rng.Float64()*20,
			L: 45 + rng.Float64()*10,
		}
		if h, ok := accepted[c]; ok {
			seeds[c] = constrainHue(h, band)
			continue
		}
		seeds[c] = HSLToHex(generated)
	}

	palette := Palette{}
	for _, c := range Categories() {
		palette.Categories = append(palette.Categories, newCategoryScale(c, seeds[c], scaleConfig))
	}

	for _, custom := range opts.Custom {
		if custom.Name == "" {
			continue
		}
		if err := custom.Validate(); err != nil {
			return Palette{}, err
		}
		seed, _ := NormalizeHex(string(custom.Seed))
		cs := newCategoryScale(Category(custom.Name), seed, scaleConfig)
		if i := indexOf(palette, cs.Category); i >= 0 {
			palette.Categories[i] = cs
			continue
		}
		palette.Categories = append(palette.Categories, cs)
	}

	return palette, nil
}

// newCategoryScale expands a seed. The config has already been validated.
func newCategoryScale(c Category, seed Hex, config ScaleConfig) CategoryScale {
	scale, _ := NewTonalScaleWithConfig(seed, config)
	return CategoryScale{Category: c, Seed: seed, Scale: scale}
}

// pick returns the accepted seed for a category, or the generated one.
func pick(accepted map[Category]Hex, c Category, generated Hex) Hex {
	if h, ok := accepted[c]; ok {
		return h
	}
	return generated
}

// partner picks one of the non-seed members of a harmony set.
func partner(set HarmonySet, rng *rand.Rand) Hex {
	others := make([]Hex, 0, len(set.Members))
	for _, m := range set.Members {
		if m.Offset != 0 {
			others = append(others, m.Hex)
		}
	}
	if len(others) == 0 {
		return set.Seed
	}
	return others[rng.IntN(len(others))]
}

// constrainHue rotates a colour's HSL hue onto a band, holding saturation
// and lightness. Colours already on the band are returned unchanged.
func constrainHue(h Hex, band HueBand) Hex {
	hsl := RGBToHSL(mustRGB(h))
	if hsl.S == 0 || band.Contains(hsl.H) {
		return h
	}
	hsl.H = band.Nearest(hsl.H)
	return HSLToHex(hsl)
}

func indexOf(p Palette, c Category) int {
	for i, cs := range p.Categories {
		if cs.Category == c {
			return i
		}
	}
	return -1
}
