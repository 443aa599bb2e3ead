// constant - Fixed or Seeded Colour Sampler (Swatch Sampler Plugin)
//
// Answers every sample with the same colour, or with a reproducible random
// colour when a seed is given. Useful for scripting and for testing the
// go-plugin transport end to end.
//
// Build:
//   go build -o swatch-constant
//
// Usage:
//   swatch sample --plugin ./swatch-constant --plugin-arg hex=#336699
//   swatch sample --plugin ./swatch-constant --plugin-arg seed=42
//
// Plugin Args:
//   hex:  colour to return (default: #808080)
//   seed: derive a random colour from this seed instead

package main

import (
	"context"
	"encoding/binary"
	"fmt"
	mathrand "math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

const defaultHex = "#808080"

// ConstantPlugin implements plugin.SamplerPlugin.
type ConstantPlugin struct{}

// Sample returns the configured colour.
func (p *ConstantPlugin) Sample(ctx context.Context, opts plugin.SampleOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if raw, ok := opts.PluginArgs["seed"]; ok {
		seed, err := parseSeed(raw)
		if err != nil {
			return "", err
		}
		hex := seededHex(seed)
		if opts.Verbose {
			fmt.Fprintf(os.Stderr, "Seeded colour %s (seed: %d)\n", hex, seed)
		}
		return hex, nil
	}

	hex := defaultHex
	if v, ok := opts.PluginArgs["hex"].(string); ok && v != "" {
		hex = v
	}
	if !validHex(hex) {
		return "", fmt.Errorf("invalid hex colour: %q", hex)
	}
	return hex, nil
}

// GetMetadata returns plugin metadata.
func (p *ConstantPlugin) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:            "constant",
		Type:            plugin.TypeSampler,
		Version:         "0.1.0",
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "Sample a fixed colour or a seeded random colour",
		PluginProtocol:  string(plugin.PluginTypeGoPlugin),
	}
}

// GetFlagHelp returns help information for plugin args.
func (p *ConstantPlugin) GetFlagHelp() []plugin.FlagHelp {
	return []plugin.FlagHelp{
		{
			Name:        "hex",
			Type:        "string",
			Default:     defaultHex,
			Description: "Colour to return",
		},
		{
			Name:        "seed",
			Type:        "uint64",
			Description: "Return a reproducible random colour for this seed",
		},
	}
}

// parseSeed accepts JSON numbers and strings, since args arrive from both.
func parseSeed(raw any) (uint64, error) {
	switch v := raw.(type) {
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("seed must be non-negative: %v", v)
		}
		return uint64(v), nil
	case string:
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seed %q: %w", v, err)
		}
		return seed, nil
	default:
		return 0, fmt.Errorf("invalid seed type %T", raw)
	}
}

func seededHex(seed uint64) string {
	var seedArray [32]byte
	binary.LittleEndian.PutUint64(seedArray[:8], seed)
	// #nosec G404 -- deterministic colour, not cryptography
	rng := mathrand.New(mathrand.NewChaCha8(seedArray))
	return fmt.Sprintf("#%02x%02x%02x", rng.IntN(256), rng.IntN(256), rng.IntN(256))
}

func validHex(s string) bool {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return false
	}
	_, err := strconv.ParseUint(digits, 16, 32)
	return err == nil
}

func main() {
	plugin.ServeSampler(&ConstantPlugin{})
}
