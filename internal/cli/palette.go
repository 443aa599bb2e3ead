package cli

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/export"
)

type paletteReport struct {
	Seed uint64 `json:"seed"`
	colour.Palette
}

type paletteFlags struct {
	seed     uint64
	set      []string
	custom   []string
	export   string
	output   string
	notation string
	labels   []int
}

func newPaletteCmd(a *app) *cobra.Command {
	var f paletteFlags

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Compose a random multi-category palette",
		Long: `Compose a starter palette of primary, secondary, accent and neutral
categories plus success, warning, error and info, each expanded into an
OKLCH tonal scale.

The same seed always yields the same palette. Without --seed (or a
palette.seed config value) a random seed is chosen and reported so the
result can be reproduced. Individual categories can be pinned with --set,
and extra named categories added with --custom.`,
		Example: `  swatch palette --seed 42
  swatch palette --seed 42 --set primary=#3b82f6 --custom brand=#ff6600
  swatch palette --seed 42 --export css --output ./theme`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPalette(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.Uint64Var(&f.seed, "seed", 0, "random seed for reproducible palettes")
	flags.StringArrayVar(&f.set, "set", nil, "pin a category seed (category=#hex, repeatable)")
	flags.StringArrayVar(&f.custom, "custom", nil, "add a custom category (name=#hex, repeatable)")
	flags.StringVarP(&f.export, "export", "e", "", "export format (css, tailwind, json)")
	flags.StringVarP(&f.output, "output", "o", "", "write the export to this file or directory")
	flags.StringVar(&f.notation, "notation", string(colour.NotationHex), "colour notation for exports (hex, rgb, hsl, oklch)")
	flags.IntSliceVar(&f.labels, "labels", nil, "scale stop labels, lightest first")

	return cmd
}

func (a *app) runPalette(cmd *cobra.Command, f paletteFlags) error {
	seed, err := a.paletteSeed(cmd, f.seed)
	if err != nil {
		return err
	}

	seeds, err := parseCategorySeeds(a.cfg.Palette.ComposeSeeds(), f.set)
	if err != nil {
		return err
	}
	custom, err := parseCustomCategories(a.cfg.Palette.Custom, f.custom)
	if err != nil {
		return err
	}

	scaleConfig := a.cfg.Scale
	if cmd.Flags().Changed("labels") {
		scaleConfig.Labels = f.labels
	}

	a.logger.Debug("composing palette", "seed", seed, "pinned", len(seeds), "custom", len(custom))

	palette, err := colour.Compose(colour.ComposeOptions{
		Seed:   seed,
		Seeds:  seeds,
		Custom: custom,
		Scale:  scaleConfig,
	})
	if err != nil {
		return err
	}

	if f.export != "" {
		return a.exportPalette(cmd, palette, seed, f)
	}

	w := cmd.OutOrStdout()
	if a.jsonOutput() {
		return writeJSON(w, paletteReport{Seed: seed, Palette: palette})
	}
	return writePalette(w, palette, seed, a.preview(w))
}

// paletteSeed resolves the seed from --seed, then config, then crypto/rand.
// A random seed is reported on stderr so the palette can be reproduced.
func (a *app) paletteSeed(cmd *cobra.Command, flagSeed uint64) (uint64, error) {
	if cmd.Flags().Changed("seed") {
		return flagSeed, nil
	}
	if a.cfg.Palette.Seed != nil {
		return *a.cfg.Palette.Seed, nil
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("failed to generate seed: %w", err)
	}
	seed := binary.LittleEndian.Uint64(buf[:])
	if !a.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using random seed %d (pass --seed %d to reproduce)\n", seed, seed)
	}
	return seed, nil
}

func (a *app) exportPalette(cmd *cobra.Command, palette colour.Palette, seed uint64, f paletteFlags) error {
	format, err := export.ParseFormat(f.export)
	if err != nil {
		return err
	}
	notation, err := colour.ParseNotation(f.notation)
	if err != nil {
		return err
	}

	data, err := export.Render(palette, format, export.Options{Notation: notation, Seed: &seed})
	if err != nil {
		return err
	}

	if f.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	path := f.output
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, format.Filename())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- exported themes are meant to be shared
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.logger.Debug("exported palette", "format", format, "path", path)
	if !a.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s export to %s\n", format, path)
	}
	return nil
}

// parseCategorySeeds merges configured seeds with category=#hex flag values.
func parseCategorySeeds(base map[colour.Category]colour.Hex, values []string) (map[colour.Category]colour.Hex, error) {
	seeds := make(map[colour.Category]colour.Hex, len(base)+len(values))
	for k, v := range base {
		seeds[k] = v
	}
	for _, value := range values {
		name, hex, err := splitAssignment(value)
		if err != nil {
			return nil, fmt.Errorf("--set: %w", err)
		}
		category := colour.Category(strings.ToLower(name))
		if !category.IsBuiltin() {
			return nil, fmt.Errorf("--set: unknown category %q", name)
		}
		seeds[category] = hex
	}
	return seeds, nil
}

// parseCustomCategories appends name=#hex flag values to configured custom categories.
func parseCustomCategories(base []colour.CustomCategory, values []string) ([]colour.CustomCategory, error) {
	custom := append([]colour.CustomCategory(nil), base...)
	for _, value := range values {
		name, hex, err := splitAssignment(value)
		if err != nil {
			return nil, fmt.Errorf("--custom: %w", err)
		}
		category := colour.CustomCategory{Name: name, Seed: hex}
		if err := category.Validate(); err != nil {
			return nil, fmt.Errorf("--custom: %w", err)
		}
		custom = append(custom, category)
	}
	return custom, nil
}

func splitAssignment(value string) (string, colour.Hex, error) {
	name, raw, ok := strings.Cut(value, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("expected name=colour, got %q", value)
	}
	hex, err := colour.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", name, err)
	}
	return name, hex, nil
}

// writePalette prints each category's stops as one row.
func writePalette(w io.Writer, palette colour.Palette, seed uint64, showPreview bool) error {
	fmt.Fprintf(w, "Palette (seed %d)\n\n", seed)
	if len(palette.Categories) == 0 {
		return nil
	}

	headers := []string{"Category", "Seed"}
	for _, stop := range palette.Categories[0].Scale.Stops {
		headers = append(headers, fmt.Sprintf("%d", stop.Label))
	}

	table := NewTable(headers)
	for _, cs := range palette.Categories {
		row := []string{string(cs.Category), string(cs.Seed)}
		for _, stop := range cs.Scale.Stops {
			if showPreview {
				rgb, _ := colour.HexToRGB(stop.Hex)
				row = append(row, swatchText(rgb, string(stop.Hex), len(stop.Hex)))
				continue
			}
			row = append(row, string(stop.Hex))
		}
		table.AddRow(row)
	}

	_, err := fmt.Fprint(w, table.Render())
	return err
}
