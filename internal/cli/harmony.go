package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
)

const allKinds = "all"

func newHarmonyCmd(a *app) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "harmony <colour>",
		Short: "Derive colour-wheel harmonies from a seed",
		Long: `Rotate the seed's HSL hue to build harmony sets. Saturation and lightness
are held, except for monochromatic which steps lightness instead.

Kinds: ` + joinKinds() + `, or "all".`,
		Example: `  swatch harmony "#ff0000" --kind triadic
  swatch harmony "#3b82f6" -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _, err := parseColourArg(args[0])
			if err != nil {
				return err
			}

			kinds := colour.HarmonyKinds()
			if kind != allKinds {
				k, err := colour.ParseHarmonyKind(kind)
				if err != nil {
					return err
				}
				kinds = []colour.HarmonyKind{k}
			}

			sets := make([]colour.HarmonySet, len(kinds))
			for i, k := range kinds {
				sets[i] = colour.Harmony(seed, k)
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(w, sets)
			}

			showPreview := a.preview(w)
			for i, set := range sets {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "%s:\n", set.Kind)

				headers := []string{"Offset", "Hex", "HSL"}
				if showPreview {
					headers = append(headers, "Preview")
				}
				table := NewTable(headers)
				for _, m := range set.Members {
					row := []string{
						fmt.Sprintf("%+g", m.Offset),
						string(m.Hex),
						colour.FormatHSL(m.HSL),
					}
					if showPreview {
						rgb, _ := colour.HexToRGB(m.Hex)
						row = append(row, swatchBlock(rgb, defaultWidth))
					}
					table.AddRow(row)
				}
				fmt.Fprint(w, table.Render())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", allKinds, "harmony kind to derive")

	return cmd
}

func joinKinds() string {
	names := make([]string, 0, len(colour.HarmonyKinds()))
	for _, k := range colour.HarmonyKinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
