package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
)

func newScaleCmd(a *app) *cobra.Command {
	var (
		labels []int
		maxL   float64
		minL   float64
	)

	cmd := &cobra.Command{
		Use:   "scale <colour>",
		Short: "Generate an OKLCH tonal scale",
		Long: `Generate a perceptual lightness ramp for one hue. Stops are spaced evenly
in OKLCH lightness between the configured bounds, and the stop nearest the
seed's own lightness is replaced by the seed itself.`,
		Example: `  swatch scale "#3b82f6"
  swatch scale "#3b82f6" --labels 100,300,500,700,900 --max-l 0.95`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _, err := parseColourArg(args[0])
			if err != nil {
				return err
			}

			scaleConfig := a.cfg.Scale
			flags := cmd.Flags()
			if flags.Changed("labels") {
				scaleConfig.Labels = labels
			}
			if flags.Changed("max-l") {
				scaleConfig.MaxLightness = maxL
			}
			if flags.Changed("min-l") {
				scaleConfig.MinLightness = minL
			}

			scale, err := colour.NewTonalScaleWithConfig(seed, scaleConfig)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(w, scale)
			}
			return writeScale(w, scale, colour.NotationOKLCH, a.preview(w))
		},
	}

	defaults := colour.DefaultScaleConfig()
	cmd.Flags().IntSliceVar(&labels, "labels", defaults.Labels, "stop labels, lightest first")
	cmd.Flags().Float64Var(&maxL, "max-l", defaults.MaxLightness, "OKLCH lightness of the first stop")
	cmd.Flags().Float64Var(&minL, "min-l", defaults.MinLightness, "OKLCH lightness of the last stop")

	return cmd
}

// writeScale prints one tonal scale as a table, marking the seed stop.
func writeScale(w io.Writer, scale colour.TonalScale, notation colour.Notation, showPreview bool) error {
	headers := []string{"Stop", "Hex"}
	if notation != colour.NotationHex {
		headers = append(headers, string(notation))
	}
	headers = append(headers, "Seed")
	if showPreview {
		headers = append(headers, "Preview")
	}

	table := NewTable(headers)
	for i, stop := range scale.Stops {
		rgb, _ := colour.HexToRGB(stop.Hex)
		row := []string{fmt.Sprintf("%d", stop.Label), string(stop.Hex)}
		if notation != colour.NotationHex {
			row = append(row, colour.Format(rgb, notation))
		}
		marker := ""
		if i == scale.SeedStop {
			marker = "*"
		}
		row = append(row, marker)
		if showPreview {
			row = append(row, swatchText(rgb, fmt.Sprintf("%d", stop.Label), defaultWidth))
		}
		table.AddRow(row)
	}

	_, err := fmt.Fprint(w, table.Render())
	return err
}
