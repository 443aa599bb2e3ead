package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
)

type simulation struct {
	Deficiency colour.Deficiency `json:"deficiency"`
	Hex        colour.Hex        `json:"hex"`
}

type simulateReport struct {
	Input    colour.Hex   `json:"input"`
	Severity float64      `json:"severity"`
	Results  []simulation `json:"results"`
}

func newSimulateCmd(a *app) *cobra.Command {
	var (
		deficiency string
		severity   float64
	)

	cmd := &cobra.Command{
		Use:   "simulate <colour>",
		Short: "Simulate colour-vision deficiencies",
		Long: `Show how a colour appears under protanopia, deuteranopia, tritanopia,
their anomalous forms, and achromatopsia. Severity blends between normal
vision (0) and the full deficiency (1).`,
		Example: `  swatch simulate "#ff0000"
  swatch simulate "#ff0000" --type deuteranomaly --severity 0.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, rgb, err := parseColourArg(args[0])
			if err != nil {
				return err
			}
			if severity < 0 || severity > 1 {
				return fmt.Errorf("severity must be between 0 and 1, got %g", severity)
			}

			deficiencies := colour.Deficiencies()
			if deficiency != allKinds {
				d, err := colour.ParseDeficiency(deficiency)
				if err != nil {
					return err
				}
				deficiencies = []colour.Deficiency{d}
			}

			report := simulateReport{Input: input, Severity: severity}
			for _, d := range deficiencies {
				report.Results = append(report.Results, simulation{
					Deficiency: d,
					Hex:        colour.SimulateSeverity(input, d, severity),
				})
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(w, report)
			}

			showPreview := a.preview(w)
			headers := []string{"Deficiency", "Hex"}
			if showPreview {
				headers = append(headers, "Preview")
			}
			table := NewTable(headers)
			if showPreview {
				table.AddRow([]string{"normal", string(input), swatchBlock(rgb, defaultWidth)})
			}
			for _, r := range report.Results {
				row := []string{string(r.Deficiency), string(r.Hex)}
				if showPreview {
					sim, _ := colour.HexToRGB(r.Hex)
					row = append(row, swatchBlock(sim, defaultWidth))
				}
				table.AddRow(row)
			}
			_, err = fmt.Fprint(w, table.Render())
			return err
		},
	}

	cmd.Flags().StringVarP(&deficiency, "type", "t", allKinds, "deficiency to simulate, or all")
	cmd.Flags().Float64Var(&severity, "severity", 1, "deficiency severity between 0 and 1")

	return cmd
}
