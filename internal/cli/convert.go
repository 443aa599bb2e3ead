package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
)

// colourReport is every representation of one colour.
type colourReport struct {
	Input      string                     `json:"input"`
	Hex        colour.Hex                 `json:"hex"`
	RGB        colour.RGB                 `json:"rgb"`
	HSL        colour.HSL                 `json:"hsl"`
	OKLCH      colour.OKLCH               `json:"oklch"`
	Formats    map[colour.Notation]string `json:"formats"`
	Luminance  float64                    `json:"luminance"`
	TextColour colour.Hex                 `json:"text_colour"`
}

func newColourReport(input string, rgb colour.RGB) colourReport {
	formats := make(map[colour.Notation]string, len(colour.Notations()))
	for _, n := range colour.Notations() {
		formats[n] = colour.Format(rgb, n)
	}
	return colourReport{
		Input:      input,
		Hex:        rgb.Hex(),
		RGB:        rgb,
		HSL:        colour.RGBToHSL(rgb),
		OKLCH:      colour.RGBToOKLCH(rgb),
		Formats:    formats,
		Luminance:  colour.RelativeLuminance(rgb),
		TextColour: colour.OptimalTextColor(rgb.Hex()),
	}
}

func newConvertCmd(a *app) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <colour>",
		Short: "Show a colour in every notation",
		Long: `Convert a colour between hex, RGB, HSL and OKLCH.

The colour may be given as #rgb, #rrggbb, rrggbb, rgb(r, g, b),
hsl(h, s%, l%) or oklch(l% c h).`,
		Example: `  swatch convert "#3b82f6"
  swatch convert "oklch(62.8% 0.2577 29.23)" --to hex`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, rgb, err := parseColourArg(args[0])
			if err != nil {
				return err
			}

			if to != "" {
				notation, err := colour.ParseNotation(to)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), colour.Format(rgb, notation))
				return err
			}

			return a.printColour(cmd.OutOrStdout(), args[0], rgb)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "print only this notation (hex, rgb, hsl, oklch)")

	return cmd
}

// printColour writes a colourReport as JSON or as a notation table.
func (a *app) printColour(w io.Writer, input string, rgb colour.RGB) error {
	report := newColourReport(input, rgb)
	if a.jsonOutput() {
		return writeJSON(w, report)
	}

	if a.preview(w) {
		fmt.Fprintln(w, swatchText(rgb, string(report.Hex), 16))
		fmt.Fprintln(w)
	}

	table := NewTable([]string{"Notation", "Value"})
	for _, n := range colour.Notations() {
		table.AddRow([]string{string(n), report.Formats[n]})
	}
	fmt.Fprint(w, table.Render())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Luminance:   %.4f\n", report.Luminance)
	_, err := fmt.Fprintf(w, "Text colour: %s\n", report.TextColour)
	return err
}
