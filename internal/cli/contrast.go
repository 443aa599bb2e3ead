package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
)

type contrastReport struct {
	Foreground colour.Hex `json:"foreground"`
	Background colour.Hex `json:"background"`
	colour.ContrastResult
	Level string `json:"level"`
}

func newContrastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Score the WCAG contrast of two colours",
		Long: `Compute the WCAG 2.x contrast ratio between two colours and report which
AA and AAA levels it meets for normal and large text.`,
		Example: `  swatch contrast "#767676" "#ffffff"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fgHex, fg, err := parseColourArg(args[0])
			if err != nil {
				return fmt.Errorf("foreground: %w", err)
			}
			bgHex, bg, err := parseColourArg(args[1])
			if err != nil {
				return fmt.Errorf("background: %w", err)
			}

			result := colour.Contrast(fg, bg)
			report := contrastReport{
				Foreground:     fgHex,
				Background:     bgHex,
				ContrastResult: result,
				Level:          result.Level(),
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(w, report)
			}

			if a.preview(w) {
				fmt.Fprintln(w, swatchPair(fg, bg, "The quick brown fox"))
				fmt.Fprintln(w)
			}

			fmt.Fprintf(w, "Foreground: %s\n", fgHex)
			fmt.Fprintf(w, "Background: %s\n", bgHex)
			fmt.Fprintf(w, "Contrast:   %.2f:1 (%s)\n\n", result.Ratio, report.Level)

			table := NewTable([]string{"Level", "Normal", "Large"})
			table.AddRow([]string{"AA", passFail(result.AANormal), passFail(result.AALarge)})
			table.AddRow([]string{"AAA", passFail(result.AAANormal), passFail(result.AAALarge)})
			_, err = fmt.Fprint(w, table.Render())
			return err
		},
	}
}

type textReport struct {
	Background colour.Hex `json:"background"`
	Text       colour.Hex `json:"text"`
	Ratio      float64    `json:"ratio"`
	Level      string     `json:"level"`
}

func newTextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "text <background>",
		Short: "Pick black or white text for a background",
		Long: `Choose whichever of pure black and pure white text contrasts more with
the background. Equal contrast resolves to black.`,
		Example: `  swatch text "#1e293b"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bgHex, bg, err := parseColourArg(args[0])
			if err != nil {
				return err
			}

			textHex := colour.OptimalTextColor(bgHex)
			text, _ := colour.HexToRGB(textHex)
			result := colour.Contrast(text, bg)
			report := textReport{
				Background: bgHex,
				Text:       textHex,
				Ratio:      result.Ratio,
				Level:      result.Level(),
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(w, report)
			}

			if a.preview(w) {
				fmt.Fprintln(w, swatchPair(text, bg, "Sample text"))
			}
			_, err = fmt.Fprintf(w, "%s (%.2f:1, %s)\n", textHex, result.Ratio, report.Level)
			return err
		},
	}
}
