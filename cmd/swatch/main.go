// Swatch - a colour-science and accessibility toolkit
//
// Swatch converts between colour notations, scores WCAG contrast, derives
// harmonies and tonal scales, simulates colour-vision deficiencies, and
// composes reproducible palettes.
package main

import (
	"os"

	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
