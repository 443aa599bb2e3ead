package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/colour"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// swatchBlock returns a solid block of width spaces on the colour.
func swatchBlock(c colour.RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return ansiBg(c) + strings.Repeat(" ", width) + ansiReset
}

// swatchText returns text centred on the colour in the black or white that
// contrasts with it best.
func swatchText(c colour.RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	fg, _ := colour.HexToRGB(colour.OptimalTextColor(c.Hex()))

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		display = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return ansiBg(c) + ansiFg(fg) + display + ansiReset
}

// swatchPair renders text in fg on bg.
func swatchPair(fg, bg colour.RGB, text string) string {
	return ansiBg(bg) + ansiFg(fg) + " " + text + " " + ansiReset
}

func ansiBg(c colour.RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
}

func ansiFg(c colour.RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, c.R, c.G, c.B, ansiSuffix)
}

// visibleLen is the display width of s with ANSI escape sequences removed.
func visibleLen(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			n++
		}
	}
	return n
}

// passFail renders a compliance flag.
func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}

// parseColourArg parses a colour argument in any supported notation.
func parseColourArg(arg string) (colour.Hex, colour.RGB, error) {
	h, err := colour.Parse(arg)
	if err != nil {
		return "", colour.RGB{}, err
	}
	rgb, err := colour.HexToRGB(h)
	if err != nil {
		return "", colour.RGB{}, err
	}
	return h, rgb, nil
}
