// Package export renders composed palettes as CSS custom properties, a
// Tailwind theme, or design-token JSON.
package export

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/jmylchreest/swatch/internal/colour"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Format selects an export target.
type Format string

const (
	FormatCSS      Format = "css"
	FormatTailwind Format = "tailwind"
	FormatJSON     Format = "json"
)

// Formats returns every export format.
func Formats() []Format {
	return []Format{FormatCSS, FormatTailwind, FormatJSON}
}

// ParseFormat validates an export format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Formats() {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format: %s (valid: css, tailwind, json)", s)
}

// templateFile returns the embedded template file for the format.
func (f Format) templateFile() string {
	switch f {
	case FormatTailwind:
		return "tailwind.config.js.tmpl"
	case FormatJSON:
		return "palette.json.tmpl"
	default:
		return "palette.css.tmpl"
	}
}

// Filename is the conventional output file name for the format.
func (f Format) Filename() string {
	return strings.TrimSuffix(f.templateFile(), ".tmpl")
}

// Options controls rendering.
type Options struct {
	// Notation renders colour values; hex when empty.
	Notation colour.Notation

	// Seed is recorded in the output header when non-nil.
	Seed *uint64
}

// Data is the template view of a palette.
type Data struct {
	Seed       string
	Categories []CategoryData
}

// CategoryData is one category in template form.
type CategoryData struct {
	Name       string
	Var        string // identifier-safe name
	Seed       string
	Foreground string
	Stops      []StopData
}

// StopData is one tonal stop in template form.
type StopData struct {
	Label int
	Value string
}

// NewData converts a palette into template data. Categories whose names
// reduce to the same identifier are told apart with a numeric suffix
// ("my-brand", "my-brand-2") in palette order.
func NewData(palette colour.Palette, opts Options) Data {
	notation := opts.Notation
	if notation == "" {
		notation = colour.NotationHex
	}
	value := func(h colour.Hex) string {
		rgb, err := colour.HexToRGB(h)
		if err != nil {
			return string(h)
		}
		return colour.Format(rgb, notation)
	}

	data := Data{Categories: make([]CategoryData, 0, len(palette.Categories))}
	if opts.Seed != nil {
		data.Seed = strconv.FormatUint(*opts.Seed, 10)
	}

	used := make(map[string]bool, len(palette.Categories))
	for _, cs := range palette.Categories {
		cd := CategoryData{
			Name:       string(cs.Category),
			Var:        uniqueIdentifier(string(cs.Category), used),
			Seed:       value(cs.Seed),
			Foreground: value(colour.OptimalTextColor(cs.Seed)),
			Stops:      make([]StopData, len(cs.Scale.Stops)),
		}
		for i, stop := range cs.Scale.Stops {
			cd.Stops[i] = StopData{Label: stop.Label, Value: value(stop.Hex)}
		}
		data.Categories = append(data.Categories, cd)
	}

	return data
}

// Render renders a palette in the given format.
func Render(palette colour.Palette, format Format, opts Options) ([]byte, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}

	name := format.templateFile()
	tmplContent, err := templates.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s template: %w", format, err)
	}

	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", format, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, NewData(palette, opts)); err != nil {
		return nil, fmt.Errorf("failed to execute %s template: %w", format, err)
	}

	return buf.Bytes(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"quote": strconv.Quote,
		"json":  jsonString,
	}
}

// jsonString encodes a string as a JSON literal.
func jsonString(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Identifier lowercases a category name and replaces every run of
// characters outside [a-z0-9] with a single hyphen, so it can be used as a
// CSS custom property or object key.
func Identifier(name string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "colour"
	}
	return out
}

// uniqueIdentifier returns Identifier(name), suffixed with -2, -3, ... until
// it is not in used, and records the result.
func uniqueIdentifier(name string, used map[string]bool) string {
	base := Identifier(name)
	id := base
	for n := 2; used[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	used[id] = true
	return id
}
