package cli

import (
	"strings"
	"testing"

	"github.com/jmylchreest/swatch/internal/colour"
)

func TestNewTable(t *testing.T) {
	table := NewTable([]string{"Name", "Hex", "Level"})

	if table == nil {
		t.Fatal("NewTable returned nil")
	}
	if len(table.headers) != 3 {
		t.Errorf("Expected 3 headers, got %d", len(table.headers))
	}
	if table.padding != 2 {
		t.Errorf("Expected padding of 2, got %d", table.padding)
	}
}

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Name", "Hex"})

	table.AddRow([]string{"primary", "#3b82f6"})
	if len(table.rows) != 1 {
		t.Errorf("Expected 1 row, got %d", len(table.rows))
	}

	// Short rows are padded.
	table.AddRow([]string{"neutral"})
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("Expected padded row, got %q", table.rows[1])
	}

	// Long rows are truncated.
	table.AddRow([]string{"accent", "#ff6600", "extra"})
	if len(table.rows[2]) != 2 {
		t.Errorf("Expected row to be truncated to 2 columns, got %d", len(table.rows[2]))
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Level", "Normal", "Large"})
	table.AddRow([]string{"AA", "pass", "pass"})
	table.AddRow([]string{"AAA", "fail", "pass"})

	want := "Level  Normal  Large\n" +
		"-----  ------  -----\n" +
		"AA     pass    pass\n" +
		"AAA    fail    pass\n"

	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderTrimsTrailingSpace(t *testing.T) {
	table := NewTable([]string{"Stop", "Seed"})
	table.AddRow([]string{"500", "*"})
	table.AddRow([]string{"600", ""})

	for _, line := range strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n") {
		if strings.HasSuffix(line, " ") {
			t.Errorf("line %q has trailing space", line)
		}
	}
}

func TestTableRenderIgnoresANSIWidth(t *testing.T) {
	red := colour.RGB{R: 255}
	table := NewTable([]string{"Preview", "Hex"})
	table.AddRow([]string{swatchBlock(red, 4), "#ff0000"})

	lines := strings.Split(table.Render(), "\n")
	// Header "Preview" is 7 wide; the 4-wide block is padded to match.
	if visibleLen(lines[2]) != len("Preview  #ff0000") {
		t.Errorf("visible width = %d, want %d (%q)", visibleLen(lines[2]), len("Preview  #ff0000"), lines[2])
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Expected empty output for empty table, got %q", got)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcde", 5, "abcde"},
		{"abcdef", 5, "abcdef"},
		{"", 3, "   "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestVisibleLen(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"plain", 5},
		{"", 0},
		{"\033[48;2;255;0;0m   \033[0m", 3},
		{swatchText(colour.RGB{B: 255}, "500", 8), 8},
	}

	for _, tt := range tests {
		if got := visibleLen(tt.input); got != tt.want {
			t.Errorf("visibleLen(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
