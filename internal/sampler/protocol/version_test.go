package protocol

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		version     string
		expectError bool
		major       int
		minor       int
		patch       int
	}{
		{"0.1.0", false, 0, 1, 0},
		{"1.0.0", false, 1, 0, 0},
		{"v2.5.3", false, 2, 5, 3},
		{"10.99.42", false, 10, 99, 42},
		{"invalid", true, 0, 0, 0},
		{"1", true, 0, 0, 0},
		{"1.2", true, 0, 0, 0},
		{"1.-2.0", true, 0, 0, 0},
	}

	for _, tt := range tests {
		v, err := Parse(tt.version)
		if tt.expectError {
			if err == nil {
				t.Errorf("Parse(%q) expected error but got none", tt.version)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.version, err)
		}
		if v.Major != tt.major || v.Minor != tt.minor || v.Patch != tt.patch {
			t.Errorf("Parse(%q) = %s, want %d.%d.%d", tt.version, v, tt.major, tt.minor, tt.patch)
		}
	}
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		pluginVersion string
		compatible    bool
		errorContains string
	}{
		{"0.1.0", true, ""},
		{"v0.1.0", true, ""},
		{"0.1.7", true, ""},
		{"0.4.2", true, ""},

		{"0.0.9", false, "too old"},
		{"1.0.0", false, "incompatible major version"},
		{"2.1.0", false, "incompatible major version"},

		{"invalid", false, "failed to parse"},
		{"1.2", false, "invalid version format"},
	}

	for _, tt := range tests {
		compatible, err := IsCompatible(tt.pluginVersion)

		if compatible != tt.compatible {
			t.Errorf("IsCompatible(%q) = %v, want %v (err: %v)", tt.pluginVersion, compatible, tt.compatible, err)
			continue
		}
		if tt.compatible {
			if err != nil {
				t.Errorf("IsCompatible(%q) unexpected error: %v", tt.pluginVersion, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.errorContains) {
			t.Errorf("IsCompatible(%q) error = %v, want error containing %q", tt.pluginVersion, err, tt.errorContains)
		}
	}
}

func TestVersionLess(t *testing.T) {
	tests := []struct {
		a, b Version
		want bool
	}{
		{Version{0, 1, 0}, Version{0, 1, 1}, true},
		{Version{0, 1, 9}, Version{0, 2, 0}, true},
		{Version{1, 0, 0}, Version{0, 9, 9}, false},
		{Version{0, 1, 0}, Version{0, 1, 0}, false},
	}

	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.want {
			t.Errorf("%s.Less(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestHandshakeMatchesMajorVersion(t *testing.T) {
	if Handshake.ProtocolVersion != uint(GetCurrentVersion().Major) {
		t.Errorf("Handshake.ProtocolVersion = %d, want %d", Handshake.ProtocolVersion, GetCurrentVersion().Major)
	}
	if Handshake.MagicCookieKey != "SWATCH_PLUGIN" {
		t.Errorf("Handshake.MagicCookieKey = %q", Handshake.MagicCookieKey)
	}
}
