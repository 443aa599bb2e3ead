package protocol

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// copyTestScript copies a test script from testdata to a temporary directory.
// Returns the path to the copied script with execute permissions set.
func copyTestScript(t *testing.T, scriptName string) string {
	t.Helper()

	scriptContent, err := os.ReadFile(filepath.Join("testdata", "scripts", scriptName))
	if err != nil {
		t.Fatalf("Failed to read testdata script %s: %v", scriptName, err)
	}

	pluginPath := filepath.Join(t.TempDir(), scriptName)
	if err := os.WriteFile(pluginPath, scriptContent, 0o755); err != nil { // #nosec G306 -- test plugin must be executable
		t.Fatalf("Failed to write test script: %v", err)
	}

	return pluginPath
}

func TestDetectProtocol(t *testing.T) {
	tests := []struct {
		script   string
		wantType PluginType
		wantName string
	}{
		{"json-sampler.sh", PluginTypeJSON, "json-sampler"},
		{"go-plugin-info.sh", PluginTypeGoPlugin, "rpc-sampler"},
		{"bare-info.sh", PluginTypeJSON, "bare"},
	}

	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			result, err := DetectProtocol(context.Background(), copyTestScript(t, tt.script))
			if err != nil {
				t.Fatalf("DetectProtocol() error = %v", err)
			}
			if result.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", result.Type, tt.wantType)
			}
			if result.PluginInfo.Name != tt.wantName {
				t.Errorf("PluginInfo.Name = %q, want %q", result.PluginInfo.Name, tt.wantName)
			}
		})
	}
}

func TestDetectProtocolRejects(t *testing.T) {
	tests := []struct {
		script        string
		errorContains string
	}{
		{"output-type.sh", `expected "sampler"`},
		{"future-major.sh", "incompatible major version"},
		{"unknown-protocol.sh", "unknown plugin_protocol"},
		{"bad-info.sh", "failed to parse plugin info"},
		{"info-fails.sh", "no info for you"},
	}

	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			_, err := DetectProtocol(context.Background(), copyTestScript(t, tt.script))
			if err == nil {
				t.Fatal("DetectProtocol() expected error")
			}
			if !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("DetectProtocol() error = %q, want it to contain %q", err, tt.errorContains)
			}
		})
	}
}

func TestDetectProtocolMissingBinary(t *testing.T) {
	_, err := DetectProtocol(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("DetectProtocol() expected error for missing plugin")
	}
}
