package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

// DefaultDetectTimeout bounds the --plugin-info query.
const DefaultDetectTimeout = 5 * time.Second

// PluginInfo is a type alias to the public plugin.PluginInfo type.
// External plugins should import github.com/jmylchreest/swatch/pkg/plugin directly.
type PluginInfo = plugin.PluginInfo

// DetectorResult contains information about a detected plugin protocol.
type DetectorResult struct {
	// Type indicates which protocol the plugin uses.
	Type PluginType

	// PluginInfo contains metadata from --plugin-info.
	PluginInfo PluginInfo
}

// DetectProtocol queries a plugin with --plugin-info and decides how to
// talk to it. Plugins that are not samplers, or whose protocol version this
// build cannot serve, are rejected.
func DetectProtocol(ctx context.Context, pluginPath string) (*DetectorResult, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultDetectTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, pluginPath, "--plugin-info")
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("failed to query plugin: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("failed to query plugin: %w", err)
	}

	var info PluginInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	if info.Type != "" && info.Type != plugin.TypeSampler {
		return nil, fmt.Errorf("plugin %q has type %q, expected %q", info.Name, info.Type, plugin.TypeSampler)
	}

	if info.ProtocolVersion != "" {
		if ok, err := IsCompatible(info.ProtocolVersion); !ok {
			return nil, fmt.Errorf("plugin %q: %w", info.Name, err)
		}
	}

	result := &DetectorResult{
		PluginInfo: info,
	}

	// Determine protocol type from plugin_protocol field.
	switch PluginType(info.PluginProtocol) {
	case PluginTypeGoPlugin:
		result.Type = PluginTypeGoPlugin
	case PluginTypeJSON, "":
		// Empty defaults to json-stdio, the simplest protocol to script.
		result.Type = PluginTypeJSON
	default:
		return nil, fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}

	return result, nil
}
