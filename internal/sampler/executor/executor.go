// Package executor runs sampler plugins regardless of their underlying
// protocol (go-plugin RPC or JSON-stdio).
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/sampler/protocol"
	"github.com/jmylchreest/swatch/pkg/plugin"
)

// PluginExecutor provides a unified interface for executing sampler plugins.
type PluginExecutor struct {
	path         string
	info         protocol.PluginInfo
	protocolType protocol.PluginType
	logger       hclog.Logger
	runner       ProcessRunner

	client    *goplugin.Client
	rpcClient *plugin.SamplerPluginRPCClient
}

// New creates a new PluginExecutor by detecting the plugin's protocol.
// A nil logger discards plugin logs.
func New(ctx context.Context, pluginPath string, logger hclog.Logger) (*PluginExecutor, error) {
	return NewWithRunner(ctx, pluginPath, logger, NewRealProcessRunner())
}

// NewWithRunner creates a PluginExecutor that runs JSON-stdio plugins
// through runner.
func NewWithRunner(ctx context.Context, pluginPath string, logger hclog.Logger, runner ProcessRunner) (*PluginExecutor, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	result, err := protocol.DetectProtocol(ctx, pluginPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect plugin protocol: %w", err)
	}

	logger.Debug("detected sampler plugin",
		"path", pluginPath,
		"name", result.PluginInfo.Name,
		"version", result.PluginInfo.Version,
		"protocol", result.Type)

	return &PluginExecutor{
		path:         pluginPath,
		info:         result.PluginInfo,
		protocolType: result.Type,
		logger:       logger,
		runner:       runner,
	}, nil
}

// Info returns the plugin's --plugin-info metadata.
func (e *PluginExecutor) Info() protocol.PluginInfo {
	return e.info
}

// Protocol returns the detected transport.
func (e *PluginExecutor) Protocol() protocol.PluginType {
	return e.protocolType
}

// Sample asks the plugin for one colour and validates its reply.
func (e *PluginExecutor) Sample(ctx context.Context, opts plugin.SampleOptions) (colour.Hex, error) {
	var (
		raw string
		err error
	)

	switch e.protocolType {
	case protocol.PluginTypeGoPlugin:
		raw, err = e.sampleGoPlugin(ctx, opts)
	case protocol.PluginTypeJSON:
		raw, err = e.sampleJSON(ctx, opts)
	default:
		return "", fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
	if err != nil {
		return "", err
	}

	hex, err := colour.NormalizeHex(raw)
	if err != nil {
		return "", fmt.Errorf("plugin %s returned an invalid colour: %w", e.info.Name, err)
	}

	e.logger.Debug("sampled colour", "plugin", e.info.Name, "hex", hex)
	return hex, nil
}

// GetFlagHelp returns the plugin's argument help. JSON-stdio plugins
// carry none.
func (e *PluginExecutor) GetFlagHelp(ctx context.Context) ([]plugin.FlagHelp, error) {
	switch e.protocolType {
	case protocol.PluginTypeGoPlugin:
		client, err := e.getRPCClient()
		if err != nil {
			return nil, err
		}
		return client.GetFlagHelp(), nil
	case protocol.PluginTypeJSON:
		return []plugin.FlagHelp{}, nil
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
}

// Close cleans up any resources held by the executor.
func (e *PluginExecutor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.rpcClient = nil
	}
}

// --- Go-Plugin RPC implementation ---

func (e *PluginExecutor) getRPCClient() (*plugin.SamplerPluginRPCClient, error) {
	if e.rpcClient != nil {
		return e.rpcClient, nil
	}

	e.client = goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: protocol.Handshake,
		Plugins: map[string]goplugin.Plugin{
			plugin.DispenseName: &plugin.SamplerPluginRPC{},
		},
		Cmd:              exec.Command(e.path), // #nosec G204 -- plugin path is chosen by the user
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           e.logger.Named("plugin"),
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.DispenseName)
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	client, ok := raw.(*plugin.SamplerPluginRPCClient)
	if !ok {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("plugin dispensed unexpected type %T", raw)
	}
	e.rpcClient = client

	return client, nil
}

func (e *PluginExecutor) sampleGoPlugin(ctx context.Context, opts plugin.SampleOptions) (string, error) {
	client, err := e.getRPCClient()
	if err != nil {
		return "", err
	}
	return client.Sample(ctx, opts)
}

// --- JSON-stdio implementation ---

func (e *PluginExecutor) sampleJSON(ctx context.Context, opts plugin.SampleOptions) (string, error) {
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("failed to marshal options: %w", err)
	}

	stdout, stderr, err := e.runner.Run(ctx, e.path, nil, bytes.NewReader(optsJSON))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("plugin execution aborted: %w", ctxErr)
		}
		return "", fmt.Errorf("plugin execution failed: %w\nStderr: %s", err, strings.TrimSpace(string(stderr)))
	}

	if len(stderr) > 0 {
		e.logger.Debug("plugin stderr", "plugin", e.info.Name, "output", strings.TrimSpace(string(stderr)))
	}

	var result plugin.SampleResult
	if err := json.Unmarshal(stdout, &result); err != nil {
		return "", fmt.Errorf("failed to parse plugin output: %w\nOutput: %s", err, strings.TrimSpace(string(stdout)))
	}
	if result.Error != "" {
		return "", &plugin.RPCError{Message: result.Error}
	}

	return result.Hex, nil
}
