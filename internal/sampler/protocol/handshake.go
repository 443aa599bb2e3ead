// Package protocol defines the sampler plugin protocol version and compatibility checking.
package protocol

import (
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

// Handshake is the handshake configuration for go-plugin protocol.
// This ensures that plugins using go-plugin can only connect to compatible hosts.
//
// NOTE: go-plugin's ProtocolVersion is a single uint that must match exactly.
// We use the major version from ProtocolVersion for this. The full semantic
// version check happens separately via --plugin-info and IsCompatible.
var Handshake = goplugin.HandshakeConfig{
	ProtocolVersion:  uint(GetCurrentVersion().Major),
	MagicCookieKey:   plugin.Handshake.MagicCookieKey,
	MagicCookieValue: plugin.Handshake.MagicCookieValue,
}

// PluginType defines the type of plugin communication protocol.
type PluginType = plugin.PluginType

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin = plugin.PluginTypeGoPlugin

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON = plugin.PluginTypeJSON
)
