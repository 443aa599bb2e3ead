package plugin

// FlagHelp represents help information for a single plugin argument.
type FlagHelp struct {
	Name        string `json:"name"`        // Argument name (e.g., "x", "display")
	Type        string `json:"type"`        // Type (e.g., "string", "int", "bool")
	Default     string `json:"default"`     // Default value as string
	Description string `json:"description"` // Help text
	Required    bool   `json:"required"`    // Is this argument required?
}

// PluginInfo contains metadata about a plugin, as printed by --plugin-info.
type PluginInfo struct {
	Name            string `json:"name"`
	Type            string `json:"type"` // "sampler"
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"` // "json-stdio" or "go-plugin"
}

// SampleOptions is sent to a sampler for each request. JSON-stdio plugins
// receive it on stdin.
type SampleOptions struct {
	Verbose    bool           `json:"verbose"`
	PluginArgs map[string]any `json:"plugin_args,omitempty"`
}

// SampleResult is a sampler's reply. JSON-stdio plugins print it on stdout.
// A non-empty Error reports a failed sample.
type SampleResult struct {
	Hex   string `json:"hex"`
	Error string `json:"error,omitempty"`
}
