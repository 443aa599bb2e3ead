package plugin

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-plugin"
)

// WriteInfo prints plugin metadata the way the host expects from --plugin-info.
func WriteInfo(w io.Writer, info PluginInfo) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}

// ServeSampler runs a sampler plugin. It answers --plugin-info itself and
// otherwise hands the process to go-plugin until the host disconnects.
func ServeSampler(impl SamplerPlugin) {
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		if err := WriteInfo(os.Stdout, impl.GetMetadata()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			DispenseName: &SamplerPluginRPC{Impl: impl},
		},
	})
}
