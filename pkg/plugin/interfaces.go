package plugin

import (
	"context"
)

// SamplerPlugin is the interface that sampler plugins must implement for go-plugin RPC.
// A sampler stands in for platform colour pickers (screen eyedroppers,
// hardware colorimeters, canvas picks) that swatch cannot reach itself.
type SamplerPlugin interface {
	// Sample returns one colour as "#rrggbb".
	Sample(ctx context.Context, opts SampleOptions) (string, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo

	// GetFlagHelp returns help information for plugin flags.
	GetFlagHelp() []FlagHelp
}
