package sampler

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/sampler/executor"
	"github.com/jmylchreest/swatch/pkg/plugin"
)

// DefaultPluginTimeout bounds a single plugin sample.
const DefaultPluginTimeout = 30 * time.Second

// PluginOptions configures a PluginSampler.
type PluginOptions struct {
	// Timeout bounds each Sample call (DefaultPluginTimeout when zero).
	Timeout time.Duration

	// Args are forwarded to the plugin as plugin_args.
	Args map[string]any

	Verbose bool
}

// PluginSampler obtains colours from an external sampler plugin.
type PluginSampler struct {
	exec *executor.PluginExecutor
	opts PluginOptions
}

// NewPluginSampler detects the plugin at path and prepares it for sampling.
// Close must be called to stop go-plugin processes.
func NewPluginSampler(ctx context.Context, path string, logger hclog.Logger, opts PluginOptions) (*PluginSampler, error) {
	exec, err := executor.New(ctx, path, logger)
	if err != nil {
		return nil, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultPluginTimeout
	}
	return &PluginSampler{exec: exec, opts: opts}, nil
}

// Info returns the plugin's metadata.
func (s *PluginSampler) Info() plugin.PluginInfo {
	return s.exec.Info()
}

// Sample implements Sampler.
func (s *PluginSampler) Sample(ctx context.Context) (colour.Hex, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	return s.exec.Sample(ctx, plugin.SampleOptions{
		Verbose:    s.opts.Verbose,
		PluginArgs: s.opts.Args,
	})
}

// Close stops the plugin process, if any.
func (s *PluginSampler) Close() {
	s.exec.Close()
}
