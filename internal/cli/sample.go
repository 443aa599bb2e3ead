package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/sampler"
)

type sampleFlags struct {
	image      string
	x, y       int
	radius     int
	dominant   bool
	clusters   int
	plugin     string
	pluginArgs []string
	timeout    time.Duration
}

func newSampleCmd(a *app) *cobra.Command {
	var f sampleFlags

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample a colour from an image or a sampler plugin",
		Long: `Obtain a colour from an image file or an external sampler plugin and
show it in every notation.

Images are sampled at a pixel (optionally averaged over a square radius)
or reduced to their dominant colour with k-means. Plugins may speak either
the go-plugin RPC protocol or JSON over stdin/stdout; the protocol is
detected automatically with --plugin-info.`,
		Example: `  swatch sample --image wallpaper.png --x 120 --y 40 --radius 2
  swatch sample --image wallpaper.png --dominant
  swatch sample --plugin ./swatch-sampler-constant --plugin-arg hex=#3b82f6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSample(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.image, "image", "i", "", "image file to sample (png, jpeg, gif, webp)")
	flags.IntVar(&f.x, "x", 0, "pixel column")
	flags.IntVar(&f.y, "y", 0, "pixel row")
	flags.IntVar(&f.radius, "radius", 0, "average a square of this radius around the pixel")
	flags.BoolVar(&f.dominant, "dominant", false, "sample the dominant colour of the whole image")
	flags.IntVar(&f.clusters, "clusters", 0, "k-means clusters for --dominant (default from config)")
	flags.StringVarP(&f.plugin, "plugin", "p", "", "sampler plugin executable")
	flags.StringArrayVar(&f.pluginArgs, "plugin-arg", nil, "plugin argument as key=value (repeatable)")
	flags.DurationVar(&f.timeout, "timeout", 0, "plugin timeout (default from config)")

	cmd.MarkFlagsMutuallyExclusive("image", "plugin")
	cmd.MarkFlagsOneRequired("image", "plugin")

	return cmd
}

func (a *app) runSample(cmd *cobra.Command, f sampleFlags) error {
	ctx := cmd.Context()

	var (
		s      sampler.Sampler
		source string
	)

	if f.image != "" {
		opts := sampler.ImageOptions{
			Mode:     sampler.ModePoint,
			X:        f.x,
			Y:        f.y,
			Radius:   f.radius,
			Clusters: a.cfg.Sampler.Clusters,
		}
		if f.dominant {
			opts.Mode = sampler.ModeDominant
		}
		if f.clusters > 0 {
			opts.Clusters = f.clusters
		}

		img, err := sampler.OpenImageSampler(f.image, opts)
		if err != nil {
			return err
		}
		s = img
		source = fmt.Sprintf("%s@%d,%d", f.image, f.x, f.y)
		if f.dominant {
			source = f.image + "#dominant"
		}
	} else {
		args, err := parsePluginArgs(f.pluginArgs)
		if err != nil {
			return err
		}
		timeout := a.cfg.Sampler.Timeout
		if f.timeout > 0 {
			timeout = f.timeout
		}

		p, err := sampler.NewPluginSampler(ctx, f.plugin, a.logger, sampler.PluginOptions{
			Timeout: timeout,
			Args:    args,
			Verbose: a.verbose,
		})
		if err != nil {
			return err
		}
		defer p.Close()

		info := p.Info()
		a.logger.Debug("using sampler plugin", "name", info.Name, "version", info.Version, "protocol", info.PluginProtocol)
		s = p
		source = info.Name
	}

	hex, err := s.Sample(ctx)
	if err != nil {
		return fmt.Errorf("failed to sample colour: %w", err)
	}

	rgb, err := colour.HexToRGB(hex)
	if err != nil {
		return err
	}
	return a.printColour(cmd.OutOrStdout(), source, rgb)
}

// parsePluginArgs converts key=value pairs. Numbers and booleans keep their
// type so plugins see the same values a JSON config would give them.
func parsePluginArgs(values []string) (map[string]any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	args := make(map[string]any, len(values))
	for _, value := range values {
		key, raw, ok := strings.Cut(value, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--plugin-arg: expected key=value, got %q", value)
		}
		switch {
		case raw == "true" || raw == "false":
			args[key] = raw == "true"
		default:
			if n, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
				args[key] = n
			} else {
				args[key] = raw
			}
		}
	}
	return args, nil
}
