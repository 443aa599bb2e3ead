// Package cli provides the command-line interface for swatch.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/version"
)

// app carries the state shared by every command of one invocation.
type app struct {
	// Global flag values.
	verbose    bool
	quiet      bool
	format     string
	noPreview  bool
	configPath string

	cfg    *config.Config
	logger hclog.Logger

	// isTerminal reports whether w is an interactive terminal.
	isTerminal func(w io.Writer) bool
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{
		cfg:        config.Default(),
		logger:     hclog.NewNullLogger(),
		isTerminal: isTerminal,
	}

	rootCmd := &cobra.Command{
		Use:   "swatch",
		Short: "A colour-science and accessibility toolkit",
		Long: `Swatch converts colours between hex, RGB, HSL and OKLCH, scores WCAG
contrast, derives harmonies and OKLCH tonal scales, simulates colour-vision
deficiencies, and composes reproducible random palettes.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	flags.StringVarP(&a.format, "format", "f", config.FormatText, "output format (text, json)")
	flags.BoolVar(&a.noPreview, "no-preview", false, "disable ANSI colour previews")
	flags.StringVar(&a.configPath, "config", "", "config file (default: $SWATCH_CONFIG or "+config.DefaultPath+")")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newConvertCmd(a),
		newContrastCmd(a),
		newTextCmd(a),
		newHarmonyCmd(a),
		newScaleCmd(a),
		newSimulateCmd(a),
		newPaletteCmd(a),
		newSampleCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup layers flags over the loaded configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if a.verbose && a.quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	a.logger = newLogger(cmd.ErrOrStderr(), a.verbose, a.quiet)

	cfg, err := config.NewBuilder().
		WithFile(a.configPath).
		WithEnvConfig().
		Build()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Source != "" {
		a.logger.Debug("loaded config", "path", cfg.Source)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = a.format
	}
	if flags.Changed("no-preview") {
		cfg.NoPreview = a.noPreview
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	return nil
}

// newLogger builds the named swatch logger: debug with --verbose, silent
// with --quiet, warnings otherwise.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	opts := &hclog.LoggerOptions{
		Name:   "swatch",
		Output: w,
		Level:  hclog.Warn,
	}
	switch {
	case quiet:
		opts.Output = io.Discard
		opts.Level = hclog.Off
	case verbose:
		opts.Level = hclog.Debug
	}
	return hclog.New(opts)
}

// jsonOutput reports whether results should be printed as JSON.
func (a *app) jsonOutput() bool {
	return a.cfg.Format == config.FormatJSON
}

// preview reports whether ANSI swatches should accompany text output.
func (a *app) preview(w io.Writer) bool {
	return !a.cfg.NoPreview && !a.jsonOutput() && a.isTerminal(w)
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), version.GetInfo())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
