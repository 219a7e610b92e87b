// Package main provides the CLI entrypoint for soltana.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/soltana/internal/config"
	"github.com/jmylchreest/soltana/internal/style"
	"github.com/jmylchreest/soltana/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "soltana",
	Short: "Named plot themes: dark, light and sepia",
	Long: `soltana ships three plot themes (dark, light, sepia) as stylesheets and
applies them by name.

Themes can be listed, inspected, linted, rendered to sample chart previews
and picked interactively. The same stylesheets are reachable through the
style engine's package namespace as soltana.dark, soltana.light and
soltana.sepia.

Running soltana without a subcommand launches the interactive picker.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return nil
	},
	// Default to the picker when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPick(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/soltana/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// loadParams applies a theme or stylesheet to a fresh engine and returns the
// resulting parameters. An empty name selects the configured default theme.
// Registered theme tags always resolve to the embedded stylesheets, so a file
// of the same name in the styles directory cannot shadow them. Other bare
// names are looked up in the styles directory and then reported as unknown
// themes; dotted names and paths go to the style engine.
func loadParams(name string) (style.Params, error) {
	if name == "" {
		name = cfg.Theme.Default
	}

	engine := style.NewEngine(logger)
	if theme.IsTheme(name) {
		if err := theme.NewResolver(engine).Use(name); err != nil {
			return nil, err
		}
		return engine.Params(), nil
	}

	resolved := cfg.ResolveStyle(name)
	if resolved == name && name != "default" && !strings.ContainsAny(name, `./\`) {
		// Not a file either; the resolver reports the available themes
		if err := theme.NewResolver(engine).Use(name); err != nil {
			return nil, err
		}
		return engine.Params(), nil
	}

	if resolved != name {
		logger.Debug("using stylesheet from styles directory", "name", name, "path", resolved)
	}
	if err := engine.Use(resolved); err != nil {
		return nil, err
	}
	return engine.Params(), nil
}
