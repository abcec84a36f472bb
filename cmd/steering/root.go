package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/steering/config"
	"github.com/c360studio/steering/registry"
)

const version = "0.1.0"

// rootOptions holds the persistent flags shared by all subcommands.
type rootOptions struct {
	configPath string
	docsDir    string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "steering",
		Short:   "Resolve which standards documents apply to a development task",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts.logLevel)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: steering.yaml, searched upward)")
	cmd.PersistentFlags().StringVar(&opts.docsDir, "docs", "", "documents directory (default: .steering, searched upward)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newListCommand(opts),
		newResolveCommand(opts),
		newValidateCommand(opts),
		newServeCommand(opts),
	)

	return cmd
}

// setupLogging installs a text slog handler at the requested level.
func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})))
	return nil
}

// loadConfig builds the effective config from flags and config files.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if opts.configPath != "" {
		cfg = config.DefaultConfig()
		fileCfg, err := config.LoadFromFile(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", opts.configPath, err)
		}
		cfg.Merge(fileCfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.NewLoader(slog.Default()).Load()
		if err != nil {
			return nil, err
		}
	}

	if opts.docsDir != "" {
		cfg.Docs.Dir = opts.docsDir
	}

	return cfg, nil
}

// loadRegistry loads the document registry, printing any excluded
// documents to stderr.
func loadRegistry(cfg *config.Config) (*registry.Registry, []*registry.LoadError, error) {
	reg := registry.New(cfg.Docs.Dir, nil, slog.Default())
	invalid, err := reg.Load()
	if err != nil {
		return nil, nil, err
	}
	for _, le := range invalid {
		fmt.Fprintf(os.Stderr, "warning: excluded %s: %v\n", le.Path, le.Err)
	}
	return reg, invalid, nil
}
