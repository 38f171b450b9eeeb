package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dshills/gochunk/internal/config"
	"github.com/dshills/gochunk/internal/logger"
)

// newRootCommand builds the command tree. Settings are read from a YAML
// file, then GOCHUNK_* environment variables, then flags (later wins).
func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GOCHUNK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	root := &cobra.Command{
		Use:   "gochunk",
		Short: "Segment numeric sequences into chunks with pluggable boundary policies",
		Long: `gochunk splits an ordered sequence into contiguous chunks using a boundary
policy (pattern, variance, entropy, multi_criteria, dynamic_threshold or
similarity), optionally re-splits the chunks recursively, hierarchically or
conditionally, and summarizes every chunk concurrently.

The same operations are available to MCP clients through "gochunk serve".`,
		SilenceUsage: true,
	}

	bindConfigFlags(root, v)

	root.AddCommand(newSegmentCommand(v))
	root.AddCommand(newReduceCommand(v))
	root.AddCommand(newServeCommand(v))
	root.AddCommand(newVersionCommand())

	return root
}

// loadConfig resolves the effective configuration for a command
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.LoadWithEnvOverrides(v.GetString("config"))
	if err != nil {
		return nil, err
	}

	overlayFlags(v, cfg)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the command logger; logs always go to stderr
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Log.Format, cfg.Log.Level)
}
