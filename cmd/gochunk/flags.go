package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dshills/gochunk/internal/config"
	"github.com/dshills/gochunk/internal/logger"
)

// mustBindPFlag attempts to bind a specific key to a pflag (as used by cobra) and panics
// if the binding fails with a non-nil error.
func mustBindPFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}

func mustBindEnv(v *viper.Viper, input ...string) {
	if err := v.BindEnv(input...); err != nil {
		panic("failed to bind env key: " + err.Error())
	}
}

// bindConfigFlags registers the persistent flags that map onto configuration
// keys. Defaults shown in help come from config.Default().
func bindConfigFlags(command *cobra.Command, v *viper.Viper) {
	defaults := config.Default()
	flags := command.PersistentFlags()

	flags.String("config", "", "path to a YAML configuration file")
	mustBindPFlag(v, "config", flags.Lookup("config"))
	mustBindEnv(v, "config", "GOCHUNK_CONFIG")

	flags.String("policy", defaults.Policy.Kind, "boundary policy: "+strings.Join(config.PolicyKinds, ", "))
	mustBindPFlag(v, "policy.kind", flags.Lookup("policy"))

	flags.Int("size", defaults.Policy.Size, "chunk length for the pattern policy")
	mustBindPFlag(v, "policy.size", flags.Lookup("size"))

	flags.Float64("threshold", defaults.Policy.Threshold, "variance, entropy or similarity threshold; initial dynamic threshold")
	mustBindPFlag(v, "policy.threshold", flags.Lookup("threshold"))

	flags.Int("min-size", defaults.Policy.MinSize, "size trigger for multi_criteria")
	mustBindPFlag(v, "policy.min_size", flags.Lookup("min-size"))

	flags.Float64("similarity-threshold", defaults.Policy.SimilarityThreshold, "neighbor difference trigger for multi_criteria")
	mustBindPFlag(v, "policy.similarity_threshold", flags.Lookup("similarity-threshold"))

	flags.Float64("decay", defaults.Policy.Decay, "per-chunk threshold decay for dynamic_threshold")
	mustBindPFlag(v, "policy.decay", flags.Lookup("decay"))

	flags.Float64("min-threshold", defaults.Policy.MinThreshold, "lower clamp for dynamic_threshold")
	mustBindPFlag(v, "policy.min_threshold", flags.Lookup("min-threshold"))

	flags.String("mode", defaults.Composition.Mode, "composition mode: none, recursive, hierarchical, conditional")
	mustBindPFlag(v, "composition.mode", flags.Lookup("mode"))

	flags.Int("max-depth", defaults.Composition.MaxDepth, "maximum recursion depth for recursive composition")
	mustBindPFlag(v, "composition.max_depth", flags.Lookup("max-depth"))

	flags.Int("min-chunk-size", defaults.Composition.MinChunkSize, "chunks at or below this size are never split")
	mustBindPFlag(v, "composition.min_chunk_size", flags.Lookup("min-chunk-size"))

	flags.StringSlice("levels", nil, "policy kinds per depth for hierarchical composition")
	mustBindPFlag(v, "composition.levels", flags.Lookup("levels"))

	flags.Float64("variance-above", 0, "conditional composition: split chunks whose variance exceeds this")
	mustBindPFlag(v, "composition.condition.variance_above", flags.Lookup("variance-above"))

	flags.Int("size-above", 0, "conditional composition: split chunks longer than this")
	mustBindPFlag(v, "composition.condition.size_above", flags.Lookup("size-above"))

	flags.Int("workers", defaults.Executor.Workers, "concurrent chunk workers (0 = number of CPUs)")
	mustBindPFlag(v, "executor.workers", flags.Lookup("workers"))

	flags.String("log-format", defaults.Log.Format, "log format: "+strings.Join(logger.Formats, ", "))
	mustBindPFlag(v, "log.format", flags.Lookup("log-format"))

	flags.String("log-level", defaults.Log.Level, "log level: "+strings.Join(logger.Levels, ", "))
	mustBindPFlag(v, "log.level", flags.Lookup("log-level"))

	flags.Int("cache-size", defaults.Server.CacheSize, "MCP result cache entries (0 disables)")
	mustBindPFlag(v, "server.cache_size", flags.Lookup("cache-size"))
}

// overlayFlags copies explicitly set flags onto cfg
func overlayFlags(v *viper.Viper, cfg *config.Config) {
	setString(v, "policy.kind", &cfg.Policy.Kind)
	setInt(v, "policy.size", &cfg.Policy.Size)
	setFloat(v, "policy.threshold", &cfg.Policy.Threshold)
	setInt(v, "policy.min_size", &cfg.Policy.MinSize)
	setFloat(v, "policy.similarity_threshold", &cfg.Policy.SimilarityThreshold)
	setFloat(v, "policy.decay", &cfg.Policy.Decay)
	setFloat(v, "policy.min_threshold", &cfg.Policy.MinThreshold)

	setString(v, "composition.mode", &cfg.Composition.Mode)
	setInt(v, "composition.max_depth", &cfg.Composition.MaxDepth)
	setInt(v, "composition.min_chunk_size", &cfg.Composition.MinChunkSize)
	setFloat(v, "composition.condition.variance_above", &cfg.Composition.Condition.VarianceAbove)
	setInt(v, "composition.condition.size_above", &cfg.Composition.Condition.SizeAbove)

	// each level reuses the top-level policy parameters
	if v.IsSet("composition.levels") {
		kinds := v.GetStringSlice("composition.levels")
		cfg.Composition.Levels = make([]config.PolicyConfig, len(kinds))
		for i, kind := range kinds {
			level := cfg.Policy
			level.Kind = kind
			cfg.Composition.Levels[i] = level
		}
	}

	setInt(v, "executor.workers", &cfg.Executor.Workers)
	setString(v, "log.format", &cfg.Log.Format)
	setString(v, "log.level", &cfg.Log.Level)
	setInt(v, "server.cache_size", &cfg.Server.CacheSize)
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setInt(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}

func setFloat(v *viper.Viper, key string, dst *float64) {
	if v.IsSet(key) {
		*dst = v.GetFloat64(key)
	}
}
