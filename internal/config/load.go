package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "GOCHUNK_"

// Load reads configuration from a YAML file at path.
// Keys missing from the file keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("configuration file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes, defaults and validates YAML configuration data
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads path (or Default when path is empty) and then
// applies GOCHUNK_SECTION_FIELD environment variables, which always win.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	}

	ApplyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies GOCHUNK_* variables to cfg.
// Malformed numeric values are ignored.
func ApplyEnvOverrides(cfg *Config) {
	// Policy overrides
	if val := getenv("POLICY_KIND"); val != "" {
		cfg.Policy.Kind = val
	}
	envInt("POLICY_SIZE", &cfg.Policy.Size)
	envFloat("POLICY_THRESHOLD", &cfg.Policy.Threshold)
	envInt("POLICY_MIN_SIZE", &cfg.Policy.MinSize)
	envFloat("POLICY_SIMILARITY_THRESHOLD", &cfg.Policy.SimilarityThreshold)
	envFloat("POLICY_DECAY", &cfg.Policy.Decay)
	envFloat("POLICY_MIN_THRESHOLD", &cfg.Policy.MinThreshold)

	// Composition overrides
	if val := getenv("COMPOSITION_MODE"); val != "" {
		cfg.Composition.Mode = val
	}
	envInt("COMPOSITION_MAX_DEPTH", &cfg.Composition.MaxDepth)
	envInt("COMPOSITION_MIN_CHUNK_SIZE", &cfg.Composition.MinChunkSize)

	// Executor overrides
	envInt("EXECUTOR_WORKERS", &cfg.Executor.Workers)

	// Log overrides
	if val := getenv("LOG_FORMAT"); val != "" {
		cfg.Log.Format = val
	}
	if val := getenv("LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}

	// Server overrides
	envInt("SERVER_CACHE_SIZE", &cfg.Server.CacheSize)
}

func getenv(key string) string {
	return os.Getenv(EnvPrefix + key)
}

func envInt(key string, dst *int) {
	if val := getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envFloat(key string, dst *float64) {
	if val := getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			*dst = f
		}
	}
}
