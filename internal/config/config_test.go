package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, DefaultPolicyKind, cfg.Policy.Kind)
	assert.Equal(t, ModeNone, cfg.Composition.Mode)
}

func TestParse(t *testing.T) {
	data := []byte(`
policy:
  kind: multi_criteria
  min_size: 3
  similarity_threshold: 0.3
composition:
  mode: hierarchical
  min_chunk_size: 2
  levels:
    - kind: pattern
      size: 8
    - kind: variance
      threshold: 0.5
executor:
  workers: 4
log:
  format: text
  level: debug
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "multi_criteria", cfg.Policy.Kind)
	assert.Equal(t, 3, cfg.Policy.MinSize)
	assert.InDelta(t, 0.3, cfg.Policy.SimilarityThreshold, 1e-9)
	// untouched keys keep their defaults
	assert.InDelta(t, DefaultDecay, cfg.Policy.Decay, 1e-9)

	require.Len(t, cfg.Composition.Levels, 2)
	assert.Equal(t, 8, cfg.Composition.Levels[0].Size)
	assert.Equal(t, DefaultPolicyMinSize, cfg.Composition.Levels[1].MinSize)
	assert.Equal(t, 4, cfg.Executor.Workers)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, DefaultCacheSize, cfg.Server.CacheSize)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("policy: [unclosed"))
	require.Error(t, err)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Policy.Kind = "bogus"
	cfg.Composition.Mode = "sideways"
	cfg.Composition.MaxDepth = -1
	cfg.Executor.Workers = -2
	cfg.Log.Level = "loud"

	err := Validate(cfg)
	require.Error(t, err)

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors, 5)

	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{
		"policy.kind",
		"composition.mode",
		"composition.max_depth",
		"executor.workers",
		"log.level",
	}, fields)
}

func TestValidate_PolicyParameters(t *testing.T) {
	tests := []struct {
		name   string
		policy PolicyConfig
		field  string
	}{
		{"pattern size", PolicyConfig{Kind: "pattern", Size: 0}, "policy.size"},
		{"multi min size", PolicyConfig{Kind: "multi_criteria", MinSize: -1}, "policy.min_size"},
		{"dynamic decay", PolicyConfig{Kind: "dynamic_threshold", Threshold: 1, Decay: 1.5}, "policy.decay"},
		{"dynamic threshold", PolicyConfig{Kind: "dynamic_threshold", Threshold: 0, Decay: 0.5}, "policy.threshold"},
		{"dynamic min above initial", PolicyConfig{Kind: "dynamic_threshold", Threshold: 1, Decay: 0.5, MinThreshold: 2}, "policy.min_threshold"},
		{"variance negative", PolicyConfig{Kind: "variance", Threshold: -1}, "policy.threshold"},
		{"variance NaN", PolicyConfig{Kind: "variance", Threshold: math.NaN()}, "policy.threshold"},
		{"entropy negative", PolicyConfig{Kind: "entropy", Threshold: -0.5}, "policy.threshold"},
		{"multi similarity", PolicyConfig{Kind: "multi_criteria", MinSize: 4, SimilarityThreshold: -1}, "policy.similarity_threshold"},
		{"similarity zero", PolicyConfig{Kind: "similarity", Threshold: 0}, "policy.threshold"},
		{"similarity above one", PolicyConfig{Kind: "similarity", Threshold: 1.5}, "policy.threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Policy = tt.policy

			var verr ValidationError
			require.ErrorAs(t, Validate(cfg), &verr)
			require.Len(t, verr.Errors, 1)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gochunk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy:\n  kind: entropy\n  threshold: 1.5\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "entropy", cfg.Policy.Kind)
	assert.InDelta(t, 1.5, cfg.Policy.Threshold, 1e-9)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("GOCHUNK_POLICY_KIND", "similarity")
	t.Setenv("GOCHUNK_POLICY_THRESHOLD", "0.25")
	t.Setenv("GOCHUNK_EXECUTOR_WORKERS", "3")
	t.Setenv("GOCHUNK_COMPOSITION_MODE", "recursive")
	t.Setenv("GOCHUNK_SERVER_CACHE_SIZE", "not-a-number")

	cfg, err := LoadWithEnvOverrides("")
	require.NoError(t, err)

	assert.Equal(t, "similarity", cfg.Policy.Kind)
	assert.InDelta(t, 0.25, cfg.Policy.Threshold, 1e-9)
	assert.Equal(t, 3, cfg.Executor.Workers)
	assert.Equal(t, ModeRecursive, cfg.Composition.Mode)
	assert.Equal(t, DefaultCacheSize, cfg.Server.CacheSize)
}

func TestLoadWithEnvOverrides_InvalidOverride(t *testing.T) {
	t.Setenv("GOCHUNK_LOG_FORMAT", "xml")

	_, err := LoadWithEnvOverrides("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}
