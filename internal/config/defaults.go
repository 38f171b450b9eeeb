package config

// Default values for configuration fields.
const (
	// Policy defaults
	DefaultPolicyKind          = "variance"
	DefaultPolicySize          = 16
	DefaultPolicyThreshold     = 1.0
	DefaultPolicyMinSize       = 16
	DefaultSimilarityThreshold = 0.5
	DefaultDecay               = 0.9
	DefaultMinThreshold        = 0.1

	// Composition defaults
	DefaultCompositionMode = ModeNone
	DefaultMaxDepth        = 3
	DefaultMinChunkSize    = 1

	// Executor defaults (0 = runtime.NumCPU())
	DefaultWorkers = 0

	// Logging defaults
	DefaultLogFormat = "json"
	DefaultLogLevel  = "info"

	// Server defaults
	DefaultCacheSize = 256
)

// Default returns a complete, valid configuration
func Default() *Config {
	return &Config{
		Policy: DefaultPolicy(),
		Composition: CompositionConfig{
			Mode:         DefaultCompositionMode,
			MaxDepth:     DefaultMaxDepth,
			MinChunkSize: DefaultMinChunkSize,
		},
		Executor: ExecutorConfig{Workers: DefaultWorkers},
		Log: LogConfig{
			Format: DefaultLogFormat,
			Level:  DefaultLogLevel,
		},
		Server: ServerConfig{CacheSize: DefaultCacheSize},
	}
}

// DefaultPolicy returns the default policy configuration
func DefaultPolicy() PolicyConfig {
	return PolicyConfig{
		Kind:                DefaultPolicyKind,
		Size:                DefaultPolicySize,
		Threshold:           DefaultPolicyThreshold,
		MinSize:             DefaultPolicyMinSize,
		SimilarityThreshold: DefaultSimilarityThreshold,
		Decay:               DefaultDecay,
		MinThreshold:        DefaultMinThreshold,
	}
}

// ApplyDefaults fills fields left empty after decoding.
// Numeric thresholds are not touched: zero is a meaningful value for them.
func ApplyDefaults(cfg *Config) {
	if cfg.Policy.Kind == "" {
		cfg.Policy.Kind = DefaultPolicyKind
	}
	if cfg.Composition.Mode == "" {
		cfg.Composition.Mode = DefaultCompositionMode
	}
	for i := range cfg.Composition.Levels {
		applyPolicyDefaults(&cfg.Composition.Levels[i])
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

// applyPolicyDefaults fills the sizing fields of a level entry, which is
// decoded from YAML without a pre-populated default
func applyPolicyDefaults(p *PolicyConfig) {
	if p.Kind == "" {
		p.Kind = DefaultPolicyKind
	}
	if p.Size == 0 {
		p.Size = DefaultPolicySize
	}
	if p.MinSize == 0 {
		p.MinSize = DefaultPolicyMinSize
	}
	if p.Decay == 0 {
		p.Decay = DefaultDecay
	}
}
