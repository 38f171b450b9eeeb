package config

// Config is the root gochunk configuration
type Config struct {
	Policy      PolicyConfig      `yaml:"policy" json:"policy"`
	Composition CompositionConfig `yaml:"composition" json:"composition"`
	Executor    ExecutorConfig    `yaml:"executor" json:"executor"`
	Log         LogConfig         `yaml:"log" json:"log"`
	Server      ServerConfig      `yaml:"server" json:"server"`
}

// PolicyConfig selects one boundary policy and its parameters.
// Fields that do not apply to Kind are ignored.
type PolicyConfig struct {
	// Kind is one of pattern, variance, entropy, multi_criteria,
	// dynamic_threshold, similarity
	Kind string `yaml:"kind" json:"kind"`

	// Size is the chunk length for the pattern policy (size mode)
	Size int `yaml:"size" json:"size"`

	// Threshold is the variance, entropy (bits) or similarity limit,
	// and the initial threshold of dynamic_threshold
	Threshold float64 `yaml:"threshold" json:"threshold"`

	// MinSize and SimilarityThreshold configure multi_criteria
	MinSize             int     `yaml:"min_size" json:"min_size"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" json:"similarity_threshold"`

	// Decay and MinThreshold configure dynamic_threshold
	Decay        float64 `yaml:"decay" json:"decay"`
	MinThreshold float64 `yaml:"min_threshold" json:"min_threshold"`
}

// CompositionConfig configures optional re-segmentation of chunks
type CompositionConfig struct {
	// Mode is one of none, recursive, hierarchical, conditional
	Mode         string `yaml:"mode" json:"mode"`
	MaxDepth     int    `yaml:"max_depth" json:"max_depth"`
	MinChunkSize int    `yaml:"min_chunk_size" json:"min_chunk_size"`

	// Levels lists one policy per depth for hierarchical mode
	Levels []PolicyConfig `yaml:"levels" json:"levels"`

	// Condition gates conditional mode
	Condition ConditionConfig `yaml:"condition" json:"condition"`
}

// ConditionConfig describes which chunks conditional composition splits.
// A zero field is not checked; a chunk qualifies when every set field holds.
type ConditionConfig struct {
	VarianceAbove float64 `yaml:"variance_above" json:"variance_above"`
	SizeAbove     int     `yaml:"size_above" json:"size_above"`
}

// ExecutorConfig configures the concurrent chunk executor
type ExecutorConfig struct {
	// Workers bounds concurrent tasks; 0 means runtime.NumCPU()
	Workers int `yaml:"workers" json:"workers"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Format string `yaml:"format" json:"format"` // json or text
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error, none
}

// ServerConfig configures the MCP server
type ServerConfig struct {
	// CacheSize is the number of results kept in the LRU; 0 disables caching
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// Composition modes
const (
	ModeNone         = "none"
	ModeRecursive    = "recursive"
	ModeHierarchical = "hierarchical"
	ModeConditional  = "conditional"
)

// PolicyKinds lists the accepted PolicyConfig.Kind values
var PolicyKinds = []string{
	"pattern",
	"variance",
	"entropy",
	"multi_criteria",
	"dynamic_threshold",
	"similarity",
}
