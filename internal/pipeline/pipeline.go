package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dshills/gochunk/internal/compose"
	"github.com/dshills/gochunk/internal/config"
	"github.com/dshills/gochunk/internal/executor"
	"github.com/dshills/gochunk/internal/logger"
	"github.com/dshills/gochunk/internal/policy"
	"github.com/dshills/gochunk/pkg/types"
)

// Pipeline coordinates the chunking flow: segment -> compose -> summarize
type Pipeline struct {
	policy   policy.BoundaryPolicy[float64]
	composer compose.Composer[float64]
	exec     *executor.Executor
	logger   *zap.Logger
}

// Summary describes one output chunk
type Summary struct {
	Index    int     `json:"index"`
	Size     int     `json:"size"`
	Sum      float64 `json:"sum"`
	Mean     float64 `json:"mean"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Variance float64 `json:"variance"`
}

// Statistics contains statistics about one run
type Statistics struct {
	Elements int           `json:"elements"`
	Chunks   int           `json:"chunks"`
	Leaves   int           `json:"leaves"`
	MaxDepth int           `json:"max_depth"`
	Duration time.Duration `json:"duration"`
}

// Result is the output of Run. Forest is nil unless composition is enabled;
// Summaries describe the leaves in order.
type Result struct {
	Policy    string                     `json:"policy"`
	Mode      string                     `json:"mode"`
	Chunks    types.ChunkList[float64]   `json:"chunks"`
	Forest    types.ChunkForest[float64] `json:"forest,omitempty"`
	Summaries []Summary                  `json:"summaries"`
	Stats     Statistics                 `json:"stats"`
}

type options struct {
	logger   *zap.Logger
	metrics  *executor.Metrics
	executor *executor.Executor
}

// Option customizes a Pipeline
type Option func(*options)

// WithLogger sets the logger for the pipeline and its executor
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records executor metrics into m
func WithMetrics(m *executor.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithExecutor replaces the executor built from configuration
func WithExecutor(e *executor.Executor) Option {
	return func(o *options) { o.executor = e }
}

// New builds a pipeline from configuration. A nil config selects the defaults.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	o := options{logger: logger.NewNoop()}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := policy.FromConfig[float64](cfg.Policy)
	if err != nil {
		return nil, fmt.Errorf("failed to build policy: %w", err)
	}

	composer, err := newComposer(cfg.Composition, base)
	if err != nil {
		return nil, fmt.Errorf("failed to build composer: %w", err)
	}

	exec := o.executor
	if exec == nil {
		exec = executor.New(&executor.Config{
			Workers: cfg.Executor.Workers,
			Logger:  o.logger,
			Metrics: o.metrics,
		})
	}

	return &Pipeline{
		policy:   base,
		composer: composer,
		exec:     exec,
		logger:   o.logger,
	}, nil
}

// newComposer returns nil when composition is disabled
func newComposer(cfg config.CompositionConfig, base policy.Policy[float64]) (compose.Composer[float64], error) {
	switch cfg.Mode {
	case "", config.ModeNone:
		return nil, nil
	case config.ModeRecursive:
		return compose.NewRecursive(base, cfg.MaxDepth, cfg.MinChunkSize)
	case config.ModeHierarchical:
		levels, err := policy.FromConfigs[float64](cfg.Levels)
		if err != nil {
			return nil, err
		}
		return compose.NewHierarchical(levels, cfg.MinChunkSize)
	case config.ModeConditional:
		return compose.NewConditional(base, condition(cfg.Condition), cfg.MinChunkSize)
	default:
		return nil, fmt.Errorf("unknown composition mode: %s", cfg.Mode)
	}
}

// condition accepts a chunk when every configured check holds
func condition(c config.ConditionConfig) compose.Predicate[float64] {
	var preds []compose.Predicate[float64]
	if c.VarianceAbove > 0 {
		preds = append(preds, compose.VarianceAbove[float64](c.VarianceAbove))
	}
	if c.SizeAbove > 0 {
		preds = append(preds, compose.SizeAbove[float64](c.SizeAbove))
	}
	return compose.All(preds...)
}

// Policy returns the kind of the segmentation policy
func (p *Pipeline) Policy() policy.Kind {
	return p.policy.Kind()
}

// Mode returns the composition mode, or none
func (p *Pipeline) Mode() string {
	if p.composer == nil {
		return config.ModeNone
	}
	return string(p.composer.Kind())
}

// Segment splits seq with the configured policy
func (p *Pipeline) Segment(seq []float64) types.ChunkList[float64] {
	return p.policy.Apply(seq)
}

// Run segments seq, composes the chunks when configured, and summarizes
// every leaf
func (p *Pipeline) Run(ctx context.Context, seq []float64) (*Result, error) {
	start := time.Now()

	res := &Result{
		Policy: string(p.Policy()),
		Mode:   p.Mode(),
		Chunks: p.Segment(seq),
	}

	leaves := res.Chunks
	if p.composer != nil {
		nodes := p.composer.Tree(res.Chunks)
		res.Forest = compose.Forest(nodes)
		res.Stats.MaxDepth = compose.MaxDepth(nodes)
		leaves = res.Forest.Leaves()
	}

	summaries, err := executor.MapChunks(ctx, p.exec, leaves, summarize)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize chunks: %w", err)
	}
	for i := range summaries {
		summaries[i].Index = i
	}
	res.Summaries = summaries

	res.Stats.Elements = len(seq)
	res.Stats.Chunks = len(res.Chunks)
	res.Stats.Leaves = len(leaves)
	res.Stats.Duration = time.Since(start)

	p.logger.Info("pipeline run complete",
		zap.String("policy", res.Policy),
		zap.String("mode", res.Mode),
		zap.Int("elements", res.Stats.Elements),
		zap.Int("chunks", res.Stats.Chunks),
		zap.Int("leaves", res.Stats.Leaves),
		zap.Int("max_depth", res.Stats.MaxDepth),
		zap.Duration("duration", res.Stats.Duration),
	)

	return res, nil
}

func summarize(ctx context.Context, c types.Chunk[float64]) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	s := Summary{Size: len(c)}
	if len(c) == 0 {
		return s, nil
	}

	s.Sum = floats.Sum(c)
	s.Min = floats.Min(c)
	s.Max = floats.Max(c)
	s.Mean, s.Variance = stat.PopMeanVariance(c, nil)
	return s, nil
}
