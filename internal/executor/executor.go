package executor

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/gochunk/internal/logger"
	"github.com/dshills/gochunk/pkg/types"
)

// Config holds executor configuration
type Config struct {
	// Workers bounds the number of chunks processed at once.
	// Zero or negative means runtime.NumCPU().
	Workers int

	Logger  *zap.Logger
	Metrics *Metrics
}

// Executor runs per-chunk tasks on a bounded worker pool
type Executor struct {
	workers int
	logger  *zap.Logger
	metrics *Metrics
}

// New creates an executor. A nil config selects the defaults.
func New(cfg *Config) *Executor {
	if cfg == nil {
		cfg = &Config{}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNoop()
	}

	return &Executor{
		workers: workers,
		logger:  log,
		metrics: cfg.Metrics,
	}
}

// Workers returns the worker pool size
func (e *Executor) Workers() int {
	return e.workers
}

// task processes the chunk at index
type task func(ctx context.Context, index int) error

// run schedules one task per chunk and waits for all of them
func (e *Executor) run(ctx context.Context, op string, n int, fn task) error {
	if n == 0 {
		return nil
	}

	log := e.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("op", op),
	)
	start := time.Now()

	var (
		f       failure
		skipped atomic.Int64
	)

	g := new(errgroup.Group)
	g.SetLimit(e.workers)

	for i := 0; i < n; i++ {
		// nothing left to start once the run has stopped
		if f.stopped() || ctx.Err() != nil {
			rest := int64(n - i)
			skipped.Add(rest)
			e.metrics.skipped(rest)
			break
		}

		g.Go(func() error {
			if f.stopped() || ctx.Err() != nil {
				skipped.Add(1)
				e.metrics.skipped(1)
				return nil
			}

			done := e.metrics.start()
			err := call(ctx, fn, i)
			done(err)

			if err != nil && !f.record(i, err) {
				e.metrics.dropped()
				log.Debug("dropping concurrent chunk error",
					zap.Int("chunk", i),
					zap.Error(err),
				)
			}
			return nil
		})
	}

	// tasks never return errors to the group; failures live in f
	_ = g.Wait()

	index, dropped, err := f.result()
	log.Debug("chunk run finished",
		zap.Int("chunks", n),
		zap.Int("workers", e.workers),
		zap.Int64("skipped", skipped.Load()),
		zap.Int("dropped_errors", dropped),
		zap.Duration("duration", time.Since(start)),
	)

	if err != nil {
		return &types.OperationError{Index: index, Err: err}
	}
	if skipped.Load() > 0 {
		return ctx.Err()
	}
	return nil
}

// call runs fn, turning a panic into an error
func call(ctx context.Context, fn task, index int) (err error) {
	if r := panics.Try(func() { err = fn(ctx, index) }); r != nil {
		return r.AsError()
	}
	return err
}

func orDefault(e *Executor) *Executor {
	if e == nil {
		return New(nil)
	}
	return e
}
