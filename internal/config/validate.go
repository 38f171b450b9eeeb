package config

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/dshills/gochunk/internal/logger"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "policy.kind").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the structure of cfg and returns a ValidationError listing
// every problem, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validatePolicy("policy", &cfg.Policy)...)
	errs = append(errs, validateComposition(&cfg.Composition)...)

	if cfg.Executor.Workers < 0 {
		errs = append(errs, FieldError{Field: "executor.workers", Message: "must not be negative"})
	}

	errs = append(errs, validateLog(&cfg.Log)...)

	if cfg.Server.CacheSize < 0 {
		errs = append(errs, FieldError{Field: "server.cache_size", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validatePolicy(field string, p *PolicyConfig) []FieldError {
	var errs []FieldError

	if !slices.Contains(PolicyKinds, p.Kind) {
		errs = append(errs, FieldError{
			Field:   field + ".kind",
			Message: fmt.Sprintf("unknown policy %q (expected one of %s)", p.Kind, strings.Join(PolicyKinds, ", ")),
		})
		return errs
	}

	switch p.Kind {
	case "pattern":
		if p.Size <= 0 {
			errs = append(errs, FieldError{Field: field + ".size", Message: "must be positive"})
		}
	case "variance", "entropy":
		if math.IsNaN(p.Threshold) || p.Threshold < 0 {
			errs = append(errs, FieldError{Field: field + ".threshold", Message: "must not be negative"})
		}
	case "multi_criteria":
		if p.MinSize <= 0 {
			errs = append(errs, FieldError{Field: field + ".min_size", Message: "must be positive"})
		}
		if math.IsNaN(p.SimilarityThreshold) || p.SimilarityThreshold < 0 {
			errs = append(errs, FieldError{Field: field + ".similarity_threshold", Message: "must not be negative"})
		}
	case "dynamic_threshold":
		if math.IsNaN(p.Threshold) || p.Threshold <= 0 {
			errs = append(errs, FieldError{Field: field + ".threshold", Message: "must be positive"})
		}
		if math.IsNaN(p.Decay) || p.Decay <= 0 || p.Decay > 1 {
			errs = append(errs, FieldError{Field: field + ".decay", Message: "must be in (0, 1]"})
		}
		if math.IsNaN(p.MinThreshold) || p.MinThreshold < 0 || p.MinThreshold > p.Threshold {
			errs = append(errs, FieldError{Field: field + ".min_threshold", Message: "must be in [0, threshold]"})
		}
	case "similarity":
		if math.IsNaN(p.Threshold) || p.Threshold <= 0 || p.Threshold > 1 {
			errs = append(errs, FieldError{Field: field + ".threshold", Message: "must be in (0, 1]"})
		}
	}

	return errs
}

func validateComposition(c *CompositionConfig) []FieldError {
	var errs []FieldError

	switch c.Mode {
	case ModeNone, ModeRecursive, ModeConditional:
	case ModeHierarchical:
		for i := range c.Levels {
			errs = append(errs, validatePolicy(fmt.Sprintf("composition.levels[%d]", i), &c.Levels[i])...)
		}
	default:
		errs = append(errs, FieldError{
			Field:   "composition.mode",
			Message: fmt.Sprintf("unknown mode %q (expected none, recursive, hierarchical or conditional)", c.Mode),
		})
	}

	if c.MaxDepth < 0 {
		errs = append(errs, FieldError{Field: "composition.max_depth", Message: "must not be negative"})
	}
	if c.MinChunkSize < 0 {
		errs = append(errs, FieldError{Field: "composition.min_chunk_size", Message: "must not be negative"})
	}

	return errs
}

func validateLog(l *LogConfig) []FieldError {
	var errs []FieldError

	if !slices.Contains(logger.Formats, l.Format) {
		errs = append(errs, FieldError{
			Field:   "log.format",
			Message: fmt.Sprintf("unknown format %q (expected one of %s)", l.Format, strings.Join(logger.Formats, ", ")),
		})
	}

	if !slices.Contains(logger.Levels, l.Level) {
		errs = append(errs, FieldError{
			Field:   "log.level",
			Message: fmt.Sprintf("unknown level %q (expected one of %s)", l.Level, strings.Join(logger.Levels, ", ")),
		})
	}

	return errs
}
