package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/dshills/gochunk/internal/config"
	"github.com/dshills/gochunk/internal/pipeline"
)

// MCP error codes
const (
	ErrorCodeInvalidParams    = -32602 // Invalid method parameters
	ErrorCodeInternalError    = -32603 // Internal JSON-RPC error
	ErrorCodeInvalidConfig    = -32001 // Policy or composition parameters rejected
	ErrorCodeSequenceTooLarge = -32002 // More than MaxValues elements
	ErrorCodeEmptySequence    = -32003 // values parameter is empty
)

// callKey is the canonical form of a chunking call, used as the cache key
type callKey struct {
	Tool   string         `json:"tool"`
	Config *config.Config `json:"config"`
	Op     string         `json:"op,omitempty"`
	Values []float64      `json:"values"`
}

// handleSegmentSequence handles the segment_sequence tool invocation
func (s *Server) handleSegmentSequence(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := toolArgs(request)
	if err != nil {
		return nil, err
	}

	cfg := s.requestConfig()
	cfg.Composition.Mode = config.ModeNone
	if err := applyPolicyArgs(args, &cfg.Policy); err != nil {
		return nil, err
	}

	return s.run(ctx, "segment_sequence", args, cfg, "")
}

// handleComposeSequence handles the compose_sequence tool invocation
func (s *Server) handleComposeSequence(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := toolArgs(request)
	if err != nil {
		return nil, err
	}

	cfg := s.requestConfig()
	if err := applyPolicyArgs(args, &cfg.Policy); err != nil {
		return nil, err
	}

	comp := &cfg.Composition
	comp.Mode = getStringDefault(args, "mode", config.ModeRecursive)
	if comp.Mode == config.ModeNone {
		return nil, newMCPError(ErrorCodeInvalidParams, "mode must be recursive, hierarchical or conditional", map[string]interface{}{
			"param": "mode",
			"value": comp.Mode,
		})
	}
	comp.MaxDepth = getIntDefault(args, "max_depth", comp.MaxDepth)
	comp.MinChunkSize = getIntDefault(args, "min_chunk_size", comp.MinChunkSize)
	comp.Condition.VarianceAbove = getFloatDefault(args, "variance_above", comp.Condition.VarianceAbove)
	comp.Condition.SizeAbove = getIntDefault(args, "size_above", comp.Condition.SizeAbove)

	if raw, ok := args["levels"]; ok {
		kinds, ok := raw.([]interface{})
		if !ok {
			return nil, newMCPError(ErrorCodeInvalidParams, "levels must be an array of policy kinds", map[string]interface{}{
				"param": "levels",
			})
		}
		comp.Levels = make([]config.PolicyConfig, len(kinds))
		for i, k := range kinds {
			kind, ok := k.(string)
			if !ok {
				return nil, newMCPError(ErrorCodeInvalidParams, "levels must be an array of policy kinds", map[string]interface{}{
					"param": "levels",
					"index": i,
				})
			}
			// levels share the request's policy parameters
			level := cfg.Policy
			level.Kind = kind
			comp.Levels[i] = level
		}
	}

	return s.run(ctx, "compose_sequence", args, cfg, "")
}

// handleReduceSequence handles the reduce_sequence tool invocation
func (s *Server) handleReduceSequence(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := toolArgs(request)
	if err != nil {
		return nil, err
	}

	op, err := pipeline.ParseOp(getStringDefault(args, "op", string(pipeline.OpSum)))
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid op", map[string]interface{}{
			"param":   "op",
			"reason":  err.Error(),
			"allowed": pipeline.Ops,
		})
	}

	cfg := s.requestConfig()
	cfg.Composition.Mode = config.ModeNone
	if err := applyPolicyArgs(args, &cfg.Policy); err != nil {
		return nil, err
	}

	return s.run(ctx, "reduce_sequence", args, cfg, op)
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response := map[string]interface{}{
		"server": map[string]interface{}{
			"name":       ServerName,
			"version":    ServerVersion,
			"tool_calls": s.calls.Load(),
			"max_values": MaxValues,
		},
		"policy":      s.cfg.Policy,
		"composition": s.cfg.Composition,
		"executor": map[string]interface{}{
			"workers": s.cfg.Executor.Workers,
		},
		"cache": s.cache.stats(),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// run executes a chunking tool call, consulting the result cache first
func (s *Server) run(ctx context.Context, tool string, args map[string]interface{}, cfg *config.Config, op pipeline.Op) (*mcp.CallToolResult, error) {
	s.calls.Add(1)
	start := time.Now()

	values, err := getValues(args)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(cfg); err != nil {
		return nil, newMCPError(ErrorCodeInvalidConfig, "invalid chunking parameters", map[string]interface{}{
			"reason": err.Error(),
		})
	}

	key, err := requestKey(callKey{Tool: tool, Config: cfg, Op: string(op), Values: values})
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to hash request", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if text, ok := s.cache.get(key); ok {
		s.logger.Debug("tool call served from cache", zap.String("tool", tool))
		return mcp.NewToolResultText(text), nil
	}

	p, err := pipeline.New(cfg, pipeline.WithLogger(s.logger), pipeline.WithMetrics(s.metrics))
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidConfig, "invalid chunking parameters", map[string]interface{}{
			"reason": err.Error(),
		})
	}

	var response map[string]interface{}
	if op != "" {
		res, err := p.Reduce(ctx, values, op)
		if err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "reduce failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		response = map[string]interface{}{
			"policy": string(p.Policy()),
			"op":     string(res.Op),
			"value":  res.Value,
			"chunks": res.Chunks,
		}
	} else {
		res, err := p.Run(ctx, values)
		if err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "chunking failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		response = runResponse(res)
	}

	text := formatJSON(response)
	s.cache.set(key, text)

	s.logger.Info("tool call complete",
		zap.String("tool", tool),
		zap.Int("values", len(values)),
		zap.Duration("duration", time.Since(start)),
	)
	return mcp.NewToolResultText(text), nil
}

// runResponse formats a pipeline result
func runResponse(res *pipeline.Result) map[string]interface{} {
	response := map[string]interface{}{
		"policy":    res.Policy,
		"mode":      res.Mode,
		"chunks":    res.Chunks,
		"summaries": res.Summaries,
		"statistics": map[string]interface{}{
			"elements":    res.Stats.Elements,
			"chunks":      res.Stats.Chunks,
			"leaves":      res.Stats.Leaves,
			"max_depth":   res.Stats.MaxDepth,
			"duration_ms": res.Stats.Duration.Milliseconds(),
		},
	}
	if res.Forest != nil {
		response["forest"] = res.Forest
	}
	return response
}

// requestConfig returns a copy of the server configuration for one call
func (s *Server) requestConfig() *config.Config {
	cfg := *s.cfg
	cfg.Composition.Levels = append([]config.PolicyConfig(nil), s.cfg.Composition.Levels...)
	return &cfg
}

// applyPolicyArgs overrides policy fields present in args
func applyPolicyArgs(args map[string]interface{}, p *config.PolicyConfig) error {
	if raw, ok := args["policy"]; ok {
		kind, ok := raw.(string)
		if !ok || kind == "" {
			return newMCPError(ErrorCodeInvalidParams, "policy must be a policy kind", map[string]interface{}{
				"param":   "policy",
				"allowed": config.PolicyKinds,
			})
		}
		p.Kind = kind
	}

	p.Size = getIntDefault(args, "size", p.Size)
	p.Threshold = getFloatDefault(args, "threshold", p.Threshold)
	p.MinSize = getIntDefault(args, "min_size", p.MinSize)
	p.SimilarityThreshold = getFloatDefault(args, "similarity_threshold", p.SimilarityThreshold)
	p.Decay = getFloatDefault(args, "decay", p.Decay)
	p.MinThreshold = getFloatDefault(args, "min_threshold", p.MinThreshold)
	return nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// toolArgs returns the call arguments; a call without arguments gets an empty map
func toolArgs(request mcp.CallToolRequest) (map[string]interface{}, error) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	return args, nil
}

// getValues extracts the input sequence from an array of numbers or a string
func getValues(args map[string]interface{}) ([]float64, error) {
	var values []float64

	switch v := args["values"].(type) {
	case []interface{}:
		values = make([]float64, len(v))
		for i, item := range v {
			f, ok := item.(float64)
			if !ok {
				return nil, newMCPError(ErrorCodeInvalidParams, "values must contain only numbers", map[string]interface{}{
					"param": "values",
					"index": i,
				})
			}
			values[i] = f
		}
	case []float64:
		values = v
	case string:
		parsed, err := pipeline.ParseSequence(strings.NewReader(v))
		if err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid values", map[string]interface{}{
				"param":  "values",
				"reason": err.Error(),
			})
		}
		values = parsed
	case nil:
		return nil, newMCPError(ErrorCodeEmptySequence, "values parameter is required and cannot be empty", map[string]interface{}{
			"param":  "values",
			"reason": "missing",
		})
	default:
		return nil, newMCPError(ErrorCodeInvalidParams, "values must be an array of numbers or a string", map[string]interface{}{
			"param": "values",
		})
	}

	if len(values) == 0 {
		return nil, newMCPError(ErrorCodeEmptySequence, "values parameter is required and cannot be empty", map[string]interface{}{
			"param":  "values",
			"reason": "empty",
		})
	}
	if len(values) > MaxValues {
		return nil, newMCPError(ErrorCodeSequenceTooLarge, "too many values", map[string]interface{}{
			"param": "values",
			"count": len(values),
			"max":   MaxValues,
		})
	}
	return values, nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getFloatDefault extracts a number parameter with a default value
func getFloatDefault(args map[string]interface{}, key string, defaultValue float64) float64 {
	if val, ok := args[key].(float64); ok {
		return val
	}
	if val, ok := args[key].(int); ok {
		return float64(val)
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// IsMCPError reports whether err is an MCPError with the given code
func IsMCPError(err error, code int) bool {
	var mcpErr *MCPError
	return errors.As(err, &mcpErr) && mcpErr.Code == code
}
