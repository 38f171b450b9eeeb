package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/gochunk/internal/config"
	"github.com/dshills/gochunk/internal/executor"
)

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

type chunkResponse struct {
	Policy     string          `json:"policy"`
	Mode       string          `json:"mode"`
	Chunks     [][]float64     `json:"chunks"`
	Forest     [][][]float64   `json:"forest"`
	Summaries  []summaryResult `json:"summaries"`
	Statistics struct {
		Elements int `json:"elements"`
		Chunks   int `json:"chunks"`
		Leaves   int `json:"leaves"`
		MaxDepth int `json:"max_depth"`
	} `json:"statistics"`
}

type summaryResult struct {
	Index int     `json:"index"`
	Size  int     `json:"size"`
	Max   float64 `json:"max"`
}

func decode[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	return out
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	s, err := NewServer(cfg, WithMetrics(executor.NewMetrics(prometheus.NewRegistry())))
	require.NoError(t, err)
	return s
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t, nil)
	assert.NotNil(t, s.mcp)
	assert.NotNil(t, s.cache)

	cfg := config.Default()
	cfg.Server.CacheSize = 0
	s = newTestServer(t, cfg)
	assert.Nil(t, s.cache)

	bad := config.Default()
	bad.Policy.Kind = "psychic"
	_, err := NewServer(bad)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestSegmentSequence(t *testing.T) {
	s := newTestServer(t, nil)

	res, err := s.handleSegmentSequence(context.Background(), callRequest("segment_sequence", map[string]interface{}{
		"values": []interface{}{1.0, 1.1, 1.2, 5.0, 5.1, 5.2},
	}))
	require.NoError(t, err)

	out := decode[chunkResponse](t, res)
	assert.Equal(t, "variance", out.Policy)
	assert.Equal(t, config.ModeNone, out.Mode)
	assert.Equal(t, [][]float64{{1.0, 1.1, 1.2}, {5.0, 5.1, 5.2}}, out.Chunks)
	assert.Nil(t, out.Forest)
	require.Len(t, out.Summaries, 2)
	assert.Equal(t, 5.2, out.Summaries[1].Max)
	assert.Equal(t, 6, out.Statistics.Elements)
}

func TestSegmentSequence_StringValuesAndPolicyOverride(t *testing.T) {
	s := newTestServer(t, nil)

	res, err := s.handleSegmentSequence(context.Background(), callRequest("segment_sequence", map[string]interface{}{
		"values": "1 2 3, 4 5",
		"policy": "pattern",
		"size":   float64(2),
	}))
	require.NoError(t, err)

	out := decode[chunkResponse](t, res)
	assert.Equal(t, "pattern", out.Policy)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5}}, out.Chunks)
}

func TestSegmentSequence_InvalidArguments(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		args map[string]interface{}
		code int
	}{
		{"missing values", map[string]interface{}{}, ErrorCodeEmptySequence},
		{"empty values", map[string]interface{}{"values": []interface{}{}}, ErrorCodeEmptySequence},
		{"blank string", map[string]interface{}{"values": "  "}, ErrorCodeEmptySequence},
		{"non-number value", map[string]interface{}{"values": []interface{}{1.0, "two"}}, ErrorCodeInvalidParams},
		{"unparsable string", map[string]interface{}{"values": "1 two"}, ErrorCodeInvalidParams},
		{"wrong values type", map[string]interface{}{"values": true}, ErrorCodeInvalidParams},
		{"unknown policy", map[string]interface{}{"values": "1 2", "policy": "psychic"}, ErrorCodeInvalidConfig},
		{"non-string policy", map[string]interface{}{"values": "1 2", "policy": 3.0}, ErrorCodeInvalidParams},
		{"negative threshold", map[string]interface{}{"values": "1 2", "threshold": -1.0}, ErrorCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleSegmentSequence(context.Background(), callRequest("segment_sequence", tt.args))
			require.Error(t, err)
			assert.True(t, IsMCPError(err, tt.code), "got %v", err)
		})
	}

	var req mcp.CallToolRequest
	req.Params.Arguments = "not an object"
	_, err := s.handleSegmentSequence(context.Background(), req)
	assert.True(t, IsMCPError(err, ErrorCodeInvalidParams))
}

func TestComposeSequence_Hierarchical(t *testing.T) {
	s := newTestServer(t, nil)

	res, err := s.handleComposeSequence(context.Background(), callRequest("compose_sequence", map[string]interface{}{
		"values":         []interface{}{1.0, 1.1, 1.2, 5.0, 5.1, 5.2},
		"mode":           "hierarchical",
		"levels":         []interface{}{"pattern"},
		"size":           float64(2),
		"min_chunk_size": float64(1),
	}))
	require.NoError(t, err)

	out := decode[chunkResponse](t, res)
	assert.Equal(t, config.ModeHierarchical, out.Mode)
	assert.Equal(t, [][]float64{{1.0, 1.1, 1.2}, {5.0, 5.1, 5.2}}, out.Chunks)
	assert.Equal(t, [][][]float64{
		{{1.0, 1.1}, {1.2}},
		{{5.0, 5.1}, {5.2}},
	}, out.Forest)
	assert.Equal(t, 4, out.Statistics.Leaves)
	assert.Equal(t, 1, out.Statistics.MaxDepth)
	require.Len(t, out.Summaries, 4)
	assert.Equal(t, 3, out.Summaries[3].Index)
}

func TestComposeSequence_Conditional(t *testing.T) {
	s := newTestServer(t, nil)

	res, err := s.handleComposeSequence(context.Background(), callRequest("compose_sequence", map[string]interface{}{
		"values":     "1 1.1 1.2 5 5.1 5.2",
		"policy":     "pattern",
		"size":       float64(6),
		"mode":       "conditional",
		"size_above": float64(10),
	}))
	require.NoError(t, err)

	out := decode[chunkResponse](t, res)
	assert.Equal(t, [][][]float64{{{1.0, 1.1, 1.2, 5.0, 5.1, 5.2}}}, out.Forest)
	assert.Equal(t, 0, out.Statistics.MaxDepth)
}

func TestComposeSequence_InvalidArguments(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		args map[string]interface{}
		code int
	}{
		{"mode none", map[string]interface{}{"values": "1 2", "mode": "none"}, ErrorCodeInvalidParams},
		{"unknown mode", map[string]interface{}{"values": "1 2", "mode": "sideways"}, ErrorCodeInvalidConfig},
		{"levels not array", map[string]interface{}{"values": "1 2", "mode": "hierarchical", "levels": "pattern"}, ErrorCodeInvalidParams},
		{"level not string", map[string]interface{}{"values": "1 2", "mode": "hierarchical", "levels": []interface{}{1.0}}, ErrorCodeInvalidParams},
		{"unknown level", map[string]interface{}{"values": "1 2", "mode": "hierarchical", "levels": []interface{}{"psychic"}}, ErrorCodeInvalidConfig},
		{"negative depth", map[string]interface{}{"values": "1 2", "max_depth": -1.0}, ErrorCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleComposeSequence(context.Background(), callRequest("compose_sequence", tt.args))
			require.Error(t, err)
			assert.True(t, IsMCPError(err, tt.code), "got %v", err)
		})
	}
}

func TestReduceSequence(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		op   string
		want float64
	}{
		{"sum", 45},
		{"product", 362880},
		{"min", 1},
		{"max", 9},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			res, err := s.handleReduceSequence(context.Background(), callRequest("reduce_sequence", map[string]interface{}{
				"values": "1 2 3 4 5 6 7 8 9",
				"op":     tt.op,
			}))
			require.NoError(t, err)

			out := decode[struct {
				Op     string  `json:"op"`
				Value  float64 `json:"value"`
				Chunks int     `json:"chunks"`
			}](t, res)
			assert.Equal(t, tt.op, out.Op)
			assert.Equal(t, tt.want, out.Value)
			assert.Positive(t, out.Chunks)
		})
	}

	_, err := s.handleReduceSequence(context.Background(), callRequest("reduce_sequence", map[string]interface{}{
		"values": "1 2",
		"op":     "median",
	}))
	assert.True(t, IsMCPError(err, ErrorCodeInvalidParams))
}

func TestResultCache(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()
	args := map[string]interface{}{"values": []interface{}{3.0, 1.0, 4.0, 1.0, 5.0}}

	first, err := s.handleSegmentSequence(ctx, callRequest("segment_sequence", args))
	require.NoError(t, err)
	second, err := s.handleSegmentSequence(ctx, callRequest("segment_sequence", args))
	require.NoError(t, err)
	assert.Equal(t, resultText(t, first), resultText(t, second))

	// a different tool over the same values is a different entry
	_, err = s.handleReduceSequence(ctx, callRequest("reduce_sequence", args))
	require.NoError(t, err)

	stats := s.cache.stats()
	assert.True(t, stats.Enabled)
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
}

func TestResultCache_Disabled(t *testing.T) {
	cache, err := newResultCache(0)
	require.NoError(t, err)
	assert.Nil(t, cache)

	cache.set("k", "v")
	_, ok := cache.get("k")
	assert.False(t, ok)
	assert.Equal(t, cacheStats{}, cache.stats())
}

func TestRequestKey(t *testing.T) {
	a, err := requestKey(callKey{Tool: "segment_sequence", Config: config.Default(), Values: []float64{1, 2}})
	require.NoError(t, err)
	b, err := requestKey(callKey{Tool: "segment_sequence", Config: config.Default(), Values: []float64{1, 2}})
	require.NoError(t, err)
	c, err := requestKey(callKey{Tool: "segment_sequence", Config: config.Default(), Values: []float64{2, 1}})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestGetStatus(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	_, err := s.handleSegmentSequence(ctx, callRequest("segment_sequence", map[string]interface{}{"values": "1 2 3"}))
	require.NoError(t, err)

	res, err := s.handleGetStatus(ctx, callRequest("get_status", nil))
	require.NoError(t, err)

	out := decode[map[string]interface{}](t, res)
	server := out["server"].(map[string]interface{})
	assert.Equal(t, ServerName, server["name"])
	assert.Equal(t, 1.0, server["tool_calls"])
	assert.Equal(t, "variance", out["policy"].(map[string]interface{})["kind"])
	assert.Equal(t, true, out["cache"].(map[string]interface{})["enabled"])
}

func TestRequestConfig_IsolatedFromServer(t *testing.T) {
	cfg := config.Default()
	cfg.Composition.Levels = []config.PolicyConfig{config.DefaultPolicy()}
	s := newTestServer(t, cfg)

	c := s.requestConfig()
	c.Policy.Kind = "entropy"
	c.Composition.Levels[0].Kind = "pattern"

	assert.Equal(t, "variance", s.cfg.Policy.Kind)
	assert.Equal(t, "variance", s.cfg.Composition.Levels[0].Kind)
}
