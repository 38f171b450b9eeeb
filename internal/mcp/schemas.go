package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/gochunk/internal/config"
	"github.com/dshills/gochunk/internal/pipeline"
)

// valuesProperty describes the input sequence accepted by every chunking tool
func valuesProperty() map[string]interface{} {
	return map[string]interface{}{
		"description": "Sequence to chunk: an array of numbers, or a string of numbers separated by whitespace or commas",
		"oneOf": []interface{}{
			map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "number"},
			},
			map[string]interface{}{"type": "string"},
		},
	}
}

// policyProperties describes the boundary policy overrides shared by the tools
func policyProperties() map[string]interface{} {
	return map[string]interface{}{
		"policy": map[string]interface{}{
			"type":        "string",
			"description": "Boundary policy used to segment the sequence",
			"enum":        config.PolicyKinds,
		},
		"size": map[string]interface{}{
			"type":        "integer",
			"description": "Chunk length for the pattern policy",
			"minimum":     1,
		},
		"threshold": map[string]interface{}{
			"type":        "number",
			"description": "Variance, entropy (bits) or similarity limit; initial threshold for dynamic_threshold",
			"minimum":     0.0,
		},
		"min_size": map[string]interface{}{
			"type":        "integer",
			"description": "Size trigger for multi_criteria",
			"minimum":     1,
		},
		"similarity_threshold": map[string]interface{}{
			"type":        "number",
			"description": "Neighbor difference trigger for multi_criteria",
			"minimum":     0.0,
		},
		"decay": map[string]interface{}{
			"type":        "number",
			"description": "Per-chunk threshold decay for dynamic_threshold (0, 1]",
		},
		"min_threshold": map[string]interface{}{
			"type":        "number",
			"description": "Lower clamp of the dynamic_threshold threshold",
			"minimum":     0.0,
		},
	}
}

func withValues(props map[string]interface{}) map[string]interface{} {
	props["values"] = valuesProperty()
	return props
}

// segmentSequenceTool returns the tool definition for segment_sequence
func segmentSequenceTool() mcp.Tool {
	return mcp.Tool{
		Name:        "segment_sequence",
		Description: "Split a numeric sequence into contiguous chunks with a boundary policy and summarize each chunk",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: withValues(policyProperties()),
			Required:   []string{"values"},
		},
	}
}

// composeSequenceTool returns the tool definition for compose_sequence
func composeSequenceTool() mcp.Tool {
	props := withValues(policyProperties())
	props["mode"] = map[string]interface{}{
		"type":        "string",
		"description": "Composition mode: recursive (same policy per level), hierarchical (one policy per level) or conditional (split chunks matching a condition once)",
		"enum":        []string{config.ModeRecursive, config.ModeHierarchical, config.ModeConditional},
		"default":     config.ModeRecursive,
	}
	props["max_depth"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum number of policy applications along a branch (recursive mode)",
		"minimum":     0,
	}
	props["min_chunk_size"] = map[string]interface{}{
		"type":        "integer",
		"description": "Chunks at or below this size are never split",
		"minimum":     0,
	}
	props["levels"] = map[string]interface{}{
		"type":        "array",
		"description": "Policy kinds applied at each depth (hierarchical mode)",
		"items": map[string]interface{}{
			"type": "string",
			"enum": config.PolicyKinds,
		},
	}
	props["variance_above"] = map[string]interface{}{
		"type":        "number",
		"description": "Conditional mode: split chunks whose variance exceeds this value",
		"minimum":     0.0,
	}
	props["size_above"] = map[string]interface{}{
		"type":        "integer",
		"description": "Conditional mode: split chunks longer than this",
		"minimum":     0,
	}

	return mcp.Tool{
		Name:        "compose_sequence",
		Description: "Segment a numeric sequence and re-split the chunks into a nested structure",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"values"},
		},
	}
}

// reduceSequenceTool returns the tool definition for reduce_sequence
func reduceSequenceTool() mcp.Tool {
	ops := make([]string, len(pipeline.Ops))
	for i, op := range pipeline.Ops {
		ops[i] = string(op)
	}

	props := withValues(policyProperties())
	props["op"] = map[string]interface{}{
		"type":        "string",
		"description": "Reduction applied across the chunks",
		"enum":        ops,
		"default":     string(pipeline.OpSum),
	}

	return mcp.Tool{
		Name:        "reduce_sequence",
		Description: "Segment a numeric sequence and fold it concurrently chunk by chunk",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"values"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report the server configuration and result cache statistics",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
