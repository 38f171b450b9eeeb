// Package mcp implements the Model Context Protocol (MCP) server for gochunk.
//
// The server exposes four tools to MCP clients:
//   - segment_sequence: split a numeric sequence into chunks and summarize them
//   - compose_sequence: segment, then re-split chunks into a nested structure
//   - reduce_sequence: segment, then fold the sequence chunk by chunk
//   - get_status: report configuration and cache statistics
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server is started with:
//
//	gochunk serve
//
// It listens on stdin and writes responses to stdout. Logs go to stderr.
//
// # Tool: segment_sequence
//
//	Request:
//	{
//	  "name": "segment_sequence",
//	  "arguments": {
//	    "values": [1.0, 1.1, 1.2, 5.0, 5.1, 5.2],
//	    "policy": "variance",
//	    "threshold": 1.0
//	  }
//	}
//
//	Response:
//	{
//	  "policy": "variance",
//	  "mode": "none",
//	  "chunks": [[1, 1.1, 1.2], [5, 5.1, 5.2]],
//	  "summaries": [{"index": 0, "size": 3, "sum": 3.3, ...}, ...],
//	  "statistics": {"elements": 6, "chunks": 2, "leaves": 2, ...}
//	}
//
// values may also be a string such as "1 1.1 1.2, 5 5.1 5.2".
//
// # Tool: compose_sequence
//
// Adds a "forest" field holding the leaf chunks of every segmented chunk:
//
//	{
//	  "name": "compose_sequence",
//	  "arguments": {
//	    "values": [...],
//	    "mode": "hierarchical",
//	    "levels": ["variance", "pattern"],
//	    "size": 2
//	  }
//	}
//
// # Tool: reduce_sequence
//
//	{"name": "reduce_sequence", "arguments": {"values": [1, 2, 3], "op": "sum"}}
//
// # Caching
//
// Responses are cached in an LRU keyed by the SHA-256 hash of the canonical
// request (tool, effective configuration, values). server.cache_size sets the
// capacity; 0 disables the cache.
//
// # Error Handling
//
// Errors are returned as MCPError values carrying JSON-RPC codes:
//
//	-32602  invalid parameters
//	-32603  internal error
//	-32001  policy or composition parameters rejected
//	-32002  sequence longer than MaxValues
//	-32003  values missing or empty
package mcp
