package mcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dshills/gochunk/internal/config"
	"github.com/dshills/gochunk/internal/executor"
	"github.com/dshills/gochunk/internal/logger"
	"github.com/dshills/gochunk/internal/pipeline"
)

const (
	// ServerName is the MCP server name
	ServerName = "gochunk"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// MaxValues bounds the length of a sequence accepted by one tool call
	MaxValues = 1_000_000
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp     *server.MCPServer
	cfg     *config.Config
	logger  *zap.Logger
	metrics *executor.Metrics
	cache   *resultCache

	calls atomic.Int64
}

// Option customizes a Server
type Option func(*Server)

// WithLogger sets the server logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics records executor metrics for every tool call into m
func WithMetrics(m *executor.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// NewServer creates a new MCP server instance. cfg provides the defaults that
// tool arguments override; a nil cfg selects config.Default().
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Build once up front so a bad default fails here rather than per call
	if _, err := pipeline.New(cfg); err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	cache, err := newResultCache(cfg.Server.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	s := &Server{
		mcp:    server.NewMCPServer(ServerName, ServerVersion),
		cfg:    cfg,
		logger: logger.NewNoop(),
		cache:  cache,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until ctx is cancelled
// or the input is closed
func (s *Server) Serve(ctx context.Context) error {
	return s.Listen(ctx, os.Stdin, os.Stdout)
}

// Listen serves MCP requests read from in, writing responses to out
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("MCP server listening",
		zap.String("name", ServerName),
		zap.String("version", ServerVersion),
	)
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(segmentSequenceTool(), s.handleSegmentSequence)
	s.mcp.AddTool(composeSequenceTool(), s.handleComposeSequence)
	s.mcp.AddTool(reduceSequenceTool(), s.handleReduceSequence)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
	return nil
}
