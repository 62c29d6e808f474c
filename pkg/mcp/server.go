package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sunfmin/mcp-go-arith/pkg/arith"
	"github.com/sunfmin/mcp-go-arith/pkg/logger"
	"github.com/sunfmin/mcp-go-arith/pkg/types"
)

// ServerName is the name the server announces during MCP initialization
const ServerName = "Go Arithmetic MCP"

// MCPArithServer encapsulates the MCP server with arithmetic tools
type MCPArithServer struct {
	server  *server.MCPServer
	version string
	started time.Time

	mu     sync.Mutex
	counts types.OperationCounts
}

// NewMCPArithServer creates a new MCP server with the arithmetic tools registered
func NewMCPArithServer(version string) *MCPArithServer {
	s := &MCPArithServer{
		server:  server.NewMCPServer(ServerName, version),
		version: version,
		started: time.Now(),
	}

	s.registerTools()

	return s
}

// Server returns the underlying MCP server
func (s *MCPArithServer) Server() *server.MCPServer {
	return s.server
}

// registerTools registers all arithmetic tools
func (s *MCPArithServer) registerTools() {
	s.addPingTool()
	s.addStatusTool()
	s.addAddTool()
	s.addSubtractTool()
}

// addPingTool adds a simple ping tool for health checks
func (s *MCPArithServer) addPingTool() {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Simple ping tool to test connection"),
	)

	s.server.AddTool(pingTool, s.Ping)
}

// addStatusTool adds the status tool
func (s *MCPArithServer) addStatusTool() {
	statusTool := mcp.NewTool("status",
		mcp.WithDescription("Report server version, uptime and operation counters"),
	)

	s.server.AddTool(statusTool, s.Status)
}

// operandOptions describes the a/b/width arguments shared by add and subtract
func operandOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("a",
			mcp.Required(),
			mcp.Description("First whole number, as a decimal string (plain JSON numbers are accepted too)"),
		),
		mcp.WithString("b",
			mcp.Required(),
			mcp.Description("Second whole number, as a decimal string (plain JSON numbers are accepted too)"),
		),
		mcp.WithString("width",
			mcp.Description("Integer arithmetic to use: \"unbounded\" (default) or \"int64\" with wraparound"),
		),
	}
}

// addAddTool adds the add tool
func (s *MCPArithServer) addAddTool() {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Add two whole numbers"),
	}, operandOptions()...)

	s.server.AddTool(mcp.NewTool("add", opts...), s.Add)
}

// addSubtractTool adds the subtract tool
func (s *MCPArithServer) addSubtractTool() {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Subtract b from a. Fails when the result looks like integer wraparound on operands larger than 10^18"),
	}, operandOptions()...)

	s.server.AddTool(mcp.NewTool("subtract", opts...), s.Subtract)
}

// newErrorResult creates a tool result that represents an error
func newErrorResult(format string, args ...interface{}) *mcp.CallToolResult {
	result := mcp.NewToolResultText(fmt.Sprintf("Error: "+format, args...))
	result.IsError = true
	return result
}

// Ping handles the ping command
func (s *MCPArithServer) Ping(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received ping request")
	return mcp.FormatNumberResult(1.0), nil
}

// Status handles the status command
func (s *MCPArithServer) Status(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received status request")

	s.mu.Lock()
	counts := s.counts
	s.mu.Unlock()

	response := types.StatusResponse{
		Server: types.ServerInfo{
			Name:    ServerName,
			Version: s.version,
			Uptime:  time.Since(s.started).Round(time.Second).String(),
		},
		Operations: counts,
		Threshold:  arith.OverflowThreshold().String(),
	}

	return newToolResultJSON(response)
}

// Add handles the add command
func (s *MCPArithServer) Add(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received add request")
	s.record(func(c *types.OperationCounts) { c.Add++ })

	a, b, width, err := parseArguments(request)
	if err != nil {
		return s.failure("add", width, err)
	}

	var result *big.Int
	switch width {
	case types.WidthInt64:
		result = big.NewInt(arith.AddInt64(a.Int64(), b.Int64()))
	default:
		result = arith.Add(a, b)
	}

	return newToolResultJSON(types.NewResultResponse("add", width, a, b, result))
}

// Subtract handles the subtract command
func (s *MCPArithServer) Subtract(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received subtract request")
	s.record(func(c *types.OperationCounts) { c.Subtract++ })

	a, b, width, err := parseArguments(request)
	if err != nil {
		return s.failure("subtract", width, err)
	}

	var result *big.Int
	switch width {
	case types.WidthInt64:
		var diff int64
		diff, err = arith.SubtractInt64(a.Int64(), b.Int64())
		result = big.NewInt(diff)
	default:
		result, err = arith.Subtract(a, b)
	}
	if err != nil {
		logger.Warn("Subtraction rejected", "a", a.String(), "b", b.String(), "width", width, "error", err)
		return s.failure("subtract", width, err)
	}

	return newToolResultJSON(types.NewResultResponse("subtract", width, a, b, result))
}

// parseArguments validates the untyped tool arguments once, at the boundary.
// Operands must fit in an int64 when width is int64. Every failure here
// wraps arith.ErrType.
func parseArguments(request mcp.CallToolRequest) (*big.Int, *big.Int, types.Width, error) {
	width := types.WidthUnbounded
	if raw, ok := request.Params.Arguments["width"]; ok && raw != nil {
		w, ok := raw.(string)
		if !ok {
			return nil, nil, width, fmt.Errorf("width must be a string, got %T: %w", raw, arith.ErrType)
		}
		switch types.Width(w) {
		case "", types.WidthUnbounded:
		case types.WidthInt64:
			width = types.WidthInt64
		default:
			return nil, nil, width, fmt.Errorf("unknown width %q: %w", w, arith.ErrType)
		}
	}

	a, err := arith.ParseOperand(request.Params.Arguments["a"])
	if err != nil {
		return nil, nil, width, fmt.Errorf("a: %w", err)
	}
	b, err := arith.ParseOperand(request.Params.Arguments["b"])
	if err != nil {
		return nil, nil, width, fmt.Errorf("b: %w", err)
	}

	if width == types.WidthInt64 {
		if !a.IsInt64() {
			return nil, nil, width, fmt.Errorf("a: %s does not fit in int64: %w", a, arith.ErrType)
		}
		if !b.IsInt64() {
			return nil, nil, width, fmt.Errorf("b: %s does not fit in int64: %w", b, arith.ErrType)
		}
	}

	return a, b, width, nil
}

// failure converts an error into an error tool result carrying a JSON body.
// Arithmetic failures are reported to the caller, never as a protocol error.
func (s *MCPArithServer) failure(op string, width types.Width, err error) (*mcp.CallToolResult, error) {
	s.record(func(c *types.OperationCounts) { c.Failures++ })

	kind := string(arith.KindOf(err))
	if kind == "" && errors.Is(err, arith.ErrType) {
		kind = string(arith.KindType)
	}

	response := types.ResultResponse{
		Status: "error",
		Context: types.OperationContext{
			Timestamp: time.Now(),
			Operation: op,
			Width:     width,
		},
		Error:     err.Error(),
		ErrorKind: kind,
	}

	jsonBytes, jerr := json.Marshal(response)
	if jerr != nil {
		return newErrorResult("failed to serialize data: %v", jerr), nil
	}
	result := mcp.NewToolResultText(string(jsonBytes))
	result.IsError = true
	return result, nil
}

func (s *MCPArithServer) record(update func(*types.OperationCounts)) {
	s.mu.Lock()
	update(&s.counts)
	s.mu.Unlock()
}

func newToolResultJSON(data interface{}) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return newErrorResult("failed to serialize data: %v", err), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
