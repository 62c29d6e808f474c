package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sunfmin/mcp-go-arith/pkg/logger"
	"github.com/sunfmin/mcp-go-arith/pkg/mcp"
)

// Version is set during build
var Version = "dev"

func main() {
	cleanup, err := logger.Setup(logger.ConfigFromEnv())
	if err != nil {
		// Keep serving with the stderr logger installed by init.
		logger.Warn("Failed to set up log file", "error", err)
	} else {
		defer cleanup()
	}

	logger.Info("Starting MCP Go Arithmetic", "version", Version)

	arithServer := mcp.NewMCPArithServer(Version)

	logger.Info("Starting MCP server...")
	if err := server.ServeStdio(arithServer.Server()); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
