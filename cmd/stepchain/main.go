package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ChamsBouzaiene/stepchain/internal/engine"
	"github.com/ChamsBouzaiene/stepchain/internal/server"
)

func main() {
	// Load .env file if it exists; real env vars take precedence.
	_ = godotenv.Load()

	cfg := configFromEnv()

	// The engine is tool-agnostic: deployments embedding this binary
	// register their domain tools on the registry before serving. An empty
	// registry still serves the full step loop; tool_call steps come back
	// as failure results naming the missing tool.
	registry := engine.Registry{}

	s, _ := server.New(cfg, registry.Execute)
	if err := mcpserver.ServeStdio(s); err != nil {
		// stdout carries the protocol; diagnostics go to stderr only.
		fmt.Fprintf(os.Stderr, "FATAL: server error: %v\n", err)
		os.Exit(1)
	}
}
