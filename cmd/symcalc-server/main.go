// cmd/symcalc-server/main.go - Standalone HTTP tool server for symcalc
//
// Exposes symcalc tools as an HTTP endpoint for AI agent frameworks.
//
// Usage:
//
//	go run ./cmd/symcalc-server -port 8080 -parallelism 64 -log-level debug
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/njchilds90/symcalc"
	"github.com/njchilds90/symcalc/mcp"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	parallelism := flag.Int("parallelism", symcalc.DefaultParallelism(), "Child count above which sums and products are evaluated in parallel")
	workers := flag.Int("workers", symcalc.DefaultParallelism(), "Goroutines per parallel step")
	logLevel := flag.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "symcalc",
		Level:  hclog.LevelFromString(*logLevel),
		Output: os.Stderr,
	})
	if *parallelism < 0 || *workers < 1 {
		logger.Error("invalid flags", "parallelism", *parallelism, "workers", *workers)
		os.Exit(2)
	}

	eng := symcalc.NewEngine(
		symcalc.WithParallelism(*parallelism),
		symcalc.WithWorkers(*workers),
		symcalc.WithLogger(logger),
	)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("symcalc tool server listening", "addr", addr, "parallelism", eng.Threshold(), "workers", eng.Workers())
	logger.Info("  POST /tool   - execute a tool call")
	logger.Info("  GET  /schema - tool schema for agent registration")
	logger.Info("  GET  /health - health check")

	srv := &http.Server{
		Addr:              addr,
		Handler:           mcp.NewServer(eng).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
