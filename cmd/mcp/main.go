// ABOUTME: Entry point for the Blockpress MCP server
// ABOUTME: Serves the document and collection tools over stdio or streamable HTTP

package main

import (
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	logruslogger "blockpress-api/infrastructure/logger/logrus"
	blockpressmcp "blockpress-api/mcp"
	"blockpress-api/pkg/bootstrap"
	"blockpress-api/pkg/config"
)

func main() {
	httpAddr := flag.String("http", "", "HTTP server address (e.g., ':8080'); stdio when empty")
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// stdout carries the protocol in stdio mode
	logger, err := logruslogger.NewWithOutput(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	components := bootstrap.Build(cfg, logger)
	defer components.Close()

	s := blockpressmcp.NewServer(components.Documents, components.Collections)

	if *httpAddr != "" {
		logger.Info("Starting MCP server", map[string]interface{}{"address": *httpAddr})
		if err := server.NewStreamableHTTPServer(s).Start(*httpAddr); err != nil {
			logger.Error("MCP server error", map[string]interface{}{"error": err.Error()})
		}
		return
	}

	logger.Info("Starting MCP server in stdio mode", nil)
	if err := server.ServeStdio(s); err != nil {
		logger.Error("MCP server error", map[string]interface{}{"error": err.Error()})
	}
}
