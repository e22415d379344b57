package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/veralabs/method-critic/internal/store"
	"github.com/veralabs/method-critic/internal/tools"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println("method-critic", version)
		os.Exit(0)
	}

	// stdout carries the MCP transport; all logging goes to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	s, err := store.Open("method-critic")
	if err != nil {
		log.Fatalf("store open err=%v", err)
	}

	srv := tools.NewServer(s)

	runErr := srv.MCPServer().Run(context.Background(), &mcp.StdioTransport{})
	s.Close()
	if runErr != nil {
		log.Fatalf("server err=%v", runErr)
	}
}
