package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleCacheStats(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.store.Stats()
	if err != nil {
		return errResult(fmt.Sprintf("cache stats: %v", err)), nil
	}
	return jsonResult(stats), nil
}

func (s *Server) handleClearCache(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	project := getStringArg(args, "project")
	if project != "" {
		if err := s.store.ClearProject(project); err != nil {
			return errResult(fmt.Sprintf("clear project: %v", err)), nil
		}
		return textResult(fmt.Sprintf("cleared cache for project %q", project)), nil
	}

	if err := s.store.ClearAll(); err != nil {
		return errResult(fmt.Sprintf("clear cache: %v", err)), nil
	}
	return textResult("cleared entire cache"), nil
}
