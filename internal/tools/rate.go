package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/veralabs/method-critic/internal/config"
	"github.com/veralabs/method-critic/internal/evaluate"
	"github.com/veralabs/method-critic/internal/rating"
	"github.com/veralabs/method-critic/internal/store"
)

func (s *Server) handleRateMethods(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	root := getStringArg(args, "root")
	targetFile := getStringArg(args, "target_file")
	if root == "" || targetFile == "" {
		return errResult("root and target_file are required"), nil
	}
	if err := checkPaths(root, targetFile); err != nil {
		return errResult(err.Error()), nil
	}

	cfg := config.Load(root)
	opts := cfg.ClientOptions()
	if model := getStringArg(args, "model"); model != "" {
		opts.Model = model
	}

	// A repo-local cache path overrides the shared database for this request.
	st := s.store
	if path := cfg.Cache.Path; path != "" {
		alt, err := store.OpenPath(path)
		if err != nil {
			return errResult(fmt.Sprintf("open cache: %v", err)), nil
		}
		defer alt.Close()
		st = alt
	}

	ev := evaluate.New(st, rating.NewClient(opts))
	results, err := ev.EvaluateFile(ctx, root, targetFile)
	if err != nil {
		return errResult(fmt.Sprintf("evaluate: %v", err)), nil
	}
	if len(results) == 0 {
		return textResult("no usages found; nothing to rate"), nil
	}

	return jsonResult(map[string]any{
		"model":   opts.Model,
		"results": results,
	}), nil
}
