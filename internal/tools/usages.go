package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/veralabs/method-critic/internal/usage"
)

// usageEntry is the wire shape for one definition's sampled call sites.
type usageEntry struct {
	Module    string     `json:"module"`
	Method    string     `json:"method"`
	FilePath  string     `json:"file_path"`
	IsMethod  bool       `json:"is_method"`
	CallSites []callSite `json:"call_sites"`
}

type callSite struct {
	FilePath          string `json:"file_path"`
	Line              int    `json:"line"`
	EnclosingFunction string `json:"enclosing_function"`
}

func (s *Server) handleFindUsages(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	resolver, err := usage.NewResolver(root, targetFile)
	if err != nil {
		return errResult(err.Error()), nil
	}
	defer resolver.Close()

	if seed := getIntArg(args, "seed", -1); seed >= 0 {
		resolver.SetSampler(usage.NewSeededSampler(uint64(seed)))
	}

	// A broken target file is a hard error: nothing to search for.
	if err := resolver.ParseTargetFile(); err != nil {
		return errResult(fmt.Sprintf("target file: %v", err)), nil
	}
	if err := resolver.ParseRepoFiles(ctx); err != nil {
		return errResult(fmt.Sprintf("repository walk: %v", err)), nil
	}

	usages := resolver.Usages()
	if len(usages) == 0 {
		return textResult("no usages found"), nil
	}

	entries := make([]usageEntry, 0, len(usages))
	for ptr, sites := range usages {
		entry := usageEntry{
			Module:    ptr.ID.ModuleName,
			Method:    ptr.ID.MethodName,
			FilePath:  ptr.FilePath,
			IsMethod:  ptr.IsMethod,
			CallSites: make([]callSite, 0, len(sites)),
		}
		for _, cs := range sites {
			entry.CallSites = append(entry.CallSites, callSite{
				FilePath:          cs.FilePath,
				Line:              cs.Line(),
				EnclosingFunction: cs.EnclosingName(),
			})
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Module != entries[j].Module {
			return entries[i].Module < entries[j].Module
		}
		return entries[i].Method < entries[j].Method
	})

	return jsonResult(map[string]any{
		"target_module": resolver.TargetModule(),
		"definitions":   entries,
	}), nil
}

// checkPaths validates the request's filesystem inputs up front so tool
// errors name the actual problem instead of a downstream read failure.
func checkPaths(root, targetFile string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root is not a directory: %s", root)
	}
	if _, err := os.Stat(targetFile); err != nil {
		return fmt.Errorf("target_file: %w", err)
	}
	if filepath.Ext(targetFile) != ".py" {
		return fmt.Errorf("target_file is not a Python file: %s", targetFile)
	}
	return nil
}
