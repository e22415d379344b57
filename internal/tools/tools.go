package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/veralabs/method-critic/internal/store"
)

// Server wraps the MCP server with tool handlers.
type Server struct {
	mcp   *mcp.Server
	store *store.Store
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(s *store.Store) *Server {
	srv := &Server{
		store: s,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "method-critic",
				Version: "0.1.0",
			},
			nil,
		),
	}
	srv.registerTools()
	return srv
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) registerTools() {
	// 1. find_usages
	s.mcp.AddTool(&mcp.Tool{
		Name:        "find_usages",
		Description: "Find every function/method defined in a target Python file and locate call sites across the repository. Resolves imports and aliases, handles self.method() calls, and returns up to 10 sampled call sites per definition with file, line, and enclosing function.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"root": {
					"type": "string",
					"description": "Repository root directory (absolute path)"
				},
				"target_file": {
					"type": "string",
					"description": "Python file whose definitions should be analyzed. Must live under root."
				},
				"seed": {
					"type": "integer",
					"description": "Optional sampling seed for reproducible call-site selection"
				}
			},
			"required": ["root", "target_file"]
		}`),
	}, s.handleFindUsages)

	// 2. rate_methods
	s.mcp.AddTool(&mcp.Tool{
		Name:        "rate_methods",
		Description: "Resolve usages for a target Python file and rate each definition with the configured LLM endpoint against 16 code-quality criteria. Verdicts are cached by content, so unchanged code never re-hits the endpoint. Reads .methodcriticrc from the repository root for endpoint settings.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"root": {
					"type": "string",
					"description": "Repository root directory (absolute path)"
				},
				"target_file": {
					"type": "string",
					"description": "Python file whose definitions should be rated"
				},
				"model": {
					"type": "string",
					"description": "Override the configured model name"
				}
			},
			"required": ["root", "target_file"]
		}`),
	}, s.handleRateMethods)

	// 3. cache_stats
	s.mcp.AddTool(&mcp.Tool{
		Name:        "cache_stats",
		Description: "Report verdict-cache contents: project count, cached verdict count (total and per model), and tracked file hashes.",
		InputSchema: json.RawMessage(`{"type": "object"}`),
	}, s.handleCacheStats)

	// 4. clear_cache
	s.mcp.AddTool(&mcp.Tool{
		Name:        "clear_cache",
		Description: "Delete cached verdicts and repository state, either for one project or for everything. This action is irreversible.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project": {
					"type": "string",
					"description": "Project name to clear. Omit to clear the entire cache."
				}
			}
		}`),
	}, s.handleClearCache)
}

// jsonResult marshals data to JSON and returns as tool result.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// textResult returns a plain-text tool result.
func textResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
	}
}

// errResult returns a tool result indicating an error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// parseArgs unmarshals the raw JSON arguments into a map.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if req.Params.Arguments == nil || len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

// getStringArg extracts a string argument from parsed args.
func getStringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// getIntArg extracts an integer argument with a default value.
func getIntArg(args map[string]any, key string, defaultVal int) int {
	v, ok := args[key]
	if !ok {
		return defaultVal
	}
	f, ok := v.(float64) // JSON numbers decode as float64
	if !ok {
		return defaultVal
	}
	return int(f)
}
