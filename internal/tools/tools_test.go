package tools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestCheckPaths(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "mod.py")
	if err := os.WriteFile(target, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := checkPaths(root, target); err != nil {
		t.Errorf("valid paths rejected: %v", err)
	}
	if err := checkPaths(filepath.Join(root, "gone"), target); err == nil {
		t.Error("missing root accepted")
	}
	if err := checkPaths(target, target); err == nil {
		t.Error("file passed as root accepted")
	}
	if err := checkPaths(root, filepath.Join(root, "gone.py")); err == nil {
		t.Error("missing target accepted")
	}

	notPy := filepath.Join(root, "mod.txt")
	if err := os.WriteFile(notPy, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := checkPaths(root, notPy); err == nil || !strings.Contains(err.Error(), "not a Python file") {
		t.Errorf("non-.py target accepted: %v", err)
	}
}

func TestArgHelpers(t *testing.T) {
	args := map[string]any{
		"root": "/tmp/repo",
		"seed": float64(42),
		"bad":  []any{},
	}
	if got := getStringArg(args, "root"); got != "/tmp/repo" {
		t.Errorf("getStringArg = %q", got)
	}
	if got := getStringArg(args, "missing"); got != "" {
		t.Errorf("missing key = %q, want empty", got)
	}
	if got := getStringArg(args, "seed"); got != "" {
		t.Errorf("wrong type = %q, want empty", got)
	}
	if got := getIntArg(args, "seed", -1); got != 42 {
		t.Errorf("getIntArg = %d, want 42", got)
	}
	if got := getIntArg(args, "missing", -1); got != -1 {
		t.Errorf("missing int = %d, want default", got)
	}
	if got := getIntArg(args, "bad", -1); got != -1 {
		t.Errorf("wrong-typed int = %d, want default", got)
	}
}

func TestResultHelpers(t *testing.T) {
	res := jsonResult(map[string]int{"n": 3})
	if res.IsError {
		t.Error("jsonResult must not be an error")
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok || !strings.Contains(tc.Text, `"n": 3`) {
		t.Errorf("content = %v", res.Content[0])
	}

	if e := errResult("boom"); !e.IsError {
		t.Error("errResult must set IsError")
	}
	if tr := textResult("hi"); tr.IsError {
		t.Error("textResult must not set IsError")
	}
}
