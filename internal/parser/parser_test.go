package parser

import (
	"errors"
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/veralabs/method-critic/internal/lang"
)

func TestParsePython(t *testing.T) {
	source := []byte(`def hello():
    return "hello"

def add(a, b):
    return a + b
`)
	tree, err := Parse(lang.Python, source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	count := 0
	Walk(tree.RootNode(), func(node *tree_sitter.Node) bool {
		if node.Kind() == "function_definition" {
			count++
		}
		return true
	})
	if count != 2 {
		t.Errorf("found %d function definitions, want 2", count)
	}
}

func TestParseSyntaxError(t *testing.T) {
	source := []byte("def broken(:\n    pass\n")
	_, err := Parse(lang.Python, source)
	if err == nil {
		t.Fatal("expected error for broken source")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
}

func TestParseUnsupportedLanguage(t *testing.T) {
	if _, err := Parse(lang.Language("cobol"), []byte("")); err == nil {
		t.Fatal("expected error for unsupported language")
	}
}

func TestNodeText(t *testing.T) {
	source := []byte("def f():\n    pass\n")
	tree, err := Parse(lang.Python, source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	var name string
	Walk(tree.RootNode(), func(node *tree_sitter.Node) bool {
		if node.Kind() == "function_definition" {
			name = NodeText(node.ChildByFieldName("name"), source)
			return false
		}
		return true
	})
	if name != "f" {
		t.Errorf("name = %q, want f", name)
	}
}
