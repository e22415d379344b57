package parser

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/veralabs/method-critic/internal/lang"
)

var (
	languagesOnce sync.Once
	languages     map[lang.Language]*tree_sitter.Language
	parserPools   map[lang.Language]*sync.Pool
)

func initLanguages() {
	languagesOnce.Do(func() {
		languages = map[lang.Language]*tree_sitter.Language{
			lang.Python: tree_sitter.NewLanguage(tree_sitter_python.Language()),
		}

		parserPools = make(map[lang.Language]*sync.Pool, len(languages))
		for l, tsLang := range languages {
			tsLang := tsLang
			parserPools[l] = &sync.Pool{
				New: func() any {
					p := tree_sitter.NewParser()
					if err := p.SetLanguage(tsLang); err != nil {
						panic(fmt.Sprintf("set language: %v", err))
					}
					return p
				},
			}
		}
	})
}

// ParseError reports a syntax error in a source file. tree-sitter produces a
// tree even for malformed input, so callers never see a parse failure unless
// the tree is checked for ERROR/MISSING nodes; Parse does that check and
// returns this type when the tree is broken.
type ParseError struct {
	Path string
	Row  uint
	Col  uint
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("syntax error at %d:%d", e.Row+1, e.Col+1)
	}
	return fmt.Sprintf("syntax error in %s at %d:%d", e.Path, e.Row+1, e.Col+1)
}

// Parse parses source code into a tree-sitter AST Tree.
// The caller must call tree.Close() when done.
// Parsers are pooled per language via sync.Pool to avoid per-file allocation.
// Returns a *ParseError if the source contains syntax errors.
func Parse(l lang.Language, source []byte) (*tree_sitter.Tree, error) {
	initLanguages()

	pool, ok := parserPools[l]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", l)
	}

	p, _ := pool.Get().(*tree_sitter.Parser)
	if p == nil {
		return nil, fmt.Errorf("failed to get parser for language %s", l)
	}
	tree := p.Parse(source, nil)
	pool.Put(p)

	if tree == nil {
		return nil, fmt.Errorf("parse failed for language %s", l)
	}

	root := tree.RootNode()
	if root.HasError() {
		perr := &ParseError{}
		if errNode := firstErrorNode(root); errNode != nil {
			pos := errNode.StartPosition()
			perr.Row = uint(pos.Row)
			perr.Col = uint(pos.Column)
		}
		tree.Close()
		return nil, perr
	}

	return tree, nil
}

// firstErrorNode locates the first ERROR or MISSING node in the tree.
func firstErrorNode(root *tree_sitter.Node) *tree_sitter.Node {
	var found *tree_sitter.Node
	Walk(root, func(node *tree_sitter.Node) bool {
		if found != nil {
			return false
		}
		if node.IsError() || node.IsMissing() {
			found = node
			return false
		}
		// Only descend into subtrees that actually contain the error.
		return node.HasError()
	})
	return found
}

// WalkFunc is called for each node during AST traversal.
// Return false to skip children.
type WalkFunc func(node *tree_sitter.Node) bool

// Walk traverses the AST in depth-first order.
func Walk(node *tree_sitter.Node, fn WalkFunc) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil {
			Walk(child, fn)
		}
	}
}

// NodeText returns the text content of a node.
func NodeText(node *tree_sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
