package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/veralabs/method-critic/internal/lang"
)

// SourceIndex holds one parsed source file: its tree, original text, and a
// parent index built in a single pass over the tree. tree-sitter nodes are
// immutable handles, so parent links live in an explicit map keyed by node id
// rather than on the nodes themselves. The index is rebuilt per parse and
// discarded with the tree.
type SourceIndex struct {
	Path     string
	Source   []byte
	Language lang.Language

	tree    *tree_sitter.Tree
	parents map[uintptr]*tree_sitter.Node
}

// NewSourceIndex parses source text and annotates every node with its parent.
// Returns a *ParseError if the text is not syntactically valid.
func NewSourceIndex(l lang.Language, path string, source []byte) (*SourceIndex, error) {
	tree, err := Parse(l, source)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Path = path
		}
		return nil, err
	}

	idx := &SourceIndex{
		Path:     path,
		Source:   source,
		Language: l,
		tree:     tree,
		parents:  make(map[uintptr]*tree_sitter.Node),
	}
	idx.annotateParents(tree.RootNode(), nil)
	return idx, nil
}

// annotateParents fills the parent index with one entry per non-root node.
func (idx *SourceIndex) annotateParents(node, parent *tree_sitter.Node) {
	if parent != nil {
		idx.parents[node.Id()] = parent
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil {
			idx.annotateParents(child, node)
		}
	}
}

// Close releases the underlying tree. The index must not be used after Close.
func (idx *SourceIndex) Close() {
	if idx.tree != nil {
		idx.tree.Close()
		idx.tree = nil
	}
}

// Root returns the root node of the parsed tree.
func (idx *SourceIndex) Root() *tree_sitter.Node {
	return idx.tree.RootNode()
}

// Parent returns the immediate parent of a node, or nil for the root.
func (idx *SourceIndex) Parent(node *tree_sitter.Node) *tree_sitter.Node {
	if node == nil {
		return nil
	}
	return idx.parents[node.Id()]
}

// EnclosingFunction walks the parent chain upward from node and returns the
// nearest ancestor function definition, or nil if the node sits at module
// scope. A nil result is expected for module-level code, not an error.
func (idx *SourceIndex) EnclosingFunction(node *tree_sitter.Node) *tree_sitter.Node {
	spec := lang.ForLanguage(idx.Language)
	if spec == nil {
		return nil
	}
	for cur := idx.Parent(node); cur != nil; cur = idx.Parent(cur) {
		if kindIn(cur.Kind(), spec.FunctionNodeTypes) {
			return cur
		}
	}
	return nil
}

// InsideClass reports whether any ancestor of node is a class definition.
func (idx *SourceIndex) InsideClass(node *tree_sitter.Node) bool {
	spec := lang.ForLanguage(idx.Language)
	if spec == nil {
		return false
	}
	for cur := idx.Parent(node); cur != nil; cur = idx.Parent(cur) {
		if kindIn(cur.Kind(), spec.ClassNodeTypes) {
			return true
		}
	}
	return false
}

// SourceSegment extracts the exact original text spanning a node.
// Returns "" for nil nodes or spans outside the source, never panics.
func (idx *SourceIndex) SourceSegment(node *tree_sitter.Node) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start > end || end > uint(len(idx.Source)) {
		return ""
	}
	return string(idx.Source[start:end])
}

func kindIn(kind string, kinds []string) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
