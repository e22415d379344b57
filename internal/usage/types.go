package usage

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/veralabs/method-critic/internal/parser"
)

// MethodIdentifier is the qualified name of a definition: the dotted module
// path of its file plus the bare function/method name. Two identifiers are
// equal iff both components match exactly.
type MethodIdentifier struct {
	ModuleName string
	MethodName string
}

func (id MethodIdentifier) String() string {
	if id.ModuleName == "" {
		return id.MethodName
	}
	return id.ModuleName + "." + id.MethodName
}

// MethodPointer ties a MethodIdentifier to the definition node discovered in
// the target file. Created once during the target phase, immutable afterward.
type MethodPointer struct {
	ID       MethodIdentifier
	Def      *tree_sitter.Node
	FilePath string
	IsMethod bool // definition sits inside a class body
}

// CallSiteInfo records one matched call expression together with its
// enclosing function. Call sites without an enclosing function (module-level
// calls) are never recorded.
type CallSiteInfo struct {
	Call      *tree_sitter.Node
	Enclosing *tree_sitter.Node
	FilePath  string

	// index owns the tree both nodes belong to; kept so snippet extraction
	// can recover exact source text after the repository walk finishes.
	index *parser.SourceIndex
}

// EnclosingName returns the name of the call site's enclosing function.
func (cs CallSiteInfo) EnclosingName() string {
	if cs.Enclosing == nil {
		return ""
	}
	nameNode := cs.Enclosing.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	return cs.index.SourceSegment(nameNode)
}

// EnclosingText returns the exact source text of the enclosing function.
func (cs CallSiteInfo) EnclosingText() string {
	return cs.index.SourceSegment(cs.Enclosing)
}

// Line returns the 1-based line of the call expression.
func (cs CallSiteInfo) Line() int {
	if cs.Call == nil {
		return 0
	}
	return int(cs.Call.StartPosition().Row) + 1
}
