package usage

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/veralabs/method-critic/internal/parser"
)

// CallTarget is the closed set of call-expression target shapes the resolver
// understands. Shapes outside the set (calls on call results, subscripts,
// lambdas) carry no resolvable identifier.
type CallTarget interface {
	isCallTarget()
}

// SimpleName is a bare call: f(...).
type SimpleName struct {
	Name string
}

// AttributeChain is a dotted call: a.b.c(...). Segments holds every name in
// the chain including the base, in source order.
type AttributeChain struct {
	Segments []string
}

// OtherTarget is any target shape the resolver does not handle.
type OtherTarget struct{}

func (SimpleName) isCallTarget()     {}
func (AttributeChain) isCallTarget() {}
func (OtherTarget) isCallTarget()    {}

// callTargetOf classifies the function child of a call expression.
//
// Python call AST structure:
//
//	call
//	  function: identifier            -- f(...)
//	  function: attribute             -- a.b.f(...)
//	    object: identifier|attribute|...
//	    attribute: identifier
func callTargetOf(call *tree_sitter.Node, source []byte) CallTarget {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return OtherTarget{}
	}

	switch fn.Kind() {
	case "identifier":
		return SimpleName{Name: parser.NodeText(fn, source)}

	case "attribute":
		var segments []string
		cur := fn
		for cur != nil && cur.Kind() == "attribute" {
			attr := cur.ChildByFieldName("attribute")
			if attr == nil {
				return OtherTarget{}
			}
			segments = append([]string{parser.NodeText(attr, source)}, segments...)
			cur = cur.ChildByFieldName("object")
		}
		if cur == nil || cur.Kind() != "identifier" {
			// Chain roots in something other than a plain name,
			// e.g. make_thing().run(). Not resolvable syntactically.
			return OtherTarget{}
		}
		segments = append([]string{parser.NodeText(cur, source)}, segments...)
		return AttributeChain{Segments: segments}
	}

	return OtherTarget{}
}
