package usage

import (
	"reflect"
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/veralabs/method-critic/internal/lang"
	"github.com/veralabs/method-critic/internal/parser"
)

func TestCallTargetOf(t *testing.T) {
	source := `f(1)
a.b.c(2)
(x + y).m()
items[0]()
`
	idx, err := parser.NewSourceIndex(lang.Python, "x.py", []byte(source))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer idx.Close()

	var targets []CallTarget
	parser.Walk(idx.Root(), func(node *tree_sitter.Node) bool {
		if node.Kind() == "call" {
			targets = append(targets, callTargetOf(node, idx.Source))
			return false
		}
		return true
	})
	if len(targets) != 4 {
		t.Fatalf("found %d calls, want 4", len(targets))
	}

	want := []CallTarget{
		SimpleName{Name: "f"},
		AttributeChain{Segments: []string{"a", "b", "c"}},
		OtherTarget{},
		OtherTarget{},
	}
	for i, w := range want {
		if !reflect.DeepEqual(targets[i], w) {
			t.Errorf("call %d: got %#v, want %#v", i, targets[i], w)
		}
	}
}
