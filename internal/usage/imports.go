package usage

import (
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/veralabs/method-critic/internal/fqn"
	"github.com/veralabs/method-critic/internal/lang"
	"github.com/veralabs/method-critic/internal/parser"
)

// ImportMap maps a locally-bound name (as introduced by an import statement
// or its alias) to the dotted module path it refers to. Scoped to one file's
// parse pass and rebuilt from scratch for every file visited.
type ImportMap map[string]string

// buildImportMap extracts the import map for a Python source file.
//
// Python import AST structures:
//
//	import_statement:
//	  dotted_name children (e.g., "import foo.bar")
//	  aliased_import with alias (e.g., "import foo as f")
//
//	import_from_statement:
//	  module_name: dotted_name or relative_import
//	  name: dotted_name (what's being imported)
//	  Multiple names possible (e.g., "from foo import bar, baz")
func buildImportMap(idx *parser.SourceIndex, relPath string) ImportMap {
	imports := make(ImportMap)

	spec := lang.ForLanguage(idx.Language)
	importKinds := kindSet(spec.ImportNodeTypes)
	fromKinds := kindSet(spec.ImportFromTypes)

	parser.Walk(idx.Root(), func(node *tree_sitter.Node) bool {
		switch {
		case importKinds[node.Kind()]:
			processImport(node, idx.Source, imports)
			return false
		case fromKinds[node.Kind()]:
			processFromImport(node, idx.Source, relPath, imports)
			return false
		}
		return true
	})

	return imports
}

// processImport handles "import X" and "import X as Y" statements.
// An unaliased "import pkg.mod" binds the first segment, so the map entry is
// pkg -> pkg.mod; an alias binds the alias name instead.
func processImport(node *tree_sitter.Node, source []byte, imports ImportMap) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}

		switch child.Kind() {
		case "dotted_name":
			name := parser.NodeText(child, source)
			imports[firstDotSegment(name)] = name

		case "aliased_import":
			nameNode := child.ChildByFieldName("name")
			aliasNode := child.ChildByFieldName("alias")
			if nameNode == nil {
				continue
			}
			name := parser.NodeText(nameNode, source)
			localName := firstDotSegment(name)
			if aliasNode != nil {
				localName = parser.NodeText(aliasNode, source)
			}
			imports[localName] = name
		}
	}
}

// processFromImport handles "from X import Y [as Z]" statements. Each
// imported name is bound to the source module path X, so a bare call to the
// imported name resolves back to the module it was defined in.
func processFromImport(node *tree_sitter.Node, source []byte, relPath string, imports ImportMap) {
	moduleNode := node.ChildByFieldName("module_name")
	var modulePath string
	isRelative := false

	if moduleNode != nil {
		modulePath = parser.NodeText(moduleNode, source)
		isRelative = strings.HasPrefix(modulePath, ".")
	}

	baseModule := modulePath
	if isRelative {
		baseModule = resolveRelativeImport(modulePath, relPath)
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}

		switch child.Kind() {
		case "dotted_name":
			// The module_name child is itself a dotted_name; skip it by
			// identity so "from x import x" still binds the name.
			if moduleNode != nil && child.Id() == moduleNode.Id() {
				continue
			}
			imports[lastDotSegment(parser.NodeText(child, source))] = baseModule

		case "aliased_import":
			nameNode := child.ChildByFieldName("name")
			aliasNode := child.ChildByFieldName("alias")
			if nameNode == nil {
				continue
			}
			localName := lastDotSegment(parser.NodeText(nameNode, source))
			if aliasNode != nil {
				localName = parser.NodeText(aliasNode, source)
			}
			imports[localName] = baseModule
		}
	}
}

// resolveRelativeImport resolves "from . import X" or "from ..utils import X"
// against the importing file's location under the repository root.
func resolveRelativeImport(modulePath, relPath string) string {
	dots := 0
	for _, ch := range modulePath {
		if ch == '.' {
			dots++
		} else {
			break
		}
	}
	remainder := strings.TrimLeft(modulePath, ".")

	dir := filepath.Dir(relPath)
	for i := 1; i < dots; i++ {
		dir = filepath.Dir(dir)
	}

	baseQN := fqn.FolderQN(dir)
	if remainder == "" {
		return baseQN
	}
	if baseQN == "" {
		return remainder
	}
	return baseQN + "." + remainder
}

// firstDotSegment returns the first segment of a .-separated name.
func firstDotSegment(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// lastDotSegment returns the last segment of a .-separated name.
func lastDotSegment(name string) string {
	parts := strings.Split(name, ".")
	return parts[len(parts)-1]
}
