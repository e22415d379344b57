package fqn

import (
	"path/filepath"
	"strings"
)

// UnknownModule is the sentinel module name used when a file does not live
// under the repository root, so no relative dotted path can be derived.
const UnknownModule = "unknown_module"

// ModuleName returns the dotted module name for a source file, derived from
// its path relative to the repository root.
// Examples:
//   - pkg/a.py        -> pkg.a
//   - pkg/__init__.py -> pkg
//   - top.py          -> top
func ModuleName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return UnknownModule
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	parts := strings.Split(filepath.ToSlash(rel), "/")

	// For Python __init__.py, the package directory is the module.
	if len(parts) > 0 && parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}

	return strings.Join(parts, ".")
}

// FolderQN returns the dotted name for a directory relative to the root.
// Used when resolving relative imports against the importing file's package.
func FolderQN(relDir string) string {
	if relDir == "." || relDir == "" {
		return ""
	}
	return strings.Join(strings.Split(filepath.ToSlash(relDir), "/"), ".")
}
