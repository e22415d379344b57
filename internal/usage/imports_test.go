package usage

import (
	"testing"

	"github.com/veralabs/method-critic/internal/lang"
	"github.com/veralabs/method-critic/internal/parser"
)

func importMapOf(t *testing.T, source, relPath string) ImportMap {
	t.Helper()
	idx, err := parser.NewSourceIndex(lang.Python, relPath, []byte(source))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(idx.Close)
	return buildImportMap(idx, relPath)
}

func TestBuildImportMap(t *testing.T) {
	source := `import os
import pkg.mod
import numpy as np
from pkg.a import helper
from pkg.a import one, two
from pkg.b import thing as t
`
	imports := importMapOf(t, source, "main.py")

	want := map[string]string{
		"os":     "os",
		"pkg":    "pkg.mod",
		"np":     "numpy",
		"helper": "pkg.a",
		"one":    "pkg.a",
		"two":    "pkg.a",
		"t":      "pkg.b",
	}
	if len(imports) != len(want) {
		t.Errorf("got %d entries, want %d: %v", len(imports), len(want), imports)
	}
	for name, module := range want {
		if got := imports[name]; got != module {
			t.Errorf("imports[%q] = %q, want %q", name, got, module)
		}
	}
}

func TestBuildImportMapNameEqualsModule(t *testing.T) {
	// The imported name coincides with the module path; it must still bind.
	imports := importMapOf(t, "from x import x\n", "main.py")

	got, ok := imports["x"]
	if !ok || got != "x" {
		t.Errorf("imports[x] = %q, %v; want x bound to module x", got, ok)
	}
}

func TestBuildImportMapRelative(t *testing.T) {
	source := `from . import sibling
from ..top import entry
`
	imports := importMapOf(t, source, "pkg/sub/mod.py")

	if got := imports["sibling"]; got != "pkg.sub" {
		t.Errorf("imports[sibling] = %q, want pkg.sub", got)
	}
	if got := imports["entry"]; got != "pkg.top" {
		t.Errorf("imports[entry] = %q, want pkg.top", got)
	}
}

func TestBuildImportMapRelativeAtRoot(t *testing.T) {
	imports := importMapOf(t, "from . import util\n", "mod.py")

	// The importing file sits at the repository root, so the current
	// package is empty and the bound module is empty too.
	if got := imports["util"]; got != "" {
		t.Errorf("imports[util] = %q, want empty", got)
	}
}

func TestDotSegments(t *testing.T) {
	if got := firstDotSegment("a.b.c"); got != "a" {
		t.Errorf("firstDotSegment = %q, want a", got)
	}
	if got := firstDotSegment("solo"); got != "solo" {
		t.Errorf("firstDotSegment = %q, want solo", got)
	}
	if got := lastDotSegment("a.b.c"); got != "c" {
		t.Errorf("lastDotSegment = %q, want c", got)
	}
	if got := lastDotSegment("solo"); got != "solo" {
		t.Errorf("lastDotSegment = %q, want solo", got)
	}
}
