package lang

import "testing"

func TestForExtension(t *testing.T) {
	spec := ForExtension(".py")
	if spec == nil {
		t.Fatal("no spec registered for .py")
	}
	if spec.Language != Python {
		t.Errorf("language = %s, want %s", spec.Language, Python)
	}
	if spec.TestFilePrefix != "test_" {
		t.Errorf("test prefix = %q, want test_", spec.TestFilePrefix)
	}

	if ForExtension(".go") != nil {
		t.Error("unexpected spec for .go")
	}
}

func TestLanguageForExtension(t *testing.T) {
	l, ok := LanguageForExtension(".py")
	if !ok || l != Python {
		t.Errorf("LanguageForExtension(.py) = %s, %v", l, ok)
	}
	if _, ok := LanguageForExtension(".txt"); ok {
		t.Error("expected no language for .txt")
	}
}

func TestForLanguage(t *testing.T) {
	spec := ForLanguage(Python)
	if spec == nil {
		t.Fatal("no spec for python")
	}
	if len(spec.FunctionNodeTypes) == 0 || spec.FunctionNodeTypes[0] != "function_definition" {
		t.Errorf("unexpected function node types: %v", spec.FunctionNodeTypes)
	}
}
