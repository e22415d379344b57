package rating

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("def f():\n    pass\n", "def caller():\n    f()\n")
	if !strings.Contains(p, "def f():") {
		t.Error("prompt missing method definition")
	}
	if !strings.Contains(p, "Usage Example:\ndef caller():") {
		t.Error("prompt missing usage section")
	}
	if !strings.Contains(p, "ONLY as valid JSON") {
		t.Error("prompt missing JSON instruction")
	}
}

func TestBuildPromptNoUsages(t *testing.T) {
	p := BuildPrompt("def f():\n    pass\n", "")
	if strings.Contains(p, "Usage Example:") {
		t.Error("empty usage must omit the usage section")
	}
}
