package fqn

import (
	"path/filepath"
	"testing"
)

func TestModuleName(t *testing.T) {
	root := filepath.Join("/repo", "project")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"top level", filepath.Join(root, "top.py"), "top"},
		{"nested", filepath.Join(root, "pkg", "a.py"), "pkg.a"},
		{"deeply nested", filepath.Join(root, "pkg", "sub", "mod.py"), "pkg.sub.mod"},
		{"package init", filepath.Join(root, "pkg", "__init__.py"), "pkg"},
		{"outside root", filepath.Join("/elsewhere", "x.py"), UnknownModule},
		{"parent of root", filepath.Join("/repo", "x.py"), UnknownModule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModuleName(root, tt.path); got != tt.want {
				t.Errorf("ModuleName(%q, %q) = %q, want %q", root, tt.path, got, tt.want)
			}
		})
	}
}

func TestFolderQN(t *testing.T) {
	if got := FolderQN("pkg/sub"); got != "pkg.sub" {
		t.Errorf("FolderQN(pkg/sub) = %q, want pkg.sub", got)
	}
	if got := FolderQN("."); got != "" {
		t.Errorf("FolderQN(.) = %q, want empty", got)
	}
}
