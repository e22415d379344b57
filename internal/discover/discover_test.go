package discover

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverPythonFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "x = 1\n")
	writeFile(t, root, "pkg/b.py", "y = 2\n")
	writeFile(t, root, "notes.txt", "not source\n")

	files, err := Discover(context.Background(), root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %+v", len(files), files)
	}
}

func TestDiscoverSkipsDenylistedDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.py", "")
	for dir := range IGNORE_PATTERNS {
		writeFile(t, root, filepath.Join(dir, "skip.py"), "")
	}

	files, err := Discover(context.Background(), root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "keep.py" {
		t.Fatalf("got %+v, want only keep.py", files)
	}
}

func TestDiscoverCaseSensitiveDenylist(t *testing.T) {
	root := t.TempDir()
	// Different case is not on the denylist and must be walked.
	writeFile(t, root, "VENV/in.py", "")

	files, err := Discover(context.Background(), root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1 (VENV is not denylisted)", len(files))
	}
}

func TestDiscoverSkipsTestFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "mod.py", "")
	writeFile(t, root, "test_mod.py", "")
	writeFile(t, root, "pkg/test_other.py", "")

	files, err := Discover(context.Background(), root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "mod.py" {
		t.Fatalf("got %+v, want only mod.py", files)
	}
}

func TestWalkErrSkip(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sub/a.py", "")

	dirInfo, err := os.Stat(filepath.Join(root, "sub"))
	if err != nil {
		t.Fatal(err)
	}
	fileInfo, err := os.Stat(filepath.Join(root, "sub", "a.py"))
	if err != nil {
		t.Fatal(err)
	}

	if got := walkErrSkip(dirInfo); got != filepath.SkipDir {
		t.Errorf("directory error: got %v, want SkipDir", got)
	}
	// A file error must not skip the rest of the containing directory.
	if got := walkErrSkip(fileInfo); got != nil {
		t.Errorf("file error: got %v, want nil", got)
	}
	if got := walkErrSkip(nil); got != nil {
		t.Errorf("nil info: got %v, want nil", got)
	}
}

func TestDiscoverCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Discover(ctx, root); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
