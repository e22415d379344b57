package discover

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/veralabs/method-critic/internal/lang"
)

// IGNORE_PATTERNS are directory names to skip during discovery.
// The match is exact and case-sensitive.
var IGNORE_PATTERNS = map[string]bool{
	".git":          true,
	"__pycache__":   true,
	".venv":         true,
	"venv":          true,
	"node_modules":  true,
	".pytest_cache": true,
}

// FileInfo represents a discovered source file.
type FileInfo struct {
	Path     string        // absolute path
	RelPath  string        // relative to repo root
	Language lang.Language // detected language
}

// Discover walks a repository and returns all source files eligible for the
// repository phase: files matching a registered language extension whose
// basename does not carry the language's test-file prefix. Unreadable
// directories are logged and skipped rather than aborting the walk.
func Discover(ctx context.Context, repoPath string) ([]FileInfo, error) {
	repoPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var files []FileInfo

	err = filepath.Walk(repoPath, func(path string, info os.FileInfo, walkErr error) error {
		// Check context cancellation periodically during walk
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			slog.Warn("discover.walk.skip", "path", path, "err", walkErr)
			return walkErrSkip(info)
		}

		rel, _ := filepath.Rel(repoPath, path)

		if info.IsDir() {
			if IGNORE_PATTERNS[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		spec := lang.ForExtension(ext)
		if spec == nil {
			return nil
		}
		if spec.TestFilePrefix != "" && strings.HasPrefix(info.Name(), spec.TestFilePrefix) {
			return nil
		}

		files = append(files, FileInfo{
			Path:     path,
			RelPath:  filepath.ToSlash(rel),
			Language: spec.Language,
		})
		return nil
	})

	return files, err
}

// walkErrSkip recovers from a walk error: skip the whole subtree for an
// unreadable directory, but only the single entry otherwise, so one bad file
// never drops its siblings from the walk.
func walkErrSkip(info os.FileInfo) error {
	if info != nil && info.IsDir() {
		return filepath.SkipDir
	}
	return nil
}
