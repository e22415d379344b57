package evaluate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/veralabs/method-critic/internal/discover"
	"github.com/veralabs/method-critic/internal/rating"
	"github.com/veralabs/method-critic/internal/store"
	"github.com/veralabs/method-critic/internal/usage"
)

// Completer is the rating collaborator. *rating.Client satisfies it; tests
// substitute a stub.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Evaluator runs the full pipeline for one target file: resolve usages,
// extract snippets, rate each definition against the cache-backed
// collaborator. Definitions are processed strictly sequentially.
type Evaluator struct {
	Store  *store.Store
	Client Completer
}

// Result is the rating outcome for one definition.
type Result struct {
	ID         usage.MethodIdentifier `json:"id"`
	FilePath   string                 `json:"file_path"`
	IsMethod   bool                   `json:"is_method"`
	UsageCount int                    `json:"usage_count"`
	Cached     bool                   `json:"cached"`
	Verdict    rating.Verdict         `json:"verdict"`
}

// New creates an evaluator.
func New(st *store.Store, client Completer) *Evaluator {
	return &Evaluator{Store: st, Client: client}
}

// EvaluateFile resolves and rates every definition in the target file.
// An empty result slice means no definition had any usage; that is a normal
// outcome, not an error.
func (e *Evaluator) EvaluateFile(ctx context.Context, root, targetFile string) ([]Result, error) {
	return e.evaluate(ctx, root, targetFile, nil)
}

func (e *Evaluator) evaluate(ctx context.Context, root, targetFile string, cancelled func() bool) ([]Result, error) {
	resolver, err := usage.NewResolver(root, targetFile)
	if err != nil {
		return nil, err
	}
	defer resolver.Close()

	if err := resolver.ParseTargetFile(); err != nil {
		return nil, err
	}
	if err := resolver.ParseRepoFiles(ctx); err != nil {
		return nil, err
	}

	snippets := resolver.Snippets(resolver.Usages())

	if err := e.syncRepoState(ctx, root); err != nil {
		// State tracking is advisory; a sync failure must not lose verdicts.
		slog.Warn("evaluate.repostate.err", "err", err)
	}

	if len(snippets) == 0 {
		slog.Info("evaluate.empty", "target", targetFile)
		return []Result{}, nil
	}

	project := projectName(root)
	results := make([]Result, 0, len(snippets))
	for _, sn := range snippets {
		if cancelled != nil && cancelled() {
			return results, context.Canceled
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := e.evaluateSnippet(ctx, project, sn, cancelled)
		if err != nil {
			if ctx.Err() != nil || (cancelled != nil && cancelled()) {
				return results, context.Canceled
			}
			// A failed rating call degrades to a zero verdict; the walk
			// continues with the remaining definitions.
			slog.Warn("evaluate.method.err", "method", sn.ID.String(), "err", err)
			res = Result{
				ID:         sn.ID,
				FilePath:   sn.FilePath,
				IsMethod:   sn.IsMethod,
				UsageCount: len(sn.Usages),
				Verdict:    rating.DefaultVerdict(err.Error()),
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// evaluateSnippet rates one definition, consulting the verdict cache first.
func (e *Evaluator) evaluateSnippet(ctx context.Context, project string, sn usage.Snippet, cancelled func() bool) (Result, error) {
	usageText := strings.Join(sn.Usages, "\n\n")
	code := sn.Definition + "\n" + usageText
	key := store.CacheKey(e.Client.Model(), rating.PromptType, rating.PromptVersion, code)

	res := Result{
		ID:         sn.ID,
		FilePath:   sn.FilePath,
		IsMethod:   sn.IsMethod,
		UsageCount: len(sn.Usages),
	}

	if cached, ok, err := e.Store.GetVerdict(key); err == nil && ok {
		var v rating.Verdict
		if json.Unmarshal([]byte(cached), &v) == nil {
			res.Cached = true
			res.Verdict = v
			slog.Debug("evaluate.cache.hit", "method", sn.ID.String())
			return res, nil
		}
	}

	raw, err := e.complete(ctx, rating.BuildPrompt(sn.Definition, usageText), cancelled)
	if err != nil {
		return Result{}, err
	}
	res.Verdict = rating.ParseVerdict(raw)

	verdictJSON, err := json.Marshal(res.Verdict)
	if err != nil {
		return Result{}, fmt.Errorf("marshal verdict: %w", err)
	}
	if err := e.Store.PutVerdict(&store.VerdictRecord{
		CacheKey:      key,
		Project:       project,
		Model:         e.Client.Model(),
		PromptType:    rating.PromptType,
		PromptVersion: rating.PromptVersion,
		MethodModule:  sn.ID.ModuleName,
		MethodName:    sn.ID.MethodName,
		Verdict:       string(verdictJSON),
	}); err != nil {
		slog.Warn("evaluate.cache.put.err", "method", sn.ID.String(), "err", err)
	}
	return res, nil
}

// syncRepoState snapshots the repository's file hashes so later runs can
// report what changed. Verdicts stay content-addressed, so no invalidation
// is needed here; the snapshot feeds change reporting only.
func (e *Evaluator) syncRepoState(ctx context.Context, root string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	project := projectName(root)
	if err := e.Store.UpsertProject(project, absRoot); err != nil {
		return err
	}

	files, err := discover.Discover(ctx, absRoot)
	if err != nil {
		return err
	}
	repoFiles := make([]store.RepoFile, len(files))
	for i, f := range files {
		repoFiles[i] = store.RepoFile{Path: f.Path, RelPath: f.RelPath}
	}

	hashes, err := store.SnapshotHashes(ctx, repoFiles)
	if err != nil {
		return err
	}
	changes, err := e.Store.SyncRepoState(project, hashes)
	if err != nil {
		return err
	}
	if !changes.Empty() {
		slog.Info("evaluate.repostate.changed",
			"added", len(changes.Added),
			"removed", len(changes.Removed),
			"modified", len(changes.Modified))
	}
	return nil
}

// projectName derives the cache project name from the root directory.
func projectName(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return filepath.Base(root)
	}
	return filepath.Base(abs)
}
