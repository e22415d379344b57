package usage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/veralabs/method-critic/internal/discover"
	"github.com/veralabs/method-critic/internal/fqn"
	"github.com/veralabs/method-critic/internal/lang"
	"github.com/veralabs/method-critic/internal/parser"
)

// MaxUsagesPerMethod bounds how many call sites are recorded per definition,
// checked before every append. Keeps downstream prompt sizes bounded.
const MaxUsagesPerMethod = 10

// Resolver matches definitions in one target file against call sites across
// a repository. One instance is scoped to exactly one resolution request and
// must be discarded (Close) after Usages returns. Resolution runs strictly
// sequentially, file by file, in directory-traversal order.
type Resolver struct {
	root       string
	targetFile string
	sampler    Sampler

	targetIdx   *parser.SourceIndex
	definitions map[MethodIdentifier]*MethodPointer
	usages      map[MethodIdentifier][]CallSiteInfo

	// retained holds indexes whose nodes are referenced by definitions or
	// recorded call sites; closed together when the resolver is discarded.
	retained []*parser.SourceIndex
}

// NewResolver creates a resolver for one (root directory, target file) pair.
func NewResolver(root, targetFile string) (*Resolver, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	absTarget, err := filepath.Abs(targetFile)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}
	return &Resolver{
		root:        absRoot,
		targetFile:  absTarget,
		sampler:     RandomSampler{},
		definitions: make(map[MethodIdentifier]*MethodPointer),
		usages:      make(map[MethodIdentifier][]CallSiteInfo),
	}, nil
}

// SetSampler replaces the default random sampler.
func (r *Resolver) SetSampler(s Sampler) {
	if s != nil {
		r.sampler = s
	}
}

// Close releases every tree the resolver still holds.
func (r *Resolver) Close() {
	for _, idx := range r.retained {
		idx.Close()
	}
	r.retained = nil
	r.targetIdx = nil
}

// TargetModule returns the dotted module name of the target file.
func (r *Resolver) TargetModule() string {
	return fqn.ModuleName(r.root, r.targetFile)
}

// ParseTargetFile parses the target file and registers a MethodPointer for
// every function and method definition found. A syntax error here is fatal:
// with no definitions there is nothing to search for. When two definitions
// share a name, the later registration overwrites the earlier one.
func (r *Resolver) ParseTargetFile() error {
	source, err := os.ReadFile(r.targetFile)
	if err != nil {
		return fmt.Errorf("read target: %w", err)
	}

	idx, err := parser.NewSourceIndex(lang.Python, r.targetFile, source)
	if err != nil {
		return err
	}
	r.targetIdx = idx
	r.retained = append(r.retained, idx)

	module := r.TargetModule()
	funcKinds := kindSet(lang.ForLanguage(idx.Language).FunctionNodeTypes)
	parser.Walk(idx.Root(), func(node *tree_sitter.Node) bool {
		if !funcKinds[node.Kind()] {
			return true
		}
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			return true
		}
		id := MethodIdentifier{ModuleName: module, MethodName: idx.SourceSegment(nameNode)}
		r.definitions[id] = &MethodPointer{
			ID:       id,
			Def:      node,
			FilePath: r.targetFile,
			IsMethod: idx.InsideClass(node),
		}
		return true
	})

	slog.Info("resolve.target", "module", module, "defs", len(r.definitions))
	return nil
}

// ParseRepoFiles walks every eligible source file under the root and records
// call sites that resolve to a target definition. Files that fail to parse
// are logged and skipped; the walk continues.
func (r *Resolver) ParseRepoFiles(ctx context.Context) error {
	files, err := discover.Discover(ctx, r.root)
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		source, readErr := os.ReadFile(f.Path)
		if readErr != nil {
			slog.Warn("resolve.file.skip", "path", f.RelPath, "err", readErr)
			continue
		}
		idx, parseErr := parser.NewSourceIndex(f.Language, f.Path, source)
		if parseErr != nil {
			slog.Warn("resolve.file.skip", "path", f.RelPath, "err", parseErr)
			continue
		}
		if r.processFile(idx, f) {
			r.retained = append(r.retained, idx)
		} else {
			idx.Close()
		}
	}

	slog.Info("resolve.repo.done", "files", len(files), "matched", len(r.usages))
	return nil
}

// processFile visits every call expression in one file. Reports whether any
// call site was recorded (the index must then outlive the walk).
func (r *Resolver) processFile(idx *parser.SourceIndex, f discover.FileInfo) bool {
	module := fqn.ModuleName(r.root, f.Path)
	imports := buildImportMap(idx, f.RelPath)

	contributed := false
	callKinds := kindSet(lang.ForLanguage(idx.Language).CallNodeTypes)
	parser.Walk(idx.Root(), func(node *tree_sitter.Node) bool {
		if !callKinds[node.Kind()] {
			return true
		}
		id, ok := resolveCallIdentifier(callTargetOf(node, idx.Source), module, imports)
		if !ok {
			return true
		}
		if _, defined := r.definitions[id]; !defined {
			return true
		}
		if len(r.usages[id]) >= MaxUsagesPerMethod {
			return true
		}
		enclosing := idx.EnclosingFunction(node)
		if enclosing == nil {
			// Module-level call with no enclosing function to snippet.
			return true
		}
		r.usages[id] = append(r.usages[id], CallSiteInfo{
			Call:      node,
			Enclosing: enclosing,
			FilePath:  f.Path,
			index:     idx,
		})
		contributed = true
		return true
	})
	return contributed
}

// resolveCallIdentifier maps a call-target shape to a qualified name.
//
//   - Bare name f(...): the module is ImportMap[f] when f was imported,
//     else the current file's module.
//   - Attribute chain a.b.c(...): self.m() resolves against the current
//     module (class-method heuristic). Otherwise the base name is looked up
//     in the import map; when absent, the joined chain prefix is taken as a
//     best-effort module path. That fallback never validates that such a
//     module exists and can mis-attribute same-named methods on unrelated
//     objects.
func resolveCallIdentifier(target CallTarget, currentModule string, imports ImportMap) (MethodIdentifier, bool) {
	switch t := target.(type) {
	case SimpleName:
		module := currentModule
		if m, ok := imports[t.Name]; ok {
			module = m
		}
		return MethodIdentifier{ModuleName: module, MethodName: t.Name}, true

	case AttributeChain:
		base := t.Segments[0]
		last := t.Segments[len(t.Segments)-1]
		if base == "self" && len(t.Segments) > 1 {
			return MethodIdentifier{ModuleName: currentModule, MethodName: last}, true
		}
		if m, ok := imports[base]; ok {
			return MethodIdentifier{ModuleName: m, MethodName: last}, true
		}
		return MethodIdentifier{
			ModuleName: strings.Join(t.Segments[:len(t.Segments)-1], "."),
			MethodName: last,
		}, true
	}

	return MethodIdentifier{}, false
}

// Usages packages the result: for every definition with at least one recorded
// call site, a sample of min(10, recorded) sites drawn without replacement.
// With the default sampler the selection is random and not reproducible
// across runs.
func (r *Resolver) Usages() map[MethodPointer][]CallSiteInfo {
	out := make(map[MethodPointer][]CallSiteInfo, len(r.usages))
	for id, sites := range r.usages {
		ptr := r.definitions[id]
		if ptr == nil {
			continue
		}
		k := min(MaxUsagesPerMethod, len(sites))
		sampled := make([]CallSiteInfo, 0, k)
		for _, i := range r.sampler.Sample(len(sites), k) {
			sampled = append(sampled, sites[i])
		}
		out[*ptr] = sampled
	}
	return out
}

// DefinitionText returns the exact source text of a registered definition.
func (r *Resolver) DefinitionText(ptr MethodPointer) string {
	if r.targetIdx == nil {
		return ""
	}
	return r.targetIdx.SourceSegment(ptr.Def)
}

// kindSet builds a lookup set from a language spec's node-kind list.
func kindSet(kinds []string) map[string]bool {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}
