package store

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

// RepoFile names one file to include in a repository snapshot.
type RepoFile struct {
	Path    string // absolute
	RelPath string // relative to the project root
}

// RepoChanges describes how the repository differs from the stored snapshot.
type RepoChanges struct {
	Added    []string `json:"added"`
	Removed  []string `json:"removed"`
	Modified []string `json:"modified"`
}

// Empty reports whether no change was detected.
func (c *RepoChanges) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Modified) == 0
}

// SnapshotHashes hashes every file in parallel, bounded by NumCPU workers.
// Files that cannot be read are omitted from the snapshot.
func SnapshotHashes(ctx context.Context, files []RepoFile) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type hashResult struct {
		Hash string
		Err  error
	}

	results := make([]hashResult, len(files))
	numWorkers := runtime.NumCPU()
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	g := new(errgroup.Group)
	g.SetLimit(numWorkers)
	for i, f := range files {
		g.Go(func() error {
			hash, hashErr := fileHash(f.Path)
			results[i] = hashResult{Hash: hash, Err: hashErr}
			return nil
		})
	}
	_ = g.Wait()

	hashes := make(map[string]string, len(files))
	for i, f := range files {
		if results[i].Err == nil {
			hashes[f.RelPath] = results[i].Hash
		}
	}
	return hashes, nil
}

// SyncRepoState compares a fresh snapshot against the stored one, replaces
// the stored snapshot, and returns what changed since the last sync.
func (s *Store) SyncRepoState(project string, hashes map[string]string) (*RepoChanges, error) {
	stored, err := s.storedHashes(project)
	if err != nil {
		return nil, err
	}

	changes := &RepoChanges{}
	for rel, hash := range hashes {
		old, ok := stored[rel]
		switch {
		case !ok:
			changes.Added = append(changes.Added, rel)
		case old != hash:
			changes.Modified = append(changes.Modified, rel)
		}
	}
	for rel := range stored {
		if _, ok := hashes[rel]; !ok {
			changes.Removed = append(changes.Removed, rel)
		}
	}

	err = s.WithTransaction(func(tx *Store) error {
		if _, err := tx.q.Exec(`DELETE FROM file_hashes WHERE project = ?`, project); err != nil {
			return fmt.Errorf("reset file hashes: %w", err)
		}
		for rel, hash := range hashes {
			if _, err := tx.q.Exec(
				`INSERT INTO file_hashes (project, rel_path, hash) VALUES (?, ?, ?)`,
				project, rel, hash); err != nil {
				return fmt.Errorf("insert file hash: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changes, nil
}

func (s *Store) storedHashes(project string) (map[string]string, error) {
	rows, err := s.q.Query(`SELECT rel_path, hash FROM file_hashes WHERE project = ?`, project)
	if err != nil {
		return nil, fmt.Errorf("load file hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var rel, hash string
		if err := rows.Scan(&rel, &hash); err != nil {
			return nil, fmt.Errorf("scan file hash: %w", err)
		}
		hashes[rel] = hash
	}
	return hashes, rows.Err()
}

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
