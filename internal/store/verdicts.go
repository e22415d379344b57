package store

import (
	"database/sql"
	"fmt"
)

// VerdictRecord is one cached rating, stored as the raw verdict JSON plus
// the identifying metadata used for stats and cleanup.
type VerdictRecord struct {
	CacheKey      string
	Project       string
	Model         string
	PromptType    string
	PromptVersion string
	MethodModule  string
	MethodName    string
	Verdict       string // JSON
	CreatedAt     string
}

// GetVerdict returns the cached verdict JSON for a cache key, or ok=false on
// a miss.
func (s *Store) GetVerdict(cacheKey string) (string, bool, error) {
	row := s.q.QueryRow(`SELECT verdict FROM verdicts WHERE cache_key = ?`, cacheKey)
	var verdict string
	if err := row.Scan(&verdict); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get verdict: %w", err)
	}
	return verdict, true, nil
}

// PutVerdict stores a verdict under its cache key, replacing any previous
// entry for the same key.
func (s *Store) PutVerdict(rec *VerdictRecord) error {
	_, err := s.q.Exec(`
		INSERT INTO verdicts (cache_key, project, model, prompt_type, prompt_version, method_module, method_name, verdict, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET verdict = excluded.verdict, created_at = excluded.created_at`,
		rec.CacheKey, rec.Project, rec.Model, rec.PromptType, rec.PromptVersion,
		rec.MethodModule, rec.MethodName, rec.Verdict, Now())
	if err != nil {
		return fmt.Errorf("put verdict: %w", err)
	}
	return nil
}

// CacheStats summarizes cache contents.
type CacheStats struct {
	Projects   int            `json:"projects"`
	Verdicts   int            `json:"verdicts"`
	FileHashes int            `json:"file_hashes"`
	ByModel    map[string]int `json:"by_model"`
}

// Stats counts cached entries across all projects.
func (s *Store) Stats() (*CacheStats, error) {
	stats := &CacheStats{ByModel: map[string]int{}}

	if err := s.q.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&stats.Projects); err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	if err := s.q.QueryRow(`SELECT COUNT(*) FROM verdicts`).Scan(&stats.Verdicts); err != nil {
		return nil, fmt.Errorf("count verdicts: %w", err)
	}
	if err := s.q.QueryRow(`SELECT COUNT(*) FROM file_hashes`).Scan(&stats.FileHashes); err != nil {
		return nil, fmt.Errorf("count file hashes: %w", err)
	}

	rows, err := s.q.Query(`SELECT model, COUNT(*) FROM verdicts GROUP BY model`)
	if err != nil {
		return nil, fmt.Errorf("count by model: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var model string
		var n int
		if err := rows.Scan(&model, &n); err != nil {
			return nil, fmt.Errorf("scan model count: %w", err)
		}
		stats.ByModel[model] = n
	}
	return stats, rows.Err()
}

// ClearProject deletes a project and everything cached for it.
func (s *Store) ClearProject(project string) error {
	if _, err := s.q.Exec(`DELETE FROM projects WHERE name = ?`, project); err != nil {
		return fmt.Errorf("clear project: %w", err)
	}
	return nil
}

// ClearAll empties the cache.
func (s *Store) ClearAll() error {
	if _, err := s.q.Exec(`DELETE FROM projects`); err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	return nil
}
