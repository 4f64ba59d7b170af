package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// IndexedFile is one workspace file held in the search index.
type IndexedFile struct {
	ID          int64  `json:"id"`
	FilePath    string `json:"filePath"`
	FileName    string `json:"fileName"`
	Content     string `json:"content"`
	LastIndexed int64  `json:"lastIndexed"`
}

// IndexSearchResult is an indexed file with the snippet around the first match.
type IndexSearchResult struct {
	IndexedFile
	Snippet    string `json:"snippet"`
	MatchIndex int    `json:"matchIndex"`
}

// SearchIndexStore persists workspace file contents for substring search.
type SearchIndexStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSearchIndexStore creates a new SearchIndexStore with the given database connection.
func NewSearchIndexStore(db *sql.DB) *SearchIndexStore {
	return &SearchIndexStore{
		db: db,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

const searchIndexSelectColumns = "id, file_path, file_name, content, last_indexed"

const (
	defaultIndexSearchLimit = 20
	snippetContextChars     = 100
)

// IndexFile inserts or refreshes the indexed content for one file path.
func (s *SearchIndexStore) IndexFile(ctx context.Context, filePath, fileName, content string) (*IndexedFile, error) {
	query := `INSERT INTO search_index (file_path, file_name, content, last_indexed)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (file_path) DO UPDATE SET
		file_name = EXCLUDED.file_name,
		content = EXCLUDED.content,
		last_indexed = EXCLUDED.last_indexed
	RETURNING ` + searchIndexSelectColumns

	row := s.db.QueryRowContext(ctx, query, filePath, fileName, content, s.now().UnixMilli())
	file, err := scanIndexedFile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to index file: %w", err)
	}
	return &file, nil
}

// Search finds indexed files containing the query as a case-insensitive
// substring and extracts a snippet of up to 100 characters on each side of
// the first match.
func (s *SearchIndexStore) Search(ctx context.Context, query string, limit int) ([]IndexSearchResult, error) {
	if limit <= 0 {
		limit = defaultIndexSearchLimit
	}

	sqlQuery := `SELECT ` + searchIndexSelectColumns + ` FROM search_index
	WHERE content ILIKE '%' || $1 || '%' ESCAPE '\'
	ORDER BY last_indexed DESC
	LIMIT $2`

	rows, err := s.db.QueryContext(ctx, sqlQuery, escapeLike(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}
	defer rows.Close()

	results := make([]IndexSearchResult, 0)
	for rows.Next() {
		file, err := scanIndexedFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan indexed file: %w", err)
		}

		matchIndex := strings.Index(strings.ToLower(file.Content), strings.ToLower(query))
		results = append(results, IndexSearchResult{
			IndexedFile: file,
			Snippet:     extractSnippet(file.Content, matchIndex, len(query)),
			MatchIndex:  matchIndex,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading search results: %w", err)
	}

	return results, nil
}

// Clear removes the whole search index.
func (s *SearchIndexStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM search_index`); err != nil {
		return fmt.Errorf("failed to clear search index: %w", err)
	}
	return nil
}

// escapeLike makes the query a literal substring for ILIKE matching.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

// extractSnippet cuts context around a match, adding ellipses for truncated
// sides. A negative match index yields the leading slice of the content.
func extractSnippet(content string, matchIndex, matchLen int) string {
	if matchIndex < 0 {
		matchIndex = 0
		matchLen = 0
	}

	start := matchIndex - snippetContextChars
	if start < 0 {
		start = 0
	}
	end := matchIndex + matchLen + snippetContextChars
	if end > len(content) {
		end = len(content)
	}

	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet = snippet + "..."
	}
	return snippet
}

func scanIndexedFile(row rowScanner) (IndexedFile, error) {
	var file IndexedFile
	err := row.Scan(
		&file.ID,
		&file.FilePath,
		&file.FileName,
		&file.Content,
		&file.LastIndexed,
	)
	if err != nil {
		return IndexedFile{}, err
	}
	return file, nil
}
