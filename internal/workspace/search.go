package workspace

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// Workspace root files searched before everything else.
	maxSearchResults    = 50
	maxGeneralScanFiles = 100

	snippetContextLines = 2
)

// priorityFiles are the workspace root documents searched first.
var priorityFiles = []string{"AGENTS.md", "SOUL.md", "USER.md", "TOOLS.md", "MEMORY.md"}

// SearchResult is one matching line with surrounding context.
type SearchResult struct {
	FilePath   string `json:"filePath"`
	FileName   string `json:"fileName"`
	Snippet    string `json:"snippet"`
	LineNumber int    `json:"lineNumber"`
}

// Search runs a case-insensitive substring search across the workspace:
// priority files first, then the memory tree, then up to 100 remaining
// workspace files. Results are capped at 50; the returned total counts every
// match found before capping.
func (w *Workspace) Search(query string) (results []SearchResult, total int) {
	var all []SearchResult

	for _, name := range priorityFiles {
		all = append(all, w.SearchFile(filepath.Join(w.Root, name), query)...)
	}

	for _, file := range w.Walk(w.MemoryDir()) {
		all = append(all, w.SearchFile(file, query)...)
	}

	general := w.Walk(w.Root)
	if len(general) > maxGeneralScanFiles {
		general = general[:maxGeneralScanFiles]
	}
	for _, file := range general {
		if isMemoryPath(file) || isPriorityFile(file) {
			continue
		}
		all = append(all, w.SearchFile(file, query)...)
	}

	total = len(all)
	if len(all) > maxSearchResults {
		all = all[:maxSearchResults]
	}
	if all == nil {
		all = []SearchResult{}
	}
	return all, total
}

// SearchFile scans one file line by line and returns a result per matching
// line, each with two lines of context on either side. Unreadable files yield
// no results.
func (w *Workspace) SearchFile(path, query string) []SearchResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	relPath, err := filepath.Rel(w.Root, path)
	if err != nil {
		relPath = path
	}

	queryLower := strings.ToLower(query)
	lines := strings.Split(string(content), "\n")

	var results []SearchResult
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), queryLower) {
			continue
		}

		start := i - snippetContextLines
		if start < 0 {
			start = 0
		}
		end := i + snippetContextLines + 1
		if end > len(lines) {
			end = len(lines)
		}

		results = append(results, SearchResult{
			FilePath:   relPath,
			FileName:   filepath.Base(path),
			Snippet:    strings.Join(lines[start:end], "\n"),
			LineNumber: i + 1,
		})
	}
	return results
}

func isMemoryPath(path string) bool {
	return strings.Contains(filepath.ToSlash(path), "/"+memoryDirName+"/")
}

func isPriorityFile(path string) bool {
	for _, name := range priorityFiles {
		if strings.HasSuffix(path, name) {
			return true
		}
	}
	return false
}
