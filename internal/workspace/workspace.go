// Package workspace reads the OpenClaw workspace directory: memory log
// listing, file tree walking, and substring search with line context.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// DefaultMemoryFileLimit caps how many memory files the dashboard reads,
	// newest first (one file per day).
	DefaultMemoryFileLimit = 7

	memoryDirName = "memory"
)

// searchableExtensions are the file types included when walking the tree.
var searchableExtensions = []string{".md", ".txt", ".json"}

// Workspace points at an OpenClaw workspace root on disk.
type Workspace struct {
	Root string
}

// Resolve builds a Workspace from OPENCLAW_WORKSPACE, falling back to
// ~/.openclaw/workspace.
func Resolve() *Workspace {
	root := strings.TrimSpace(os.Getenv("OPENCLAW_WORKSPACE"))
	if root == "" {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, ".openclaw", "workspace")
	}
	return &Workspace{Root: root}
}

// MemoryDir returns the path of the memory log directory.
func (w *Workspace) MemoryDir() string {
	return filepath.Join(w.Root, memoryDirName)
}

// MemoryFile pairs a memory log filename with its content.
type MemoryFile struct {
	Name    string
	Content string
}

// MemoryFiles reads up to limit markdown files from the memory directory,
// newest filename first. A missing memory directory yields an empty slice;
// unreadable individual files are skipped.
func (w *Workspace) MemoryFiles(limit int) []MemoryFile {
	if limit <= 0 {
		limit = DefaultMemoryFileLimit
	}

	entries, err := os.ReadDir(w.MemoryDir())
	if err != nil {
		return []MemoryFile{}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	if len(names) > limit {
		names = names[:limit]
	}

	files := make([]MemoryFile, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(w.MemoryDir(), name))
		if err != nil {
			continue
		}
		files = append(files, MemoryFile{Name: name, Content: string(content)})
	}
	return files
}

// Walk lists searchable files under dir recursively, skipping dot-prefixed
// entries and node_modules. Permission errors are ignored.
func (w *Workspace) Walk(dir string) []string {
	var files []string
	walkDir(dir, &files)
	return files
}

func walkDir(dir string, files *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || name == "node_modules" {
			continue
		}

		fullPath := filepath.Join(dir, name)
		if entry.IsDir() {
			walkDir(fullPath, files)
			continue
		}
		if hasSearchableExtension(name) {
			*files = append(*files, fullPath)
		}
	}
}

func hasSearchableExtension(name string) bool {
	for _, ext := range searchableExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
