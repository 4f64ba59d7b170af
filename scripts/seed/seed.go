// Command seed fills an empty OpenClaw workspace with demo content so the
// dashboard has something to show before a real agent has run: a few
// priority files and the last few days of memory logs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Clawdomoto/moto-dashboard/data"
	"github.com/Clawdomoto/moto-dashboard/internal/workspace"
)

var priorityFiles = map[string]string{
	"AGENTS.md": "# Agents\n\nThe main agent handles scheduling, research, and messaging.\n",
	"SOUL.md":   "# Soul\n\nBe helpful, be brief, keep the user informed.\n",
	"TOOLS.md":  "# Tools\n\n- cron: schedule recurring jobs\n- message: send updates to the user\n",
}

var (
	workspaceDir string
	force        bool
)

func main() {
	flag.StringVar(&workspaceDir, "dir", "", "Workspace directory (default: OPENCLAW_WORKSPACE or ~/.openclaw/workspace)")
	flag.BoolVar(&force, "force", false, "Overwrite files that already exist")
	flag.Parse()

	root := workspaceDir
	if root == "" {
		root = workspace.Resolve().Root
	}

	written, err := seedWorkspace(root, time.Now(), force)
	if err != nil {
		log.Fatalf("❌ Seed failed: %v", err)
	}

	if written == 0 {
		log.Printf("📦 Workspace at %s already seeded, nothing to do (use -force to overwrite)", root)
		return
	}
	log.Printf("✅ Seeded %d files into %s", written, root)
}

// seedWorkspace writes the demo files under root and reports how many files
// it wrote. Existing files are left alone unless overwrite is set. Memory
// logs are named for the most recent days ending at now, so the dashboard's
// newest-first listing picks them up.
func seedWorkspace(root string, now time.Time, overwrite bool) (int, error) {
	memoryDir := filepath.Join(root, "memory")
	if err := os.MkdirAll(memoryDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create memory directory: %w", err)
	}

	written := 0
	for name, content := range priorityFiles {
		ok, err := writeFile(filepath.Join(root, name), content, overwrite)
		if err != nil {
			return written, err
		}
		if ok {
			written++
		}
	}

	logs, err := data.SampleMemoryLogs()
	if err != nil {
		return written, err
	}

	// The newest sample becomes today's log, the one before it yesterday's.
	for i, sample := range logs {
		day := now.AddDate(0, 0, i-len(logs)+1)
		name := day.Format("2006-01-02") + ".md"
		ok, err := writeFile(filepath.Join(memoryDir, name), sample.Content, overwrite)
		if err != nil {
			return written, err
		}
		if ok {
			written++
		}
	}

	return written, nil
}

func writeFile(path, content string, overwrite bool) (bool, error) {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
