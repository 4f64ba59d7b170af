// Package data holds embedded demo content used to seed an empty workspace.
package data

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

// SampleLog is one embedded demo memory log. Name is the embedded file name
// without its extension; logs are ordered oldest first.
type SampleLog struct {
	Name    string
	Content string
}

//go:embed samples/*.md
var samplesFS embed.FS

var (
	sampleLogsOnce sync.Once
	sampleLogs     []SampleLog
	sampleLogsErr  error
)

func loadSampleLogs() ([]SampleLog, error) {
	entries, err := fs.ReadDir(samplesFS, "samples")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded samples: %w", err)
	}

	logs := make([]SampleLog, 0, len(entries))
	for _, entry := range entries {
		content, err := fs.ReadFile(samplesFS, "samples/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read sample %s: %w", entry.Name(), err)
		}
		logs = append(logs, SampleLog{
			Name:    strings.TrimSuffix(entry.Name(), ".md"),
			Content: string(content),
		})
	}

	sort.Slice(logs, func(i, j int) bool { return logs[i].Name < logs[j].Name })
	return logs, nil
}

// SampleMemoryLogs returns the embedded demo memory logs, oldest first.
func SampleMemoryLogs() ([]SampleLog, error) {
	sampleLogsOnce.Do(func() {
		sampleLogs, sampleLogsErr = loadSampleLogs()
	})
	return sampleLogs, sampleLogsErr
}
