package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kozaktomas/photo-cull/internal/cull"
)

// loadReport reads a report from disk and restores its derived state.
func loadReport(path string) (*cull.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var report cull.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	if err := report.Rehydrate(); err != nil {
		return nil, fmt.Errorf("corrupt report %s: %w", path, err)
	}
	return &report, nil
}

// saveReport writes the report next to its final path first and renames, so
// a crash mid-write never leaves a truncated report behind.
func saveReport(report *cull.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace report: %w", err)
	}
	return nil
}
