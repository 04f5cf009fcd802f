// Package export renders scan results and rename previews as CSV for
// spreadsheet import, and computes summary statistics over a file set.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/filetidy/filetidy/internal/rename"
	"github.com/filetidy/filetidy/internal/scanner"
)

// WriteFilesCSV writes one row per scanned file.
func WriteFilesCSV(w io.Writer, files []scanner.FileInfo) error {
	cw := csv.NewWriter(w)

	header := []string{"path", "name", "extension", "size", "category", "modified", "relativePath"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, f := range files {
		record := []string{
			f.Path,
			f.FullName,
			f.Extension,
			strconv.FormatInt(f.Size, 10),
			string(f.Category),
			f.ModifiedAt.Format(time.RFC3339),
			f.RelativePath,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePreviewCSV writes one row per proposal, including its status and
// any issues, so a preview can be reviewed outside the terminal.
func WritePreviewCSV(w io.Writer, preview *rename.Preview) error {
	cw := csv.NewWriter(w)

	header := []string{"originalName", "proposedName", "status", "action", "destinationFolder", "issues"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, p := range preview.Proposals {
		var issues []string
		for _, issue := range p.Issues {
			issues = append(issues, issue.Message)
		}

		record := []string{
			p.OriginalName,
			p.ProposedName,
			string(p.Status),
			string(p.ActionType),
			p.DestinationFolder,
			strings.Join(issues, "; "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Statistics summarizes a scanned file set.
type Statistics struct {
	TotalFiles int                          `json:"totalFiles"`
	TotalSize  int64                        `json:"totalSize"`
	ByCategory map[scanner.FileCategory]int `json:"byCategory"`
}

// ComputeStatistics aggregates counts and sizes per category.
func ComputeStatistics(files []scanner.FileInfo) Statistics {
	stats := Statistics{ByCategory: map[scanner.FileCategory]int{}}

	for _, f := range files {
		stats.TotalFiles++
		stats.TotalSize += f.Size
		stats.ByCategory[f.Category]++
	}

	return stats
}

// String renders a one-line summary with categories sorted by name.
func (s Statistics) String() string {
	categories := make([]string, 0, len(s.ByCategory))
	for cat := range s.ByCategory {
		categories = append(categories, string(cat))
	}
	sort.Strings(categories)

	parts := make([]string, 0, len(categories))
	for _, cat := range categories {
		parts = append(parts, fmt.Sprintf("%s: %d", cat, s.ByCategory[scanner.FileCategory(cat)]))
	}

	out := fmt.Sprintf("%d files, %s", s.TotalFiles, formatBytes(s.TotalSize))
	if len(parts) > 0 {
		out += " (" + strings.Join(parts, ", ") + ")"
	}
	return out
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
