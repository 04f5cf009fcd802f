package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/filetidy/filetidy/internal/rename"
)

func TestRowStyle(t *testing.T) {
	tests := []struct {
		name     string
		proposal rename.Proposal
		expected lipgloss.Color
	}{
		{"Ready rename", rename.Proposal{Status: rename.StatusReady}, ColorSuccess},
		{"Ready move", rename.Proposal{Status: rename.StatusReady, IsFolderMove: true}, ColorInfo},
		{"Conflict", rename.Proposal{Status: rename.StatusConflict}, ColorError},
		{"Invalid name", rename.Proposal{Status: rename.StatusInvalidName}, ColorWarning},
		{"No change", rename.Proposal{Status: rename.StatusNoChange}, ColorMuted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := rowStyle(tt.proposal)
			if got := style.GetForeground(); got != lipgloss.TerminalColor(tt.expected) {
				t.Errorf("rowStyle foreground = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRenderPreview(t *testing.T) {
	preview := &rename.Preview{
		TemplateUsed: "{date}_{name}.{ext}",
		Proposals: []rename.Proposal{
			{
				OriginalName: "photo.jpg",
				ProposedName: "2024-07-15_photo.jpg",
				Status:       rename.StatusReady,
				ActionType:   rename.ActionRename,
			},
			{
				OriginalName:      "doc.pdf",
				ProposedName:      "doc.pdf",
				Status:            rename.StatusReady,
				ActionType:        rename.ActionMove,
				IsFolderMove:      true,
				DestinationFolder: "2024/07",
			},
			{
				OriginalName: "clash.txt",
				ProposedName: "clash.txt",
				Status:       rename.StatusConflict,
				ActionType:   rename.ActionConflict,
				Issues: []rename.Issue{
					{Code: "FILE_EXISTS", Message: "A file with this name already exists"},
				},
				Conflict: &rename.Conflict{
					Type:         "file-exists",
					ExistingPath: "/library/clash.txt",
				},
			},
		},
		Summary: rename.PreviewSummary{Total: 3, Ready: 2, Conflicts: 1},
	}

	out := RenderPreview(preview)

	for _, want := range []string{
		"2024-07-15_photo.jpg",
		"2024/07/doc.pdf",
		"FILE_EXISTS",
		"/library/clash.txt",
		"total 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("preview output missing %q", want)
		}
	}
}

func TestRenderBatchResult(t *testing.T) {
	result := &rename.BatchResult{
		Results: []rename.FileResult{
			{OriginalName: "a.txt", NewName: "a2.txt", Outcome: rename.OutcomeSuccess},
			{OriginalName: "b.txt", Outcome: rename.OutcomeFailed, Error: "boom"},
			{OriginalName: "c.txt", Outcome: rename.OutcomeSkipped, Error: "Not selected"},
		},
		Summary:    rename.BatchSummary{Total: 3, Succeeded: 1, Failed: 1, Skipped: 1},
		DurationMS: 12,
	}

	out := RenderBatchResult(result)

	for _, want := range []string{"a2.txt", "boom", "Not selected", "1 renamed, 1 failed, 1 skipped"} {
		if !strings.Contains(out, want) {
			t.Errorf("batch output missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a-much-longer-name", 10, "a-much-..."},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.width); got != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
		}
	}
}

func TestTruncateMultibyte(t *testing.T) {
	long := strings.Repeat("é", 40)

	for _, width := range []int{2, 3, 10, 11} {
		got := truncate(long, width)
		if len(got) > width {
			t.Errorf("truncate(.., %d) length = %d", width, len(got))
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(.., %d) produced invalid UTF-8: %q", width, got)
		}
	}
}
