package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/filetidy/filetidy/internal/rename"
)

// rowStyle picks the style for a proposal row; folder moves get their
// own color so they stand out from in-place renames.
func rowStyle(p rename.Proposal) lipgloss.Style {
	switch {
	case p.Status == rename.StatusReady && p.IsFolderMove:
		return MoveStyle
	case p.Status == rename.StatusReady:
		return ReadyStyle
	case p.Status == rename.StatusConflict:
		return ConflictStyle
	case p.Status == rename.StatusInvalidName:
		return InvalidStyle
	default:
		return NoChangeStyle
	}
}

// RenderPreview formats a preview as a styled table for terminal output.
func RenderPreview(preview *rename.Preview) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render(fmt.Sprintf("RENAME PREVIEW — %s", preview.TemplateUsed)))
	sb.WriteString("\n")

	nameWidth := len("Original")
	for _, p := range preview.Proposals {
		if len(p.OriginalName) > nameWidth {
			nameWidth = len(p.OriginalName)
		}
	}
	if nameWidth > 40 {
		nameWidth = 40
	}

	header := fmt.Sprintf("%-10s  %-*s  %s", "STATUS", nameWidth, "Original", "Proposed")
	sb.WriteString(HeaderStyle.Render(header))
	sb.WriteString("\n")

	for _, p := range preview.Proposals {
		style := rowStyle(p)

		target := p.ProposedName
		if p.IsFolderMove {
			target = p.DestinationFolder + "/" + p.ProposedName
		}

		row := fmt.Sprintf("%-10s  %-*s  %s",
			strings.ToUpper(string(p.Status)), nameWidth, truncate(p.OriginalName, nameWidth), target)
		sb.WriteString(style.Render(row))
		sb.WriteString("\n")

		for _, issue := range p.Issues {
			sb.WriteString(MutedStyle.Render(fmt.Sprintf("  %s: %s", issue.Code, issue.Message)))
			sb.WriteString("\n")
		}
		if p.Conflict != nil && p.Conflict.ExistingPath != "" {
			sb.WriteString(MutedStyle.Render("  exists: " + p.Conflict.ExistingPath))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(RenderSummary(preview.Summary))
	sb.WriteString("\n")

	return sb.String()
}

// RenderSummary formats the status summary line.
func RenderSummary(s rename.PreviewSummary) string {
	parts := []string{
		fmt.Sprintf("total %d", s.Total),
		ReadyStyle.Render(fmt.Sprintf("ready %d", s.Ready)),
		ConflictStyle.Render(fmt.Sprintf("conflicts %d", s.Conflicts)),
		NoChangeStyle.Render(fmt.Sprintf("no-change %d", s.NoChange)),
		InvalidStyle.Render(fmt.Sprintf("invalid %d", s.InvalidName)),
	}
	return strings.Join(parts, "  ")
}

// RenderBatchResult formats an execution result for terminal output.
func RenderBatchResult(result *rename.BatchResult) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("RENAME RESULTS"))
	sb.WriteString("\n")

	for _, r := range result.Results {
		switch r.Outcome {
		case rename.OutcomeSuccess:
			sb.WriteString(ReadyStyle.Render(fmt.Sprintf("✓ %s -> %s", r.OriginalName, r.NewName)))
		case rename.OutcomeFailed:
			sb.WriteString(ConflictStyle.Render(fmt.Sprintf("✗ %s: %s", r.OriginalName, r.Error)))
		case rename.OutcomeSkipped:
			sb.WriteString(MutedStyle.Render(fmt.Sprintf("- %s (%s)", r.OriginalName, r.Error)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%d renamed, %d failed, %d skipped in %dms\n",
		result.Summary.Succeeded, result.Summary.Failed, result.Summary.Skipped, result.DurationMS))

	return sb.String()
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}

	keep := width - 3
	if width <= 3 {
		keep = width
	}
	for keep > 0 && !utf8.RuneStart(s[keep]) {
		keep--
	}

	if width <= 3 {
		return s[:keep]
	}
	return s[:keep] + "..."
}
