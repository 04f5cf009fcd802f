package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/filetidy/filetidy/internal/scanner"
)

// Issue codes attached to proposals.
const (
	CodeInvalidName   = "INVALID_NAME"
	CodeDuplicateName = "DUPLICATE_NAME"
	CodeFileExists    = "FILE_EXISTS"
)

// Conflict types attached to proposals.
const (
	ConflictDuplicateName = "duplicate-name"
	ConflictFileExists    = "file-exists"
)

// GeneratePreview builds one proposal per file and runs conflict
// detection. The returned preview always contains every input file with a
// status; nothing destructive happens here.
func GeneratePreview(files []scanner.FileInfo, templatePattern string, opts *PreviewOptions) (*Preview, error) {
	if strings.TrimSpace(templatePattern) == "" {
		return nil, previewError("template pattern is empty")
	}

	options := PreviewOptions{}
	if opts != nil {
		options = *opts
	}
	if options.CaseStyle == "" {
		options.CaseStyle = CaseNone
	}
	if !ValidCaseStyle(options.CaseStyle) {
		return nil, previewError("unknown case style: %s", options.CaseStyle)
	}

	dateFormat := options.DateFormat
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}

	mode, folderPattern, baseDir, organize := resolveMode(options)

	proposals := make([]Proposal, 0, len(files))
	byDestination := map[string][]int{} // lowercased destination -> proposal indexes

	for _, file := range files {
		p := buildProposal(file, templatePattern, dateFormat, options, mode, folderPattern, baseDir, organize)

		key := strings.ToLower(p.ProposedPath)
		byDestination[key] = append(byDestination[key], len(proposals))
		proposals = append(proposals, p)
	}

	markDuplicateConflicts(proposals, byDestination)
	markFilesystemConflicts(proposals)

	return &Preview{
		Proposals:          proposals,
		Summary:            summarize(proposals),
		ActionSummary:      summarizeActions(proposals),
		GeneratedAt:        time.Now(),
		TemplateUsed:       templatePattern,
		ReorganizationMode: mode,
	}, nil
}

// resolveMode picks the effective reorganization settings, honoring the
// legacy folderPattern/baseDirectory fields when no organize options are
// given.
func resolveMode(options PreviewOptions) (mode ReorganizationMode, folderPattern, baseDir string, organize *OrganizeOptions) {
	if options.ReorganizationMode == ModeOrganize && options.OrganizeOptions != nil {
		org := options.OrganizeOptions
		return ModeOrganize, org.FolderPattern, org.DestinationDirectory, org
	}

	// Legacy fields imply organize mode even when the mode says otherwise
	if options.FolderPattern != "" {
		return ModeOrganize, options.FolderPattern, options.BaseDirectory, nil
	}

	return ModeRenameOnly, "", "", nil
}

func buildProposal(file scanner.FileInfo, templatePattern, dateFormat string, options PreviewOptions,
	mode ReorganizationMode, folderPattern, baseDir string, organize *OrganizeOptions) Proposal {

	rawName, sources := ApplyTemplate(file, templatePattern, dateFormat, options.StripExistingPatterns)
	proposedName := NormalizeFilename(rawName, options.CaseStyle)

	sourceDir := filepath.Dir(file.Path)

	destDir := sourceDir
	isMove := false
	destinationFolder := ""

	if mode == ModeOrganize && folderPattern != "" {
		folderPath := ApplyFolderPattern(file, folderPattern)
		if organize != nil && organize.PreserveContext {
			if ctx := contextSegments(file.RelativePath, organize.ContextDepth); ctx != "" {
				folderPath = folderPath + "/" + ctx
			}
		}

		base := baseDir
		if base == "" {
			base = sourceDir
		}
		destDir = filepath.Join(base, filepath.FromSlash(folderPath))

		if destDir != sourceDir {
			isMove = true
			destinationFolder = folderPath
		}
	}

	proposedPath := proposedName
	if destDir != "" && destDir != "." {
		proposedPath = filepath.Join(destDir, proposedName)
	}

	p := Proposal{
		ID:                uuid.NewString(),
		OriginalPath:      file.Path,
		OriginalName:      file.FullName,
		ProposedName:      proposedName,
		ProposedPath:      proposedPath,
		Status:            StatusReady,
		Issues:            []Issue{},
		MetadataSources:   sources,
		IsFolderMove:      isMove,
		DestinationFolder: destinationFolder,
		ActionType:        ActionRename,
	}
	if isMove {
		p.ActionType = ActionMove
	}

	if proposedName == file.FullName && !isMove {
		p.Status = StatusNoChange
		p.ActionType = ActionNoChange
	}

	// Defense in depth: re-check the sanitized name directly
	if !IsValidFilename(proposedName) {
		p.Issues = append(p.Issues, Issue{
			Code:    CodeInvalidName,
			Message: "Proposed filename is not valid",
		})
		p.Status = StatusInvalidName
		p.ActionType = ActionError
	}

	return p
}

// contextSegments returns up to depth trailing directory segments of the
// file's relative path, used to preserve source-folder context under the
// destination pattern.
func contextSegments(relativePath string, depth int) string {
	if depth <= 0 {
		return ""
	}

	dir := filepath.ToSlash(filepath.Dir(relativePath))
	if dir == "." || dir == "" {
		return ""
	}

	segments := strings.Split(dir, "/")
	if len(segments) > depth {
		segments = segments[len(segments)-depth:]
	}
	return strings.Join(segments, "/")
}

// markDuplicateConflicts flags every still-Ready member of a destination
// group with more than one proposal, cross-referencing another member.
func markDuplicateConflicts(proposals []Proposal, byDestination map[string][]int) {
	for key, indexes := range byDestination {
		if len(indexes) < 2 {
			continue
		}

		firstID := proposals[indexes[0]].ID
		for pos, idx := range indexes {
			p := &proposals[idx]
			if p.Status != StatusReady {
				continue
			}

			other := firstID
			if pos == 0 {
				other = proposals[indexes[1]].ID
			}

			p.Status = StatusConflict
			p.ActionType = ActionConflict
			p.Issues = append(p.Issues, Issue{
				Code:    CodeDuplicateName,
				Message: fmt.Sprintf("Another file would have the same name (%s)", key),
			})
			p.Conflict = &Conflict{
				Type:                  ConflictDuplicateName,
				Message:               "Another file in this batch would have the same name",
				ConflictingProposalID: other,
			}
		}
	}
}

// markFilesystemConflicts flags Ready proposals whose destination already
// exists on disk and is not the source itself.
func markFilesystemConflicts(proposals []Proposal) {
	for i := range proposals {
		p := &proposals[i]
		if p.Status != StatusReady {
			continue
		}
		if p.ProposedPath == p.OriginalPath {
			continue
		}

		if _, err := os.Stat(p.ProposedPath); err == nil {
			p.Status = StatusConflict
			p.ActionType = ActionConflict
			p.Issues = append(p.Issues, Issue{
				Code:    CodeFileExists,
				Message: "A file with this name already exists",
			})
			p.Conflict = &Conflict{
				Type:         ConflictFileExists,
				Message:      "A file already exists at the proposed path",
				ExistingPath: p.ProposedPath,
			}
		}
	}
}

// summarize recomputes status counts from scratch; summaries are never
// maintained incrementally.
func summarize(proposals []Proposal) PreviewSummary {
	s := PreviewSummary{Total: len(proposals)}
	for _, p := range proposals {
		switch p.Status {
		case StatusReady:
			s.Ready++
		case StatusConflict:
			s.Conflicts++
		case StatusMissingData:
			s.MissingData++
		case StatusNoChange:
			s.NoChange++
		case StatusInvalidName:
			s.InvalidName++
		}
	}
	return s
}

func summarizeActions(proposals []Proposal) ActionSummary {
	s := ActionSummary{}
	for _, p := range proposals {
		switch p.ActionType {
		case ActionRename:
			s.RenameCount++
		case ActionMove:
			s.MoveCount++
		case ActionNoChange:
			s.NoChangeCount++
		case ActionConflict:
			s.ConflictCount++
		case ActionError:
			s.ErrorCount++
		}
	}
	return s
}
