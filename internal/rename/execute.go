package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/filetidy/filetidy/internal/security"
)

// Executor applies proposals to the filesystem, strictly in list order and
// without any transaction: a failure on one file never undoes earlier
// renames. Reversal is the history store's job.
type Executor struct {
	// Validator gates every destination before a rename. Nil disables the
	// security checks.
	Validator *security.Validator

	// CleanupEmptyDirs removes source directories left empty by a folder
	// move.
	CleanupEmptyDirs bool
}

// NewExecutor returns an executor with destination validation against the
// given roots.
func NewExecutor(allowedRoots []string) *Executor {
	return &Executor{Validator: security.NewValidator(allowedRoots)}
}

// Execute processes each proposal and returns the aggregated result. Every
// proposal appears exactly once in the result list; failures are isolated
// to their file and the batch always runs to completion.
func (e *Executor) Execute(proposals []Proposal, opts *ExecuteOptions) *BatchResult {
	startedAt := time.Now()

	options := ExecuteOptions{}
	if opts != nil {
		options = *opts
	}

	var selected map[string]bool
	if options.ProposalIDs != nil {
		selected = make(map[string]bool, len(options.ProposalIDs))
		for _, id := range options.ProposalIDs {
			selected[id] = true
		}
	}

	preflightErrs := map[string]error{}
	aborted := false
	if options.AllOrNothing {
		preflightErrs = e.preflight(proposals, selected)
		aborted = len(preflightErrs) > 0
	}

	results := make([]FileResult, 0, len(proposals))
	emit := func(r FileResult) {
		results = append(results, r)
		if options.OnResult != nil {
			options.OnResult(r)
		}
	}

	for i := range proposals {
		p := &proposals[i]
		base := FileResult{
			ProposalID:   p.ID,
			OriginalPath: p.OriginalPath,
			OriginalName: p.OriginalName,
		}

		if selected != nil && !selected[p.ID] {
			base.Outcome = OutcomeSkipped
			base.Error = "Not selected"
			emit(base)
			continue
		}

		if p.Status != StatusReady {
			base.Outcome = OutcomeSkipped
			base.Error = fmt.Sprintf("Status: %s", p.Status)
			emit(base)
			continue
		}

		if p.OriginalName == p.ProposedName && !p.IsFolderMove {
			base.Outcome = OutcomeSkipped
			base.Error = "No change needed"
			emit(base)
			continue
		}

		if err, ok := preflightErrs[p.ID]; ok {
			base.Outcome = OutcomeFailed
			base.Error = (&Error{Kind: KindValidationFailed, Msg: "preflight failed", Err: err}).Error()
			emit(base)
			continue
		}
		if aborted {
			base.Outcome = OutcomeSkipped
			base.Error = "Aborted: preflight failed"
			emit(base)
			continue
		}

		if !options.AllOrNothing && e.Validator != nil {
			if err := e.Validator.CheckDestination(p.ProposedPath); err != nil {
				base.Outcome = OutcomeFailed
				base.Error = (&Error{Kind: KindValidationFailed, Msg: "destination rejected", Err: err}).Error()
				emit(base)
				continue
			}
		}

		if p.IsFolderMove {
			dir := filepath.Dir(p.ProposedPath)
			if _, err := os.Stat(dir); err != nil {
				if err := os.MkdirAll(dir, 0755); err != nil {
					base.Outcome = OutcomeFailed
					base.Error = (&Error{Kind: KindIO, Msg: "failed to create directory", Err: err}).Error()
					emit(base)
					continue
				}
			}
		}

		if err := os.Rename(p.OriginalPath, p.ProposedPath); err != nil {
			base.Outcome = OutcomeFailed
			base.Error = (&Error{Kind: KindRenameFailed, Err: err}).Error()
			emit(base)
			continue
		}

		if p.IsFolderMove && e.CleanupEmptyDirs {
			cleanupEmptyDirs(filepath.Dir(p.OriginalPath))
		}

		base.NewPath = p.ProposedPath
		base.NewName = p.ProposedName
		base.Outcome = OutcomeSuccess
		emit(base)
	}

	completedAt := time.Now()

	summary := BatchSummary{Total: len(results)}
	for _, r := range results {
		switch r.Outcome {
		case OutcomeSuccess:
			summary.Succeeded++
		case OutcomeFailed:
			summary.Failed++
		case OutcomeSkipped:
			summary.Skipped++
		}
	}

	return &BatchResult{
		Success:     summary.Failed == 0,
		Results:     results,
		Summary:     summary,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		DurationMS:  completedAt.Sub(startedAt).Milliseconds(),
	}
}

// preflight validates every proposal that would actually be renamed.
// Returned map holds the per-proposal failures; an empty map means the
// batch may proceed.
func (e *Executor) preflight(proposals []Proposal, selected map[string]bool) map[string]error {
	failures := map[string]error{}

	for i := range proposals {
		p := &proposals[i]
		if selected != nil && !selected[p.ID] {
			continue
		}
		if p.Status != StatusReady {
			continue
		}
		if p.OriginalName == p.ProposedName && !p.IsFolderMove {
			continue
		}

		if e.Validator != nil {
			if err := e.Validator.CheckDestination(p.ProposedPath); err != nil {
				failures[p.ID] = err
				continue
			}
		}

		// Re-check existence: the preview may be stale by execution time
		if p.ProposedPath != p.OriginalPath {
			if _, err := os.Stat(p.ProposedPath); err == nil {
				failures[p.ID] = fmt.Errorf("destination already exists: %s", p.ProposedPath)
			}
		}
	}

	return failures
}

// cleanupEmptyDirs removes dir and any newly-empty ancestors after a move.
func cleanupEmptyDirs(dir string) {
	for {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir || parent == "/" || parent == "." {
			return
		}
		dir = parent
	}
}
