// Package rename is the proposal and execution engine: it expands naming
// templates against scanned file descriptors, normalizes and sanitizes the
// results, detects conflicts, and applies the selected renames with
// per-file failure isolation.
package rename

import "time"

// Status is the state of a proposal after preview generation. Every
// proposal starts Ready and can only move to one of the terminal states
// during assembly; proposals are never mutated afterwards.
type Status string

const (
	StatusReady       Status = "ready"
	StatusConflict    Status = "conflict"
	StatusMissingData Status = "missing-data" // reserved for metadata-dependent templates
	StatusNoChange    Status = "no-change"
	StatusInvalidName Status = "invalid-name"
)

// ActionType is the UI-facing classification of a proposal, derived from
// the status and the move flag.
type ActionType string

const (
	ActionRename   ActionType = "rename"
	ActionMove     ActionType = "move"
	ActionNoChange ActionType = "no-change"
	ActionConflict ActionType = "conflict"
	ActionError    ActionType = "error"
)

// ReorganizationMode determines whether files stay in place or are moved
// under a folder pattern.
type ReorganizationMode string

const (
	ModeRenameOnly ReorganizationMode = "rename-only"
	ModeOrganize   ReorganizationMode = "organize"
)

// CaseStyle selects the filename case normalization applied after template
// expansion.
type CaseStyle string

const (
	CaseNone       CaseStyle = "none"
	CaseLowercase  CaseStyle = "lowercase"
	CaseUppercase  CaseStyle = "uppercase"
	CaseCapitalize CaseStyle = "capitalize"
	CaseTitle      CaseStyle = "title-case"
	CaseKebab      CaseStyle = "kebab-case"
	CaseSnake      CaseStyle = "snake-case"
	CaseCamel      CaseStyle = "camel-case"
	CasePascal     CaseStyle = "pascal-case"
)

// ValidCaseStyle reports whether s is one of the recognized styles.
func ValidCaseStyle(s CaseStyle) bool {
	switch s {
	case CaseNone, CaseLowercase, CaseUppercase, CaseCapitalize, CaseTitle,
		CaseKebab, CaseSnake, CaseCamel, CasePascal:
		return true
	}
	return false
}

// Issue is a problem found with a proposal, keyed by a stable code
// (INVALID_NAME, DUPLICATE_NAME, FILE_EXISTS).
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Conflict carries the details of a conflict-status proposal.
type Conflict struct {
	Type                  string `json:"type"` // "duplicate-name" or "file-exists"
	Message               string `json:"message"`
	ConflictingProposalID string `json:"conflictingProposalId,omitempty"`
	ExistingPath          string `json:"existingPath,omitempty"`
}

// Proposal is a single file's planned rename/move with its validation
// status. Proposals are value types owned by the caller between preview
// generation and execution.
type Proposal struct {
	ID                string     `json:"id"`
	OriginalPath      string     `json:"originalPath"`
	OriginalName      string     `json:"originalName"`
	ProposedName      string     `json:"proposedName"`
	ProposedPath      string     `json:"proposedPath"`
	Status            Status     `json:"status"`
	Issues            []Issue    `json:"issues"`
	MetadataSources   []string   `json:"metadataSources,omitempty"`
	IsFolderMove      bool       `json:"isFolderMove"`
	DestinationFolder string     `json:"destinationFolder,omitempty"`
	ActionType        ActionType `json:"actionType"`
	Conflict          *Conflict  `json:"conflict,omitempty"`
}

// PreviewSummary aggregates proposal counts by status. Counts always sum
// to Total.
type PreviewSummary struct {
	Total       int `json:"total"`
	Ready       int `json:"ready"`
	Conflicts   int `json:"conflicts"`
	MissingData int `json:"missingData"`
	NoChange    int `json:"noChange"`
	InvalidName int `json:"invalidName"`
}

// ActionSummary aggregates proposal counts by action type.
type ActionSummary struct {
	RenameCount   int `json:"renameCount"`
	MoveCount     int `json:"moveCount"`
	NoChangeCount int `json:"noChangeCount"`
	ConflictCount int `json:"conflictCount"`
	ErrorCount    int `json:"errorCount"`
}

// Preview is the full result of preview generation.
type Preview struct {
	Proposals          []Proposal         `json:"proposals"`
	Summary            PreviewSummary     `json:"summary"`
	ActionSummary      ActionSummary      `json:"actionSummary"`
	GeneratedAt        time.Time          `json:"generatedAt"`
	TemplateUsed       string             `json:"templateUsed"`
	ReorganizationMode ReorganizationMode `json:"reorganizationMode"`
}

// OrganizeOptions configures organize mode.
type OrganizeOptions struct {
	DestinationDirectory string `json:"destinationDirectory,omitempty"`
	FolderPattern        string `json:"folderPattern"`
	PreserveContext      bool   `json:"preserveContext"`
	ContextDepth         int    `json:"contextDepth"`
}

// PreviewOptions configures preview generation. FolderPattern and
// BaseDirectory are the legacy equivalents of organize mode and are still
// honored when OrganizeOptions is absent.
type PreviewOptions struct {
	DateFormat            string             `json:"dateFormat,omitempty"`
	ReorganizationMode    ReorganizationMode `json:"reorganizationMode,omitempty"`
	OrganizeOptions       *OrganizeOptions   `json:"organizeOptions,omitempty"`
	FolderPattern         string             `json:"folderPattern,omitempty"`
	BaseDirectory         string             `json:"baseDirectory,omitempty"`
	CaseStyle             CaseStyle          `json:"caseStyle,omitempty"`
	StripExistingPatterns bool               `json:"stripExistingPatterns"`
}

// Outcome is the per-file execution result classification.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// FileResult is the outcome of executing one proposal.
type FileResult struct {
	ProposalID   string  `json:"proposalId"`
	OriginalPath string  `json:"originalPath"`
	OriginalName string  `json:"originalName"`
	NewPath      string  `json:"newPath,omitempty"`
	NewName      string  `json:"newName,omitempty"`
	Outcome      Outcome `json:"outcome"`
	Error        string  `json:"error,omitempty"`
}

// BatchSummary aggregates execution outcomes.
type BatchSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// BatchResult is the full result of a batch execution. Success is true
// iff no file failed.
type BatchResult struct {
	Success     bool         `json:"success"`
	Results     []FileResult `json:"results"`
	Summary     BatchSummary `json:"summary"`
	StartedAt   time.Time    `json:"startedAt"`
	CompletedAt time.Time    `json:"completedAt"`
	DurationMS  int64        `json:"durationMs"`
}

// ExecuteOptions configures batch execution.
type ExecuteOptions struct {
	// ProposalIDs limits execution to the listed proposals; nil processes
	// all of them.
	ProposalIDs []string `json:"proposalIds,omitempty"`

	// AllOrNothing runs a preflight over every selected proposal and
	// refuses to start renaming unless all of them pass. It does not roll
	// back renames that already happened; undo is the history store's job.
	AllOrNothing bool `json:"allOrNothing,omitempty"`

	// OnResult, when set, is invoked after each file is processed. Used by
	// callers to drive progress display.
	OnResult func(FileResult) `json:"-"`
}
