// Package history persists batch rename results so completed operations
// can be reviewed and undone. The engine itself never touches this store;
// the caller records results after execution.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/filetidy/filetidy/internal/rename"
)

// DefaultMaxEntries is how many operations are retained before the oldest
// are pruned.
const DefaultMaxEntries = 500

const storeVersion = "1.0"

// OperationType classifies a recorded operation.
type OperationType string

const (
	OpRename OperationType = "rename"
	OpMove   OperationType = "move"
)

// FileRecord is one file's outcome inside a history entry.
type FileRecord struct {
	OriginalPath    string `json:"originalPath"`
	NewPath         string `json:"newPath,omitempty"`
	IsMoveOperation bool   `json:"isMoveOperation"`
	Success         bool   `json:"success"`
	Error           string `json:"error,omitempty"`
}

// Summary mirrors the batch summary of the recorded operation.
type Summary struct {
	Succeeded int `json:"succeeded"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Entry is a single recorded operation, newest first in the store.
type Entry struct {
	ID            string        `json:"id"`
	Timestamp     time.Time     `json:"timestamp"`
	OperationType OperationType `json:"operationType"`
	FileCount     int           `json:"fileCount"`
	Summary       Summary       `json:"summary"`
	DurationMS    int64         `json:"durationMs"`
	Files         []FileRecord  `json:"files"`
	Undone        bool          `json:"undone"`
}

// UndoResult reports what an undo restored.
type UndoResult struct {
	Success       bool     `json:"success"`
	EntryID       string   `json:"entryId"`
	FilesRestored int      `json:"filesRestored"`
	FilesFailed   int      `json:"filesFailed"`
	Errors        []string `json:"errors"`
}

type storeFile struct {
	Version      string    `json:"version"`
	Entries      []Entry   `json:"entries"`
	LastModified time.Time `json:"lastModified"`
}

// Store is a JSON-backed history store. Writes are atomic (temp file +
// rename) and serialized by a process mutex; concurrent processes rely on
// the rename being atomic.
type Store struct {
	mu         sync.Mutex
	path       string
	maxEntries int
}

// DefaultPath returns the history file location under the user config dir.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "filetidy", "history.json"), nil
}

// NewStore creates a store at path. maxEntries <= 0 uses the default.
func NewStore(path string, maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{path: path, maxEntries: maxEntries}
}

// NewEntry builds a history entry from a batch result.
func NewEntry(result *rename.BatchResult) Entry {
	files := make([]FileRecord, 0, len(result.Results))
	opType := OpRename

	for _, r := range result.Results {
		isMove := r.NewPath != "" &&
			filepath.Dir(r.NewPath) != filepath.Dir(r.OriginalPath)
		if isMove && r.Outcome == rename.OutcomeSuccess {
			opType = OpMove
		}

		files = append(files, FileRecord{
			OriginalPath:    r.OriginalPath,
			NewPath:         r.NewPath,
			IsMoveOperation: isMove,
			Success:         r.Outcome == rename.OutcomeSuccess,
			Error:           r.Error,
		})
	}

	return Entry{
		ID:            uuid.NewString(),
		Timestamp:     time.Now(),
		OperationType: opType,
		FileCount:     len(files),
		Summary: Summary{
			Succeeded: result.Summary.Succeeded,
			Skipped:   result.Summary.Skipped,
			Failed:    result.Summary.Failed,
		},
		DurationMS: result.DurationMS,
		Files:      files,
	}
}

// Record prepends an entry built from result and prunes old entries.
func (s *Store) Record(result *rename.BatchResult) (*Entry, error) {
	entry := NewEntry(result)

	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load()
	if err != nil {
		return nil, err
	}

	store.Entries = append([]Entry{entry}, store.Entries...)
	if len(store.Entries) > s.maxEntries {
		store.Entries = store.Entries[:s.maxEntries]
	}

	if err := s.save(store); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns all entries, newest first.
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load()
	if err != nil {
		return nil, err
	}
	return store.Entries, nil
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (*Entry, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("history entry not found: %s", id)
}

// CanUndo reports whether the entry exists, is not already undone, and
// restored at least one file successfully.
func (s *Store) CanUndo(id string) (bool, error) {
	entry, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if entry.Undone {
		return false, nil
	}
	for _, f := range entry.Files {
		if f.Success && f.NewPath != "" {
			return true, nil
		}
	}
	return false, nil
}

// Undo moves every successfully renamed file of the entry back to its
// original path. Failures are collected per file; the entry is marked
// undone when at least one file was restored.
func (s *Store) Undo(id string) (*UndoResult, error) {
	entry, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if entry.Undone {
		return nil, fmt.Errorf("operation already undone: %s", id)
	}

	result := &UndoResult{EntryID: id, Errors: []string{}}

	for _, f := range entry.Files {
		if !f.Success || f.NewPath == "" {
			continue
		}

		if _, err := os.Stat(f.NewPath); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("file not found: %s", f.NewPath))
			result.FilesFailed++
			continue
		}

		if err := os.Rename(f.NewPath, f.OriginalPath); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to restore %s: %v", f.NewPath, err))
			result.FilesFailed++
			continue
		}
		result.FilesRestored++
	}

	if result.FilesRestored > 0 {
		if err := s.markUndone(id); err != nil {
			return result, err
		}
	}

	result.Success = result.FilesFailed == 0 && result.FilesRestored > 0
	return result, nil
}

// Clear removes all entries.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(&storeFile{Version: storeVersion, Entries: []Entry{}})
}

func (s *Store) markUndone(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load()
	if err != nil {
		return err
	}
	for i := range store.Entries {
		if store.Entries[i].ID == id {
			store.Entries[i].Undone = true
			break
		}
	}
	return s.save(store)
}

func (s *Store) load() (*storeFile, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &storeFile{Version: storeVersion, Entries: []Entry{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var store storeFile
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	if store.Entries == nil {
		store.Entries = []Entry{}
	}
	return &store, nil
}

func (s *Store) save(store *storeFile) error {
	store.Version = storeVersion
	store.LastModified = time.Now()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace history: %w", err)
	}
	return nil
}
