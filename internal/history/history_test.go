package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/filetidy/filetidy/internal/rename"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "history.json"), 0)
}

func batchResult(results ...rename.FileResult) *rename.BatchResult {
	summary := rename.BatchSummary{Total: len(results)}
	for _, r := range results {
		switch r.Outcome {
		case rename.OutcomeSuccess:
			summary.Succeeded++
		case rename.OutcomeFailed:
			summary.Failed++
		case rename.OutcomeSkipped:
			summary.Skipped++
		}
	}
	return &rename.BatchResult{
		Success: summary.Failed == 0,
		Results: results,
		Summary: summary,
	}
}

func TestRecordAndList(t *testing.T) {
	store := testStore(t)

	result := batchResult(rename.FileResult{
		OriginalPath: "/lib/a.txt",
		NewPath:      "/lib/b.txt",
		Outcome:      rename.OutcomeSuccess,
	})

	entry, err := store.Record(result)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if entry.ID == "" {
		t.Error("entry has no id")
	}
	if entry.OperationType != OpRename {
		t.Errorf("operation type = %s, want rename", entry.OperationType)
	}
	if entry.FileCount != 1 || entry.Summary.Succeeded != 1 {
		t.Errorf("entry = %+v", entry)
	}

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != entry.ID {
		t.Errorf("entries = %+v", entries)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := testStore(t)

	first, _ := store.Record(batchResult())
	second, _ := store.Record(batchResult())

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Error("entries not newest-first")
	}
}

func TestRecordDetectsMove(t *testing.T) {
	store := testStore(t)

	entry, err := store.Record(batchResult(rename.FileResult{
		OriginalPath: "/lib/a.txt",
		NewPath:      "/lib/sorted/a.txt",
		Outcome:      rename.OutcomeSuccess,
	}))
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if entry.OperationType != OpMove {
		t.Errorf("operation type = %s, want move", entry.OperationType)
	}
	if !entry.Files[0].IsMoveOperation {
		t.Error("file record not flagged as move")
	}
}

func TestPrune(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.json"), 2)

	store.Record(batchResult())
	store.Record(batchResult())
	third, _ := store.Record(batchResult())

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries after prune = %d, want 2", len(entries))
	}
	if entries[0].ID != third.ID {
		t.Error("newest entry pruned instead of oldest")
	}
}

func TestGet(t *testing.T) {
	store := testStore(t)
	entry, _ := store.Record(batchResult())

	got, err := store.Get(entry.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != entry.ID {
		t.Errorf("got %s, want %s", got.ID, entry.ID)
	}

	if _, err := store.Get("nope"); err == nil {
		t.Error("unknown id accepted")
	}
}

func TestUndoRestoresFiles(t *testing.T) {
	store := testStore(t)
	dir := t.TempDir()

	orig := filepath.Join(dir, "a.txt")
	renamed := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(renamed, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	entry, _ := store.Record(batchResult(rename.FileResult{
		OriginalPath: orig,
		NewPath:      renamed,
		Outcome:      rename.OutcomeSuccess,
	}))

	ok, err := store.CanUndo(entry.ID)
	if err != nil || !ok {
		t.Fatalf("CanUndo = %v, %v", ok, err)
	}

	result, err := store.Undo(entry.ID)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !result.Success || result.FilesRestored != 1 {
		t.Errorf("undo result = %+v", result)
	}
	if _, err := os.Stat(orig); err != nil {
		t.Error("original file not restored")
	}
	if _, err := os.Stat(renamed); !os.IsNotExist(err) {
		t.Error("renamed file still present")
	}

	got, _ := store.Get(entry.ID)
	if !got.Undone {
		t.Error("entry not marked undone")
	}
	if ok, _ := store.CanUndo(entry.ID); ok {
		t.Error("CanUndo still true after undo")
	}
	if _, err := store.Undo(entry.ID); err == nil {
		t.Error("second undo accepted")
	}
}

func TestUndoMissingFile(t *testing.T) {
	store := testStore(t)
	dir := t.TempDir()

	entry, _ := store.Record(batchResult(rename.FileResult{
		OriginalPath: filepath.Join(dir, "a.txt"),
		NewPath:      filepath.Join(dir, "gone.txt"),
		Outcome:      rename.OutcomeSuccess,
	}))

	result, err := store.Undo(entry.ID)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if result.Success {
		t.Error("undo reported success with a missing file")
	}
	if result.FilesFailed != 1 || len(result.Errors) != 1 {
		t.Errorf("undo result = %+v", result)
	}

	// Nothing was restored, so the entry stays undoable
	got, _ := store.Get(entry.ID)
	if got.Undone {
		t.Error("entry marked undone although nothing was restored")
	}
}

func TestUndoSkipsFailedRecords(t *testing.T) {
	store := testStore(t)
	dir := t.TempDir()

	renamed := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(renamed, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	entry, _ := store.Record(batchResult(
		rename.FileResult{
			OriginalPath: filepath.Join(dir, "a.txt"),
			NewPath:      renamed,
			Outcome:      rename.OutcomeSuccess,
		},
		rename.FileResult{
			OriginalPath: filepath.Join(dir, "c.txt"),
			Outcome:      rename.OutcomeFailed,
			Error:        "boom",
		},
	))

	result, err := store.Undo(entry.ID)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if result.FilesRestored != 1 || result.FilesFailed != 0 {
		t.Errorf("undo result = %+v", result)
	}
}

func TestClear(t *testing.T) {
	store := testStore(t)
	store.Record(batchResult())

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries after clear = %d, want 0", len(entries))
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := testStore(t)

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List on missing file failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}
