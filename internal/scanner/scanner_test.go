package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanFlat(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg", "b.txt", ".hidden")

	result, err := Scan(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if result.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2 (hidden file must be skipped)", result.TotalCount)
	}
	if result.Truncated {
		t.Error("small scan flagged as truncated")
	}

	byName := map[string]FileInfo{}
	for _, f := range result.Files {
		byName[f.FullName] = f
	}

	a, ok := byName["a.jpg"]
	if !ok {
		t.Fatal("a.jpg missing from results")
	}
	if a.Name != "a" || a.Extension != "jpg" {
		t.Errorf("a.jpg split = (%q, %q)", a.Name, a.Extension)
	}
	if a.Category != CategoryImage {
		t.Errorf("a.jpg category = %s, want image", a.Category)
	}
	if a.RelativePath != "a.jpg" {
		t.Errorf("relative path = %q, want a.jpg", a.RelativePath)
	}
	if a.Size != 1 {
		t.Errorf("size = %d, want 1", a.Size)
	}
	if a.ModifiedAt.IsZero() {
		t.Error("ModifiedAt not populated")
	}
}

func TestScanRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "top.txt", filepath.Join("sub", "nested.png"), filepath.Join(".git", "config"))

	flat, err := Scan(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if flat.TotalCount != 1 {
		t.Errorf("non-recursive count = %d, want 1", flat.TotalCount)
	}

	deep, err := Scan(context.Background(), dir, Options{Recursive: true})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if deep.TotalCount != 2 {
		t.Errorf("recursive count = %d, want 2 (hidden dir must be skipped)", deep.TotalCount)
	}

	for _, f := range deep.Files {
		if f.FullName == "nested.png" {
			want := filepath.Join("sub", "nested.png")
			if f.RelativePath != want {
				t.Errorf("nested relative path = %q, want %q", f.RelativePath, want)
			}
		}
	}
}

func TestScanExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg", "b.JPG", "c.txt")

	result, err := Scan(context.Background(), dir, Options{Extensions: []string{"jpg"}})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if result.TotalCount != 2 {
		t.Errorf("filtered count = %d, want 2 (filter is case-insensitive)", result.TotalCount)
	}

	// Leading dots in the filter are tolerated
	result, err = Scan(context.Background(), dir, Options{Extensions: []string{".txt"}})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.TotalCount != 1 {
		t.Errorf("dotted filter count = %d, want 1", result.TotalCount)
	}
}

func TestScanRejectsBadPaths(t *testing.T) {
	if _, err := Scan(context.Background(), "", Options{}); err == nil {
		t.Error("empty path accepted")
	}
	if _, err := Scan(context.Background(), "/definitely/not/there", Options{}); err == nil {
		t.Error("nonexistent path accepted")
	}

	dir := t.TempDir()
	writeFiles(t, dir, "a.txt")
	if _, err := Scan(context.Background(), filepath.Join(dir, "a.txt"), Options{}); err == nil {
		t.Error("regular file accepted as scan root")
	}
}

func TestScanCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Scan(ctx, dir, Options{}); err != context.Canceled {
		t.Errorf("cancelled scan returned %v, want context.Canceled", err)
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantExt  string
	}{
		{"photo.jpg", "photo", "jpg"},
		{"archive.tar.gz", "archive.tar", "gz"},
		{"noext", "noext", ""},
		{".gitignore", ".gitignore", ""},
		{".config.yml", ".config", "yml"},
	}

	for _, tt := range tests {
		name, ext := SplitName(tt.input)
		if name != tt.wantName || ext != tt.wantExt {
			t.Errorf("SplitName(%q) = (%q, %q), want (%q, %q)",
				tt.input, name, ext, tt.wantName, tt.wantExt)
		}
	}
}

func TestCategoryForExtension(t *testing.T) {
	tests := []struct {
		ext      string
		expected FileCategory
	}{
		{"jpg", CategoryImage},
		{"JPG", CategoryImage},
		{"pdf", CategoryDocument},
		{"mkv", CategoryVideo},
		{"flac", CategoryAudio},
		{"zip", CategoryArchive},
		{"go", CategoryCode},
		{"sqlite", CategoryData},
		{"xyz", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		if got := CategoryForExtension(tt.ext); got != tt.expected {
			t.Errorf("CategoryForExtension(%q) = %s, want %s", tt.ext, got, tt.expected)
		}
	}
}
