package rename

import (
	"testing"

	"github.com/filetidy/filetidy/internal/scanner"
)

func TestApplyFolderPattern(t *testing.T) {
	file := testFile("photo", "jpg")

	tests := []struct {
		name     string
		pattern  string
		expected string
	}{
		{"Year and month", "{year}/{month}", "2024/07"},
		{"Full date path", "{year}/{month}/{day}", "2024/07/15"},
		{"Category", "{category}", "Images"},
		{"Extension", "{ext}", "jpg"},
		{"Extension alias", "{extension}", "jpg"},
		{"Mixed static", "sorted/{year}", "sorted/2024"},
		{"Backslashes normalized", "{year}\\{month}", "2024/07"},
		{"Slashes trimmed and collapsed", "/{year}//{month}/", "2024/07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyFolderPattern(file, tt.pattern)
			if result != tt.expected {
				t.Errorf("ApplyFolderPattern(%q) = %q, want %q", tt.pattern, result, tt.expected)
			}
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		category scanner.FileCategory
		expected string
	}{
		{scanner.CategoryImage, "Images"},
		{scanner.CategoryDocument, "Documents"},
		{scanner.CategoryVideo, "Videos"},
		{scanner.CategoryAudio, "Audio"},
		{scanner.CategoryArchive, "Archives"},
		{scanner.CategoryCode, "Code"},
		{scanner.CategoryData, "Data"},
		{scanner.CategoryOther, "Other"},
		{scanner.FileCategory("bogus"), "Other"},
	}

	for _, tt := range tests {
		if got := CategoryLabel(tt.category); got != tt.expected {
			t.Errorf("CategoryLabel(%s) = %q, want %q", tt.category, got, tt.expected)
		}
	}
}
