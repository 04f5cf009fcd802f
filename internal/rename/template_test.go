package rename

import (
	"reflect"
	"testing"
	"time"

	"github.com/filetidy/filetidy/internal/scanner"
)

func testFile(name, ext string) scanner.FileInfo {
	fullName := name
	if ext != "" {
		fullName = name + "." + ext
	}
	return scanner.FileInfo{
		Path:       "/library/" + fullName,
		Name:       name,
		Extension:  ext,
		FullName:   fullName,
		ModifiedAt: time.Date(2024, 7, 15, 10, 30, 45, 0, time.UTC),
		Category:   scanner.CategoryForExtension(ext),
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 7, 15, 10, 30, 45, 0, time.UTC)

	tests := []struct {
		format   string
		expected string
	}{
		{"YYYY-MM-DD", "2024-07-15"},
		{"YYYYMMDD", "20240715"},
		{"DD-MM-YYYY", "15-07-2024"},
		{"YYYY-MM-DD HH:mm:ss", "2024-07-15 10:30:45"},
		{"YYYY", "2024"},
	}

	for _, tt := range tests {
		if got := FormatDate(ts, tt.format); got != tt.expected {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.format, got, tt.expected)
		}
	}
}

func TestApplyTemplate(t *testing.T) {
	tests := []struct {
		name     string
		file     scanner.FileInfo
		pattern  string
		expected string
	}{
		{"Name and extension", testFile("photo", "jpg"), "{name}.{ext}", "photo.jpg"},
		{"Date prefix", testFile("photo", "jpg"), "{date}_{name}.{ext}", "2024-07-15_photo.jpg"},
		{"Original alias", testFile("photo", "jpg"), "{original}.{ext}", "photo.jpg"},
		{"Custom date format", testFile("photo", "jpg"), "{date:YYYYMMDD}_{name}.{ext}", "20240715_photo.jpg"},
		{"Year month day tokens", testFile("photo", "jpg"), "{year}-{month}-{day}_{name}.{ext}", "2024-07-15_photo.jpg"},
		{"Missing extension appended", testFile("photo", "jpg"), "{name}", "photo.jpg"},
		{"Wrong extension corrected", testFile("photo", "jpg"), "{name}.png", "photo.jpg"},
		{"Unknown placeholder stays literal", testFile("photo", "jpg"), "{unknown}_{name}.{ext}", "{unknown}_photo.jpg"},
		{"Static text", testFile("photo", "jpg"), "archive_{name}.{ext}", "archive_photo.jpg"},
		{"Invalid chars sanitized", testFile("photo", "jpg"), "a:b_{name}.{ext}", "a_b_photo.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := ApplyTemplate(tt.file, tt.pattern, DefaultDateFormat, false)
			if result != tt.expected {
				t.Errorf("ApplyTemplate(%q) = %q, want %q", tt.pattern, result, tt.expected)
			}
		})
	}
}

func TestApplyTemplateStripExisting(t *testing.T) {
	file := testFile("2024-01-01_photo", "jpg")

	result, _ := ApplyTemplate(file, "{date}_{name}.{ext}", DefaultDateFormat, true)
	if result != "2024-07-15_photo.jpg" {
		t.Errorf("stripped template = %q, want 2024-07-15_photo.jpg", result)
	}

	// Without stripping the old date stays embedded
	result, _ = ApplyTemplate(file, "{date}_{name}.{ext}", DefaultDateFormat, false)
	if result != "2024-07-15_2024-01-01_photo.jpg" {
		t.Errorf("unstripped template = %q, want 2024-07-15_2024-01-01_photo.jpg", result)
	}
}

func TestApplyTemplateMetadataSources(t *testing.T) {
	file := testFile("photo", "jpg")

	tests := []struct {
		pattern  string
		expected []string
	}{
		{"{name}.{ext}", []string{"filename"}},
		{"{date}_{name}.{ext}", []string{"filename", "file-date"}},
		{"{date}.{ext}", []string{"file-date"}},
		{"{date:YYYY}_{name}.{ext}", []string{"filename", "file-date"}},
		{"{year}_{name}.{ext}", []string{"filename", "file-date"}},
		{"static.{ext}", nil},
	}

	for _, tt := range tests {
		_, sources := ApplyTemplate(file, tt.pattern, DefaultDateFormat, false)
		if !reflect.DeepEqual(sources, tt.expected) {
			t.Errorf("sources for %q = %v, want %v", tt.pattern, sources, tt.expected)
		}
	}
}
