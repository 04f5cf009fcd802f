package rename

import (
	"strings"

	"github.com/filetidy/filetidy/internal/scanner"
)

// categoryLabels are the display names used for {category} in folder
// patterns.
var categoryLabels = map[scanner.FileCategory]string{
	scanner.CategoryImage:    "Images",
	scanner.CategoryDocument: "Documents",
	scanner.CategoryVideo:    "Videos",
	scanner.CategoryAudio:    "Audio",
	scanner.CategoryArchive:  "Archives",
	scanner.CategoryCode:     "Code",
	scanner.CategoryData:     "Data",
	scanner.CategoryOther:    "Other",
}

// CategoryLabel returns the display label for a file category.
func CategoryLabel(cat scanner.FileCategory) string {
	if label, ok := categoryLabels[cat]; ok {
		return label
	}
	return categoryLabels[scanner.CategoryOther]
}

// ApplyFolderPattern expands a folder pattern into a relative destination
// path. Separators are normalized to forward slashes, leading/trailing
// slashes trimmed and runs collapsed. Segments are not sanitized here;
// callers feeding template-derived text into segments own their validity.
func ApplyFolderPattern(file scanner.FileInfo, pattern string) string {
	result := pattern

	result = strings.ReplaceAll(result, "{year}", file.ModifiedAt.Format("2006"))
	result = strings.ReplaceAll(result, "{month}", file.ModifiedAt.Format("01"))
	result = strings.ReplaceAll(result, "{day}", file.ModifiedAt.Format("02"))
	result = strings.ReplaceAll(result, "{category}", CategoryLabel(file.Category))
	result = strings.ReplaceAll(result, "{extension}", file.Extension)
	result = strings.ReplaceAll(result, "{ext}", file.Extension)

	result = strings.ReplaceAll(result, "\\", "/")
	result = strings.Trim(result, "/")
	for strings.Contains(result, "//") {
		result = strings.ReplaceAll(result, "//", "/")
	}

	return result
}
