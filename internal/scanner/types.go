package scanner

import (
	"path/filepath"
	"strings"
	"time"
)

// FileCategory classifies a file by its extension
type FileCategory string

const (
	CategoryImage    FileCategory = "image"
	CategoryDocument FileCategory = "document"
	CategoryVideo    FileCategory = "video"
	CategoryAudio    FileCategory = "audio"
	CategoryArchive  FileCategory = "archive"
	CategoryCode     FileCategory = "code"
	CategoryData     FileCategory = "data"
	CategoryOther    FileCategory = "other"
)

// FileInfo is an immutable snapshot of a scanned file. The rename engine
// trusts these values and never re-reads the file.
type FileInfo struct {
	Path         string       `json:"path"`         // absolute path
	Name         string       `json:"name"`         // filename without extension
	Extension    string       `json:"extension"`    // extension without dot
	FullName     string       `json:"fullName"`     // filename with extension
	Size         int64        `json:"size"`         // bytes
	CreatedAt    time.Time    `json:"createdAt"`    // best effort; mod time where unavailable
	ModifiedAt   time.Time    `json:"modifiedAt"`   // modification time
	RelativePath string       `json:"relativePath"` // relative to scan root
	Category     FileCategory `json:"category"`     // derived from extension
}

// Options controls a folder scan
type Options struct {
	Recursive  bool     `json:"recursive"`
	Extensions []string `json:"extensions,omitempty"` // without dot; empty means all
}

// Result holds the outcome of a folder scan
type Result struct {
	Files      []FileInfo `json:"files"`
	TotalCount int        `json:"totalCount"`
	Path       string     `json:"path"`
	ScannedAt  time.Time  `json:"scannedAt"`
	Truncated  bool       `json:"truncated"` // hit the file cap before finishing
}

var categoryByExt = map[string]FileCategory{}

func init() {
	register := func(cat FileCategory, exts ...string) {
		for _, e := range exts {
			categoryByExt[e] = cat
		}
	}

	register(CategoryImage, "jpg", "jpeg", "png", "gif", "bmp", "webp", "svg", "ico",
		"tiff", "tif", "heic", "heif", "raw", "cr2", "nef", "arw", "dng")
	register(CategoryDocument, "pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx",
		"odt", "ods", "odp", "txt", "rtf", "md", "csv")
	register(CategoryVideo, "mp4", "avi", "mkv", "mov", "wmv", "flv", "webm", "m4v",
		"mpeg", "mpg")
	register(CategoryAudio, "mp3", "wav", "flac", "aac", "ogg", "wma", "m4a", "opus")
	register(CategoryArchive, "zip", "tar", "gz", "bz2", "xz", "7z", "rar", "iso")
	register(CategoryCode, "js", "ts", "jsx", "tsx", "py", "rs", "go", "java", "c",
		"cpp", "h", "hpp", "cs", "rb", "php", "swift", "kt", "scala", "html", "css",
		"scss", "less", "json", "yaml", "yml", "xml", "toml", "sql", "sh", "bash", "ps1")
	register(CategoryData, "db", "sqlite", "mdb", "accdb")
}

// CategoryForExtension maps a file extension (without dot) to its category
func CategoryForExtension(ext string) FileCategory {
	if cat, ok := categoryByExt[strings.ToLower(ext)]; ok {
		return cat
	}
	return CategoryOther
}

// SplitName splits a full filename into stem and extension (without dot).
// Dotfiles like .gitignore have no extension.
func SplitName(fullName string) (name, ext string) {
	if strings.HasPrefix(fullName, ".") && !strings.Contains(fullName[1:], ".") {
		return fullName, ""
	}

	e := filepath.Ext(fullName)
	if e == "" || e == fullName {
		return fullName, ""
	}

	return strings.TrimSuffix(fullName, e), strings.TrimPrefix(e, ".")
}
