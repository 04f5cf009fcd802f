package rename

import (
	"regexp"
	"strings"
	"time"

	"github.com/filetidy/filetidy/internal/scanner"
)

// DefaultDateFormat is used for {date} when no format option is given.
const DefaultDateFormat = "YYYY-MM-DD"

var customDatePattern = regexp.MustCompile(`\{date:([^}]+)\}`)

// dateTokens maps template date tokens to Go layout fragments. Longer
// tokens are replaced first so MM never clobbers mm.
var dateTokens = []struct{ token, layout string }{
	{"YYYY", "2006"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

// FormatDate renders t using the template token format (YYYY, MM, DD, HH,
// mm, ss). Unrecognized characters pass through literally.
func FormatDate(t time.Time, format string) string {
	layout := format
	for _, tok := range dateTokens {
		layout = strings.ReplaceAll(layout, tok.token, tok.layout)
	}
	return t.Format(layout)
}

// ApplyTemplate expands pattern against a file descriptor and returns the
// sanitized filename plus the ordered, de-duplicated metadata sources that
// contributed to it. Unmatched placeholders stay literal. The extension is
// appended when missing and corrected when the pattern produced a
// different one, so a template can never change a file's type.
func ApplyTemplate(file scanner.FileInfo, pattern, dateFormat string, stripExisting bool) (string, []string) {
	result := pattern
	var sources []string
	addSource := func(s string) {
		for _, existing := range sources {
			if existing == s {
				return
			}
		}
		sources = append(sources, s)
	}

	nameToUse := file.Name
	if stripExisting {
		nameToUse = CleanFilename(file.Name)
	}

	if strings.Contains(result, "{name}") || strings.Contains(result, "{original}") {
		result = strings.ReplaceAll(result, "{name}", nameToUse)
		result = strings.ReplaceAll(result, "{original}", nameToUse)
		addSource("filename")
	}

	if strings.Contains(result, "{ext}") {
		result = strings.ReplaceAll(result, "{ext}", file.Extension)
	}

	if strings.Contains(result, "{date}") {
		result = strings.ReplaceAll(result, "{date}", FormatDate(file.ModifiedAt, dateFormat))
		addSource("file-date")
	}

	if matches := customDatePattern.FindAllStringSubmatch(result, -1); len(matches) > 0 {
		for _, m := range matches {
			result = strings.ReplaceAll(result, m[0], FormatDate(file.ModifiedAt, m[1]))
		}
		addSource("file-date")
	}

	if strings.Contains(result, "{year}") {
		result = strings.ReplaceAll(result, "{year}", file.ModifiedAt.Format("2006"))
		addSource("file-date")
	}
	result = strings.ReplaceAll(result, "{month}", file.ModifiedAt.Format("01"))
	result = strings.ReplaceAll(result, "{day}", file.ModifiedAt.Format("02"))

	// Keep the source extension: append when absent, correct when changed
	if file.Extension != "" {
		if !strings.Contains(result, ".") {
			result += "." + file.Extension
		} else if !strings.HasSuffix(result, "."+file.Extension) {
			if idx := strings.LastIndexByte(result, '.'); idx >= 0 {
				result = result[:idx] + "." + file.Extension
			}
		}
	}

	sanitized := Sanitize(result, DefaultReplacement)
	return sanitized.Sanitized, sources
}
