package rename

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxFilenameLength is the portable filename length limit.
const MaxFilenameLength = 255

// DefaultReplacement is the character substituted for invalid characters.
const DefaultReplacement = '_'

// invalidChars are characters rejected by at least one supported OS.
const invalidChars = "/\\:*?\"<>|\x00"

// reservedNames are filenames Windows refuses regardless of extension.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// SanitizeChange records one transformation applied by Sanitize, for
// display in the preview UI.
type SanitizeChange struct {
	Type        string `json:"type"`
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Message     string `json:"message"`
}

// SanitizeResult is the outcome of sanitizing a filename.
type SanitizeResult struct {
	Sanitized   string           `json:"sanitized"`
	Original    string           `json:"original"`
	Changes     []SanitizeChange `json:"changes"`
	WasModified bool             `json:"wasModified"`
}

// Sanitize makes a filename valid across operating systems:
//  1. replace invalid characters with the replacement character
//  2. collapse runs of the replacement character
//  3. suffix Windows-reserved names with "_file"
//  4. strip trailing spaces and periods
//  5. truncate to the length limit, preserving the extension
func Sanitize(filename string, replacement rune) SanitizeResult {
	result := SanitizeResult{
		Sanitized: filename,
		Original:  filename,
		Changes:   []SanitizeChange{},
	}

	if filename == "" {
		return result
	}

	current := filename

	// Step 1: replace invalid characters, recording each distinct one
	var found []rune
	seen := map[rune]bool{}
	for _, r := range current {
		if strings.ContainsRune(invalidChars, r) && !seen[r] {
			seen[r] = true
			found = append(found, r)
		}
	}
	if len(found) > 0 {
		quoted := make([]string, len(found))
		for i, r := range found {
			quoted[i] = fmt.Sprintf("%q", string(r))
		}
		result.Changes = append(result.Changes, SanitizeChange{
			Type:        "char_replacement",
			Original:    string(found),
			Replacement: strings.Repeat(string(replacement), len(found)),
			Message:     "Replaced invalid characters: " + strings.Join(quoted, ", "),
		})
		current = strings.Map(func(r rune) rune {
			if strings.ContainsRune(invalidChars, r) {
				return replacement
			}
			return r
		}, current)
	}

	// Step 2: collapse consecutive replacement characters
	double := string(replacement) + string(replacement)
	for strings.Contains(current, double) {
		current = strings.ReplaceAll(current, double, string(replacement))
	}

	// Step 3: Windows reserved names
	namePart, extPart := SplitFilename(current)
	if reservedNames[strings.ToUpper(namePart)] {
		result.Changes = append(result.Changes, SanitizeChange{
			Type:        "reserved_name",
			Original:    namePart,
			Replacement: namePart + "_file",
			Message:     fmt.Sprintf("%q is a reserved name on Windows", namePart),
		})
		current = namePart + "_file" + extPart
	}

	// Step 4: trailing spaces and periods on the name part, and on the
	// whole string when there is no extension to protect them
	namePart, extPart = SplitFilename(current)
	trimmedName := strings.TrimRight(namePart, ". ")
	if trimmedName != namePart {
		result.Changes = append(result.Changes, SanitizeChange{
			Type:        "trailing_fix",
			Original:    namePart[len(trimmedName):],
			Replacement: "",
			Message:     "Removed trailing spaces/periods (invalid on Windows)",
		})
		current = trimmedName + extPart
	} else {
		trimmedFull := strings.TrimRight(current, ". ")
		if trimmedFull != current {
			result.Changes = append(result.Changes, SanitizeChange{
				Type:        "trailing_fix",
				Original:    current[len(trimmedFull):],
				Replacement: "",
				Message:     "Removed trailing spaces/periods (invalid on Windows)",
			})
			current = trimmedFull
		}
	}

	// Step 5: length limit
	if len(current) > MaxFilenameLength {
		current = truncateFilename(current, MaxFilenameLength, &result.Changes)
	}

	result.Sanitized = current
	result.WasModified = current != filename
	return result
}

// truncateFilename shortens a filename to maxLength while keeping the
// extension, marking the cut with an ellipsis. When the extension alone
// exceeds the limit the whole string is hard-truncated.
func truncateFilename(filename string, maxLength int, changes *[]SanitizeChange) string {
	namePart, extPart := SplitFilename(filename)

	maxNameLength := maxLength - len(extPart)
	if maxNameLength < 1 {
		out := cutAtRune(filename, maxLength)
		*changes = append(*changes, SanitizeChange{
			Type:        "truncation",
			Original:    filename,
			Replacement: out,
			Message: fmt.Sprintf("Truncated from %d to %d characters (extension too long)",
				len(filename), maxLength),
		})
		return out
	}

	const ellipsis = "..."
	var truncated string
	if available := maxNameLength - len(ellipsis); available > 0 {
		truncated = cutAtRune(namePart, available) + ellipsis
	} else {
		truncated = cutAtRune(namePart, maxNameLength)
	}

	out := truncated + extPart
	*changes = append(*changes, SanitizeChange{
		Type:        "truncation",
		Original:    filename,
		Replacement: out,
		Message:     fmt.Sprintf("Truncated from %d to %d characters", len(filename), len(out)),
	})
	return out
}

// cutAtRune truncates s to at most n bytes without splitting a rune.
func cutAtRune(s string, n int) string {
	if n >= len(s) {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// SplitFilename splits a filename into name and extension parts; the
// extension keeps its leading dot. Dotfiles like .gitignore are treated as
// all name.
func SplitFilename(filename string) (name, ext string) {
	if filename == "" {
		return "", ""
	}

	if strings.HasPrefix(filename, ".") && !strings.Contains(filename[1:], ".") {
		return filename, ""
	}

	idx := strings.LastIndexByte(filename, '.')
	if idx <= 0 {
		return filename, ""
	}
	return filename[:idx], filename[idx:]
}

// IsValidFilename re-checks a name after sanitization: non-empty, within
// the length limit, no invalid characters, not a bare reserved name, no
// trailing space or period.
func IsValidFilename(name string) bool {
	if name == "" || len(name) > MaxFilenameLength {
		return false
	}
	if strings.ContainsAny(name, invalidChars) {
		return false
	}

	base, _, _ := strings.Cut(strings.ToUpper(name), ".")
	if reservedNames[base] {
		return false
	}

	if strings.HasSuffix(name, " ") || strings.HasSuffix(name, ".") {
		return false
	}

	return true
}
