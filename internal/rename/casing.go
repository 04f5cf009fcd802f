package rename

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var wordCaser = cases.Title(language.English)

// SplitWords breaks a name into words. Spaces, underscores, hyphens and
// periods are separators; an uppercase rune directly after a lowercase one
// starts a new word (camelCase boundary) without consuming anything.
func SplitWords(input string) []string {
	if input == "" {
		return nil
	}

	var words []string
	var current strings.Builder
	prevWasLower := false

	for _, r := range input {
		switch r {
		case ' ', '_', '-', '.':
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
			prevWasLower = false
			continue
		}

		if unicode.IsUpper(r) && prevWasLower && current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}

		current.WriteRune(r)
		prevWasLower = unicode.IsLower(r)
	}

	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

// capitalizeWord uppercases the first letter and lowercases the rest.
func capitalizeWord(word string) string {
	return wordCaser.String(word)
}

// normalizeCase rejoins the words of name according to style. The input is
// the name part only; extensions are handled by NormalizeFilename.
func normalizeCase(name string, style CaseStyle) string {
	if style == CaseNone || name == "" {
		return name
	}

	words := SplitWords(name)
	if len(words) == 0 {
		return name
	}

	switch style {
	case CaseLowercase:
		return joinMapped(words, strings.ToLower, " ")
	case CaseUppercase:
		return joinMapped(words, strings.ToUpper, " ")
	case CaseCapitalize:
		parts := make([]string, len(words))
		parts[0] = capitalizeWord(words[0])
		for i, w := range words[1:] {
			parts[i+1] = strings.ToLower(w)
		}
		return strings.Join(parts, " ")
	case CaseTitle:
		return joinMapped(words, capitalizeWord, " ")
	case CaseKebab:
		return joinMapped(words, strings.ToLower, "-")
	case CaseSnake:
		return joinMapped(words, strings.ToLower, "_")
	case CaseCamel:
		var b strings.Builder
		b.WriteString(strings.ToLower(words[0]))
		for _, w := range words[1:] {
			b.WriteString(capitalizeWord(w))
		}
		return b.String()
	case CasePascal:
		return joinMapped(words, capitalizeWord, "")
	}

	return name
}

func joinMapped(words []string, f func(string) string, sep string) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = f(w)
	}
	return strings.Join(parts, sep)
}

// NormalizeFilename applies a case style to the name part of a filename.
// The extension is always lowercased. A hidden file's leading dot is kept
// outside normalization.
func NormalizeFilename(filename string, style CaseStyle) string {
	if style == CaseNone || filename == "" {
		return filename
	}

	isHidden := strings.HasPrefix(filename, ".")
	working := filename
	if isHidden {
		working = filename[1:]
	}

	name := working
	ext := ""
	if idx := strings.LastIndexByte(working, '.'); idx > 0 {
		name, ext = working[:idx], working[idx:]
	}

	out := normalizeCase(name, style) + strings.ToLower(ext)
	if isHidden {
		return "." + out
	}
	return out
}
