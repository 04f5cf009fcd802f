package rename

import (
	"regexp"
	"strings"
)

// Patterns previously applied by a template that CleanFilename removes so
// re-applying the same template does not stack dates or counters. Order
// matters: date prefixes before date suffixes before counters.
var stripPatterns = []*regexp.Regexp{
	// ISO prefix: YYYY-MM-DD, YYYY_MM_DD
	regexp.MustCompile(`^\d{4}[-_]\d{2}[-_]\d{2}[-_ ]?`),
	// compact ISO prefix: YYYYMMDD
	regexp.MustCompile(`^\d{8}[-_ ]?`),
	// European prefix: DD-MM-YYYY, DD_MM_YYYY
	regexp.MustCompile(`^\d{2}[-_]\d{2}[-_]\d{4}[-_ ]?`),
	// date suffix: _YYYY-MM-DD, _YYYYMMDD
	regexp.MustCompile(`[-_ ]\d{4}[-_]?\d{2}[-_]?\d{2}$`),
	// counter suffixes: _001, -01, (3)
	regexp.MustCompile(`[-_ ]\d{1,4}$`),
	regexp.MustCompile(`\(\d{1,4}\)$`),
}

// CleanFilename strips previously-applied date and counter patterns from a
// file stem. The pattern list is applied until a fixed point so the result
// is stable under re-application. If stripping would leave nothing, the
// input is returned unchanged; an empty stem must never escape this
// function.
func CleanFilename(name string) string {
	if name == "" {
		return name
	}

	result := name
	for {
		prev := result
		for _, re := range stripPatterns {
			result = re.ReplaceAllString(result, "")
		}
		result = strings.Trim(result, "-_ ")
		if result == prev {
			break
		}
	}

	if result == "" {
		return name
	}
	return result
}
