// Package comicimport turns raw CSV rows from the source dataset into
// normalized Comic records: semicolon-delimited fields are split, encoding
// artifacts are cleaned up, and rows sharing a record id are collapsed into
// a single record with variant titles.
package comicimport

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// symbolReplacements maps characters that render badly in the source data
// to readable text. Replacement output never contains a key, which keeps
// NormalizeText idempotent.
var symbolReplacements = []struct {
	old string
	new string
}{
	{"&", " and "},
	{"@", " at "},
	{"#", " number "},
	{"%", " percent "},
	{"$", " dollar "},
	{"©", " copyright "},
	{"®", " registered "},
	{"™", " trademark "},
}

var (
	// Keeps letters and digits in any script plus basic punctuation;
	// everything else is an encoding artifact.
	disallowedRE = regexp.MustCompile(`[^\p{L}\p{N}_\s\-.,!?:;()]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// NormalizeText canonicalizes a raw field value for display: unicode NFC,
// symbol replacement, artifact stripping, and whitespace collapsing.
// Applying it twice yields the same string as applying it once.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	for _, r := range symbolReplacements {
		s = strings.ReplaceAll(s, r.old, r.new)
	}
	s = disallowedRE.ReplaceAllString(s, " ")
	s = whitespaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SplitMultiValue splits a semicolon-delimited field into its values.
// Blank segments are dropped; a blank field yields an empty slice, never
// nil entries.
func SplitMultiValue(s string) []string {
	values := []string{}
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		values = append(values, part)
	}
	return values
}

// ParseISBNs splits a comma-delimited ISBN field. A blank field yields an
// empty slice; the missing-ISBN flag is derived from emptiness rather than
// stored as a sentinel value.
func ParseISBNs(s string) []string {
	values := []string{}
	for _, part := range strings.Split(strings.ReplaceAll(s, " ", ""), ",") {
		if part == "" {
			continue
		}
		values = append(values, part)
	}
	return values
}
