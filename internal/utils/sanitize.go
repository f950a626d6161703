package utils

import (
	"regexp"
	"strings"
)

// sanitizePatterns is the fixed denylist applied to free-text fields: quote
// characters, SQL comment markers and a set of SQL keywords. Matches are
// deleted, not rejected, so a description containing the word "update"
// silently loses it. That lossy behavior is part of the contract with the
// stored data; parameter binding remains the actual injection defense.
var sanitizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[';"\\]`),
	regexp.MustCompile(`--`),
	regexp.MustCompile(`(?is)/\*.*?\*/`),
	regexp.MustCompile(`(?i)\bUNION\b`),
	regexp.MustCompile(`(?i)\bSELECT\b`),
	regexp.MustCompile(`(?i)\bINSERT\b`),
	regexp.MustCompile(`(?i)\bUPDATE\b`),
	regexp.MustCompile(`(?i)\bDELETE\b`),
	regexp.MustCompile(`(?i)\bDROP\b`),
	regexp.MustCompile(`(?i)\bCREATE\b`),
	regexp.MustCompile(`(?i)\bALTER\b`),
	regexp.MustCompile(`(?i)\bEXEC\b`),
	regexp.MustCompile(`(?i)\bEXECUTE\b`),
}

// Sanitize strips every denylisted pattern from s and trims surrounding
// whitespace. It is applied to free-text fields (names, descriptions,
// filenames) in addition to parameterized queries, never instead of them.
func Sanitize(s string) string {
	for _, re := range sanitizePatterns {
		s = re.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}
