// Package input extracts document URLs and reviewer ground truth from the
// supported source formats.
package input

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// pdfURLPattern matches http(s) URLs pointing at a .pdf resource anywhere
// inside arbitrary text.
var pdfURLPattern = regexp.MustCompile(`(?i)https?://[^\s,"'<>()\[\]]+\.pdf`)

// IsURL reports whether the argument is a literal URL rather than a path.
func IsURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// ReadSource resolves the single positional CLI argument into a URL list.
// A literal URL yields a one-element list; a path is read as a
// line-oriented URL file, falling back to pattern extraction when the
// lines are not themselves URLs.
func ReadSource(arg string) ([]string, error) {
	if IsURL(arg) {
		return []string{strings.TrimSpace(arg)}, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}

	text := StripBOM(string(data))
	if urls := ParseURLLines(text); len(urls) > 0 {
		return urls, nil
	}
	return ExtractURLs(text), nil
}

// ParseURLLines reads a line-oriented URL list: one URL per line, blank
// lines and lines starting with # ignored. Lines that are not URLs
// disqualify the whole text, signalling the caller to fall back to
// pattern extraction.
func ParseURLLines(text string) []string {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !IsURL(line) {
			return nil
		}
		urls = append(urls, line)
	}
	return urls
}

// ExtractURLs pulls every PDF URL out of arbitrary text, in first-seen
// order with duplicates removed.
func ExtractURLs(text string) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, m := range pdfURLPattern.FindAllString(text, -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		urls = append(urls, m)
	}
	return urls
}

// StripBOM removes a leading UTF-8 byte-order marker if present.
func StripBOM(text string) string {
	return strings.TrimPrefix(text, "\ufeff")
}
