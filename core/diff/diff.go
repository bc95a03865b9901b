package diff

import (
	"bytes"
	"strings"
)

// Stats counts how the new document relates to the previous snapshot.
type Stats struct {
	// Total is the number of data lines (header excluded) in the new document.
	Total int `json:"total"`
	// Changed is the number of data lines absent from the previous snapshot.
	Changed int `json:"changed"`
	// Unchanged is the number of data lines already present in the previous snapshot.
	Unchanged int `json:"unchanged"`
	// Removed is the number of previous data lines missing from the new document.
	Removed int `json:"removed"`
}

// Result is the outcome of comparing a document with its previous snapshot.
type Result struct {
	// Header is the header line of the new document.
	Header string
	// Lines holds the header followed by every changed data line, in document order.
	Lines []string
	// Removed holds previous data lines that no longer appear, in snapshot order.
	Removed []string
	// HasChanges is true when any line was added, modified or removed.
	HasChanges bool
	// Bootstrap is true when no previous snapshot existed.
	Bootstrap bool
	Stats     Stats
}

// Diff compares a newly fetched document against the last successfully processed one.
// When hasPrevious is false every line is reported as changed.
func Diff(current, previous []byte, hasPrevious bool) Result {
	header, lines := SplitLines(current)
	result := Result{Header: header, Bootstrap: !hasPrevious}
	if header == "" {
		return result
	}

	result.Lines = make([]string, 0, len(lines)+1)
	result.Lines = append(result.Lines, header)
	result.Stats.Total = len(lines)

	if !hasPrevious {
		seen := make(map[string]struct{}, len(lines))
		for _, line := range lines {
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			result.Lines = append(result.Lines, line)
			result.Stats.Changed++
		}
		result.HasChanges = result.Stats.Changed > 0
		return result
	}

	_, prevLines := SplitLines(previous)
	prevSet := make(map[string]struct{}, len(prevLines))
	for _, line := range prevLines {
		prevSet[line] = struct{}{}
	}

	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		// Repeated lines are reported once
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		if _, ok := prevSet[line]; ok {
			result.Stats.Unchanged++
			continue
		}
		result.Lines = append(result.Lines, line)
		result.Stats.Changed++
	}

	for _, line := range prevLines {
		if _, ok := seen[line]; ok {
			continue
		}
		result.Removed = append(result.Removed, line)
	}
	result.Stats.Removed = len(result.Removed)
	result.HasChanges = result.Stats.Changed > 0 || result.Stats.Removed > 0

	return result
}

// SplitLines splits a newline-delimited document into its header and data lines.
// Carriage returns are stripped and blank lines dropped.
func SplitLines(doc []byte) (string, []string) {
	doc = bytes.TrimPrefix(doc, []byte("\xef\xbb\xbf"))
	raw := strings.Split(string(doc), "\n")

	header := ""
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header == "" {
			header = line
			continue
		}
		lines = append(lines, line)
	}
	return header, lines
}
