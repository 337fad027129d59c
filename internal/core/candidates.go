// Package core holds the candidate model shared by the extractor, the
// availability scanner, and the HTTP layer.
package core

import (
	"regexp"
	"strings"
)

const (
	// MaxCandidateLength bounds the full candidate including the suffix.
	MaxCandidateLength = 30

	// CandidateSuffix is the only TLD the generator asks for.
	CandidateSuffix = ".com"
)

var (
	// decorationPattern strips list markers the model tends to emit
	// ("1. name.com", "- name.com", "1.2 name.com").
	decorationPattern = regexp.MustCompile(`^[-0-9.]+\s+`)

	// candidatePattern is the allowed character set for a full candidate.
	candidatePattern = regexp.MustCompile(`^[a-zA-Z0-9.-]+$`)

	// fillerPhrases mark lines that are conversation, not names.
	fillerPhrases = []string{"here are", "based on"}
)

// ExtractCandidates parses a raw completion into an ordered list of candidate
// domain names. Lines that are decorated list items are unwrapped first; a
// line survives only if it is non-empty, at most MaxCandidateLength runes of
// the allowed character set, carries the .com suffix, and is not conversational
// filler. The function is pure: the same input always yields the same output,
// and malformed input simply yields fewer candidates.
func ExtractCandidates(raw string) []string {
	lines := strings.Split(raw, "\n")
	candidates := make([]string, 0, len(lines))

	for _, line := range lines {
		candidate := strings.TrimSpace(decorationPattern.ReplaceAllString(strings.TrimSpace(line), ""))
		if !IsCandidate(candidate) {
			continue
		}
		candidates = append(candidates, candidate)
	}

	return candidates
}

// IsCandidate reports whether a cleaned line qualifies as a candidate name.
func IsCandidate(value string) bool {
	if value == "" || len(value) > MaxCandidateLength {
		return false
	}
	if !candidatePattern.MatchString(value) {
		return false
	}

	lowered := strings.ToLower(value)
	if !strings.HasSuffix(lowered, CandidateSuffix) {
		return false
	}
	for _, phrase := range fillerPhrases {
		if strings.Contains(lowered, phrase) {
			return false
		}
	}

	return true
}
