// Package parsing provides skill-name normalization and the set operations
// behind the overlap/gap profile.
package parsing

import (
	"sort"
	"strings"
)

// NormalizeSkills canonicalizes raw skill names into a comparable set:
// entries are trimmed and lowercased, blanks dropped, duplicates collapsed.
// The result is sorted so downstream output is reproducible. Pure and total.
func NormalizeSkills(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	result := make([]string, 0, len(raw))

	for _, skill := range raw {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	sort.Strings(result)
	return result
}

// Intersect returns the sorted intersection of two normalized skill sets.
func Intersect(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, skill := range b {
		inB[skill] = struct{}{}
	}

	result := make([]string, 0, len(a))
	for _, skill := range a {
		if _, ok := inB[skill]; ok {
			result = append(result, skill)
		}
	}

	sort.Strings(result)
	return result
}

// Difference returns the sorted elements of a that are not in b.
func Difference(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, skill := range b {
		inB[skill] = struct{}{}
	}

	result := make([]string, 0, len(a))
	for _, skill := range a {
		if _, ok := inB[skill]; !ok {
			result = append(result, skill)
		}
	}

	sort.Strings(result)
	return result
}
