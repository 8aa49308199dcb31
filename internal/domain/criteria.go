package domain

import "strings"

// NormalizeCriterion trims surrounding whitespace from a criterion.
// The trimmed spelling is what gets stored and displayed.
func NormalizeCriterion(criterion string) string {
	return strings.TrimSpace(criterion)
}

// criterionKey is the equality key for deduplication: trimmed and case-folded.
// Users mix casing freely ("Hải Sản" vs "hải sản"), so comparison ignores it
// while the first-seen spelling is preserved.
func criterionKey(criterion string) string {
	return strings.ToLower(strings.TrimSpace(criterion))
}

// MergeCriteria appends each element of extracted that is not already present
// in existing. The order of existing is preserved and new items are appended
// in extracted's order. Blank entries are dropped. Merging the same extracted
// list twice produces no change on the second call.
func MergeCriteria(existing, extracted []string) []string {
	merged := make([]string, 0, len(existing)+len(extracted))
	seen := make(map[string]bool, len(existing)+len(extracted))

	for _, c := range existing {
		key := criterionKey(c)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, NormalizeCriterion(c))
	}

	for _, c := range extracted {
		key := criterionKey(c)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, NormalizeCriterion(c))
	}

	return merged
}

// ContainsCriterion reports whether criteria already holds the given value
// under the deduplication key
func ContainsCriterion(criteria []string, criterion string) bool {
	key := criterionKey(criterion)
	for _, c := range criteria {
		if criterionKey(c) == key {
			return true
		}
	}
	return false
}
