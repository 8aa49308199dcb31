package domain

import (
	"reflect"
	"testing"
)

// TestMergeCriteriaAppendsOnlyNewItems tests that merging keeps existing
// order and appends new items in extracted order
func TestMergeCriteriaAppendsOnlyNewItems(t *testing.T) {
	existing := []string{"cay", "nướng"}
	extracted := []string{"hải sản", "cay", "ngọt"}

	merged := MergeCriteria(existing, extracted)

	expected := []string{"cay", "nướng", "hải sản", "ngọt"}
	if !reflect.DeepEqual(merged, expected) {
		t.Errorf("expected %v, got %v", expected, merged)
	}
}

// TestMergeCriteriaIsIdempotent tests that merging the same extracted list
// twice produces no change on the second call
func TestMergeCriteriaIsIdempotent(t *testing.T) {
	existing := []string{"cay"}
	extracted := []string{"nướng", "hải sản"}

	once := MergeCriteria(existing, extracted)
	twice := MergeCriteria(once, extracted)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("expected idempotent merge, first %v, second %v", once, twice)
	}
}

// TestMergeCriteriaDeduplicatesCaseInsensitively tests the normalization
// policy: comparison ignores case and surrounding whitespace, the first-seen
// spelling is kept
func TestMergeCriteriaDeduplicatesCaseInsensitively(t *testing.T) {
	existing := []string{"Hải Sản"}
	extracted := []string{" hải sản ", "CAY"}

	merged := MergeCriteria(existing, extracted)

	expected := []string{"Hải Sản", "CAY"}
	if !reflect.DeepEqual(merged, expected) {
		t.Errorf("expected %v, got %v", expected, merged)
	}
}

// TestMergeCriteriaDropsBlankEntries tests that empty and whitespace-only
// entries never survive a merge
func TestMergeCriteriaDropsBlankEntries(t *testing.T) {
	merged := MergeCriteria([]string{"", "cay"}, []string{"   ", "ngọt", ""})

	expected := []string{"cay", "ngọt"}
	if !reflect.DeepEqual(merged, expected) {
		t.Errorf("expected %v, got %v", expected, merged)
	}
}

// TestMergeCriteriaWithEmptyInputs tests merging with nil and empty slices
func TestMergeCriteriaWithEmptyInputs(t *testing.T) {
	if merged := MergeCriteria(nil, nil); len(merged) != 0 {
		t.Errorf("expected empty result, got %v", merged)
	}

	merged := MergeCriteria(nil, []string{"chay"})
	if !reflect.DeepEqual(merged, []string{"chay"}) {
		t.Errorf("expected [chay], got %v", merged)
	}
}

// TestContainsCriterion tests membership under the deduplication key
func TestContainsCriterion(t *testing.T) {
	criteria := []string{"Hải Sản", "cay"}

	if !ContainsCriterion(criteria, "hải sản") {
		t.Error("expected case-insensitive match for hải sản")
	}
	if !ContainsCriterion(criteria, "  CAY  ") {
		t.Error("expected trimmed match for CAY")
	}
	if ContainsCriterion(criteria, "ngọt") {
		t.Error("did not expect match for ngọt")
	}
}
