package regions

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSearch_PrefixMatchesFirst(t *testing.T) {
	names := []string{"Iceland", "Canada", "Mexico"}
	opts := NewOptions(WithEmptySearchMode(EmptySearchNone))

	results := Search(names, "can", 10, opts)
	if len(results) == 0 || results[0] != "Canada" {
		t.Fatalf("expected Canada first, got %#v", results)
	}
	for _, name := range results {
		if name == "Mexico" {
			t.Fatalf("unexpected match for Mexico: %#v", results)
		}
	}
}

func TestSearch_EmptyQueryModes(t *testing.T) {
	names := []string{"a", "b", "c", "d"}

	top := Search(names, "", 0, NewOptions(WithDefaultLimit(2), WithEmptySearchMode(EmptySearchTop)))
	if diff := cmp.Diff([]string{"a", "b"}, top); diff != "" {
		t.Fatalf("top mode mismatch (-want +got):\n%s", diff)
	}

	none := Search(names, "  ", 0, NewOptions(WithEmptySearchMode(EmptySearchNone)))
	if none != nil {
		t.Fatalf("expected nil results, got %#v", none)
	}
}

func TestSearch_NegativeLimitReturnsNothing(t *testing.T) {
	if got := Search([]string{"Canada"}, "can", -1, NewOptions()); got != nil {
		t.Fatalf("expected nil results, got %#v", got)
	}
}

func TestSearchOptions_MapsValueAndLabel(t *testing.T) {
	results := SearchOptions([]string{"Canada"}, "canada", 10, NewOptions())
	want := []Option{{Value: "Canada", Label: "Canada"}}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}
