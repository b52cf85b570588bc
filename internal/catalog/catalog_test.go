package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSearch_EmptyQueryReturnsAll(t *testing.T) {
	results := Search(FuelTypes, "")
	if len(results) != len(FuelTypes) {
		t.Fatalf("expected %d options, got %d", len(FuelTypes), len(results))
	}
}

func TestSearch_CaseInsensitiveContains(t *testing.T) {
	results := Search(MotorcycleBrands, "hArLeY")
	want := []Option{{Value: "harley-davidson", Label: "Harley-Davidson"}}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("unexpected results (-want +got):\n%s", diff)
	}
}

func TestSearch_MatchesValueAndLabel(t *testing.T) {
	// "flex" appears in both the value and the label of the same option
	results := Search(FuelTypes, "flex")
	if len(results) != 1 || results[0].Value != "flex" {
		t.Fatalf("unexpected results: %#v", results)
	}

	// "etanol" matches the etanol value and the Flex label text
	results = Search(FuelTypes, "etanol")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %#v", results)
	}
}

func TestSearch_AccentInsensitive(t *testing.T) {
	results := Search(FuelTypes, "eletrico")
	if len(results) != 1 || results[0].Value != "eletrico" {
		t.Fatalf("expected Elétrico to match unaccented query, got %#v", results)
	}

	results = Search(FuelTypes, "Híbrido")
	if len(results) != 1 || results[0].Value != "hibrido" {
		t.Fatalf("expected accented query to match, got %#v", results)
	}
}

func TestSearch_NoMatchesYieldsEmptyNonNil(t *testing.T) {
	results := Search(CommonColors, "xyzzy")
	if results == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %#v", results)
	}
}

func TestByName(t *testing.T) {
	if got := ByName("marca"); len(got) != len(MotorcycleBrands) {
		t.Fatalf("unexpected marca catalog: %d entries", len(got))
	}
	if got := ByName("unknown"); got != nil {
		t.Fatalf("expected nil for unknown catalog, got %#v", got)
	}
}

func TestLabel_FallsBackToFreeText(t *testing.T) {
	if got := Label(MotorcycleBrands, "ducati"); got != "Ducati" {
		t.Fatalf("expected catalog label, got %q", got)
	}
	if got := Label(MotorcycleBrands, "Shineray"); got != "Shineray" {
		t.Fatalf("expected free text passthrough, got %q", got)
	}
}
