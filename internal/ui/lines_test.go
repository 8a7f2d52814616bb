package ui

import (
	"slices"
	"testing"

	"github.com/five82/pokedex/internal/listfmt"
	"github.com/five82/pokedex/internal/pokeapi"
)

func TestListingLines(t *testing.T) {
	listing := pokeapi.Listing{Results: []pokeapi.ListingEntry{{Name: "bulbasaur"}, {Name: "ivysaur"}}}
	got := ListingLines(listing)
	want := []string{"1. bulbasaur", "2. ivysaur"}
	if !slices.Equal(got, want) {
		t.Fatalf("ListingLines = %q, want %q", got, want)
	}
}

func TestDetailLines(t *testing.T) {
	record := pokeapi.DetailRecord{
		ID: 1, Name: "bulbasaur", Height: 7, Weight: 69,
		Types: []pokeapi.TypeSlot{{Slot: 1, TypeName: "grass"}, {Slot: 2, TypeName: "poison"}},
	}
	got := DetailLines(record, listfmt.New("en-GB"))
	want := []string{"sprite: none", "id: 1", "height: 7", "weight: 69", "types: grass and poison"}
	if !slices.Equal(got, want) {
		t.Fatalf("DetailLines = %q, want %q", got, want)
	}

	got = DetailLines(record, listfmt.New("de"))
	if got[4] != "types: grass und poison" {
		t.Fatalf("types line = %q, want German conjunction", got[4])
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"bulbasaur":     "Bulbasaur",
		"mr-mime":       "Mr Mime",
		"  tapu_koko  ": "Tapu Koko",
		"":              "",
	}
	for in, want := range tests {
		if got := titleCase(in); got != want {
			t.Fatalf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("charmander", 6); got != "cha..." {
		t.Fatalf("truncate = %q, want cha...", got)
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Fatalf("truncate = %q, want abc", got)
	}
}
