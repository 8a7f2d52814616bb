package ui

import (
	"fmt"

	"github.com/five82/pokedex/internal/listfmt"
	"github.com/five82/pokedex/internal/pokeapi"
)

// Fixed texts shared by the views and the plain-text CLI output.
const (
	AppTitle      = "My Pokedex"
	OverviewTitle = "Overview"
	LoadingText   = "Loading..."
	// GenericError is the only failure text users see; the cause goes to the log.
	GenericError = "Something went wrong."
)

// ListingLines renders a listing as a 1-based numbered list.
func ListingLines(listing pokeapi.Listing) []string {
	lines := make([]string, 0, len(listing.Results))
	for i, entry := range listing.Results {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, entry.Name))
	}
	return lines
}

// DetailLines renders a detail record as its field lines, without the name
// heading. Types are joined with the locale's short conjunction.
func DetailLines(record pokeapi.DetailRecord, lists listfmt.Formatter) []string {
	sprite := record.SpriteURL
	if sprite == "" {
		sprite = "none"
	}
	return []string{
		"sprite: " + sprite,
		fmt.Sprintf("id: %d", record.ID),
		fmt.Sprintf("height: %d", record.Height),
		fmt.Sprintf("weight: %d", record.Weight),
		"types: " + lists.Join(record.TypeNames()),
	}
}
