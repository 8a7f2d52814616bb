package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pokedex/internal/pokeapi"
)

// listing returns the mounted listing payload, if loaded.
func (m Model) listing() (pokeapi.Listing, bool) {
	if m.screen != ScreenListing {
		return pokeapi.Listing{}, false
	}
	listing, ok := m.status.Data.(pokeapi.Listing)
	return listing, ok
}

// renderListing renders the Overview heading and the numbered entries.
func (m Model) renderListing() string {
	if pending, ok := m.renderPending(); ok {
		return pending
	}
	listing, ok := m.listing()
	if !ok {
		return m.theme.Styles().DangerText.Render(GenericError)
	}

	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(OverviewTitle))
	b.WriteString("\n\n")
	for i, line := range ListingLines(listing) {
		if i == m.cursor {
			b.WriteString(styles.Selected.Render("› " + line))
		} else {
			b.WriteString(styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// handleListingKey moves the cursor and selects entries.
func (m Model) handleListingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	listing, ok := m.listing()
	if !ok || len(listing.Results) == 0 {
		return m, nil
	}
	last := len(listing.Results) - 1

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < last {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = last
	case key.Matches(msg, m.keys.Select):
		m.selection.Select(listing.Results[m.cursor].Name)
	case key.Matches(msg, m.keys.Jump):
		n, err := strconv.Atoi(msg.String())
		if err != nil || n < 1 || n > len(listing.Results) {
			return m, nil
		}
		m.cursor = n - 1
		m.selection.Select(listing.Results[m.cursor].Name)
	}
	return m, nil
}

// clampCursor keeps the cursor on an existing listing row.
func (m *Model) clampCursor() {
	listing, ok := m.listing()
	if !ok {
		return
	}
	if m.cursor >= len(listing.Results) {
		m.cursor = len(listing.Results) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
