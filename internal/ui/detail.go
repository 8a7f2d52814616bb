package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pokedex/internal/pokeapi"
)

// renderDetail renders the selected Pokémon's record.
func (m Model) renderDetail() string {
	if pending, ok := m.renderPending(); ok {
		return pending
	}
	record, ok := m.status.Data.(pokeapi.DetailRecord)
	if !ok {
		return m.theme.Styles().DangerText.Render(GenericError)
	}

	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(record.Name))
	b.WriteString("  ")
	for _, name := range record.TypeNames() {
		b.WriteString(styles.TypeStyle(name).Render(strings.ToUpper(name)))
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	for _, line := range DetailLines(record, m.lists) {
		label, value, found := strings.Cut(line, ": ")
		if !found {
			b.WriteString(styles.Text.Render(line))
			b.WriteString("\n")
			continue
		}
		b.WriteString(styles.MutedText.Render(label + ":"))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(value))
		b.WriteString("\n")
	}
	return b.String()
}

// handleDetailKey returns to the listing.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.selection.Clear()
	}
	return m, nil
}

// detailTitle is the header breadcrumb for the detail screen.
func (m Model) detailTitle() string {
	return fmt.Sprintf("%s › %s", OverviewTitle, titleCase(m.name))
}
