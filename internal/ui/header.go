package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// renderHeader renders the title bar: app title, breadcrumb, query counters
// and the age of the last status change.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render(AppTitle, styles.Logo)}

	crumb := OverviewTitle
	if m.screen == ScreenDetail {
		crumb = m.detailTitle()
	}
	parts = append(parts, bg.Render(truncate(crumb, 32), styles.Text))

	if !compact {
		snap := m.snapshot
		loadingStyle := styles.MutedText
		if snap.Loading > 0 {
			loadingStyle = styles.InfoText
		}
		failedStyle := styles.MutedText
		if snap.Failed > 0 {
			failedStyle = styles.DangerText
		}
		parts = append(parts,
			bg.Render("Cached:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", snap.Succeeded), styles.SuccessText)+
				bg.Spaces(2)+
				bg.Render("Loading:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", snap.Loading), loadingStyle)+
				bg.Spaces(2)+
				bg.Render("Failed:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", snap.Failed), failedStyle),
		)
		if !snap.LastUpdated.IsZero() {
			parts = append(parts, bg.Render("updated "+humanize.Time(snap.LastUpdated), styles.FaintText))
		}
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the mounted screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var bindings []key.Binding
	switch {
	case m.showLogs:
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Logs, m.keys.Quit}
	case m.screen == ScreenDetail:
		bindings = m.keys.DetailHelp()
	default:
		bindings = m.keys.ShortHelp()
	}

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(bindings)+1)
	for _, b := range bindings {
		h := b.Help()
		segments = append(segments,
			bg.Render(h.Key, styles.AccentText)+colon+bg.Render(h.Desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
