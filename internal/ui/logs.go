package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pokedex/internal/logtail"
)

// Header, command bar and the blank line below them.
const chromeLines = 3

func (m Model) logViewHeight() int {
	return max(m.height-chromeLines-1, 1)
}

func (m *Model) resizeLogView() {
	m.logView.Width = m.width
	m.logView.Height = m.logViewHeight()
	m.refreshLogView()
}

// refreshLogView renders the loaded entries into the viewport and scrolls to
// the newest line.
func (m *Model) refreshLogView() {
	styles := m.theme.Styles()
	switch {
	case m.logErr != nil:
		m.logView.SetContent(styles.DangerText.Render(m.logErr.Error()))
	case len(m.logEntries) == 0:
		m.logView.SetContent(styles.MutedText.Render("No log entries."))
	default:
		lines := make([]string, 0, len(m.logEntries))
		for _, entry := range m.logEntries {
			lines = append(lines, m.formatLogEntry(entry, styles))
		}
		m.logView.SetContent(strings.Join(lines, "\n"))
	}
	m.logView.GotoBottom()
}

func (m Model) formatLogEntry(entry logtail.Entry, styles Styles) string {
	if entry.Level == "" {
		return styles.Text.Render(entry.Message)
	}
	parts := []string{
		styles.FaintText.Render(entry.Time),
		m.levelStyle(entry.Level, styles).Render(padRight(entry.Level, 5)),
		styles.Text.Render(entry.Message),
	}
	if entry.Fields != "" {
		parts = append(parts, styles.MutedText.Render(truncate(entry.Fields, max(m.width/2, 20))))
	}
	return strings.Join(parts, " ")
}

func (m Model) levelStyle(level string, styles Styles) lipgloss.Style {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return styles.InfoText
	case "INFO":
		return styles.SuccessText
	case "WARN":
		return styles.WarningText.Bold(true)
	default:
		return styles.DangerText
	}
}

// renderLogs renders the log overlay.
func (m Model) renderLogs() string {
	return m.logView.View()
}

// handleLogsKey scrolls the overlay. esc closes it and r reloads the file.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.showLogs = false
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, loadLogsCmd(m.logPath)
	case key.Matches(msg, m.keys.Top):
		m.logView.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logView.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}
