package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color palette for the UI and the Pokémon type badges.
type Theme struct {
	Name string

	Background string // outermost background, also the badge text color
	Surface    string // header and command bar

	SelectionBg   string
	SelectionText string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// TypeColors maps a lowercase Pokémon type name to its badge color.
	TypeColors map[string]string
}

// pokemonTypes is the order type colors are listed in below.
var pokemonTypes = []string{
	"normal", "fire", "water", "grass", "electric", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

func typeColors(colors ...string) map[string]string {
	m := make(map[string]string, len(pokemonTypes))
	for i, name := range pokemonTypes {
		if i < len(colors) {
			m[name] = colors[i]
		}
	}
	return m
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	typeColors map[string]string
	badgeText  string
	muted      string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the lipgloss styles for t.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:   fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionText).
			Background(lipgloss.Color(t.SelectionBg)),

		typeColors: t.TypeColors,
		badgeText:  t.Background,
		muted:      t.Muted,
	}
}

// TypeStyle returns the badge style for a Pokémon type. Unknown types use the
// muted color.
func (s Styles) TypeStyle(typeName string) lipgloss.Style {
	color := s.typeColors[strings.ToLower(strings.TrimSpace(typeName))]
	if color == "" {
		color = s.muted
	}
	return fg(s.badgeText).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of s with every text style painted on bgColor.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, style := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo, &out.Selected,
	} {
		*style = style.Background(bg)
	}
	return out
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

var themes = map[string]Theme{
	// https://github.com/EdenEast/nightfox.nvim
	"Nightfox": {
		Name:          "Nightfox",
		Background:    "#131a24",
		Surface:       "#192330",
		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",
		Text:          "#cdcecf",
		Muted:         "#738091",
		Faint:         "#71839b",
		Accent:        "#719cd6",
		Success:       "#81b29a",
		Warning:       "#dbc074",
		Danger:        "#c94f6d",
		Info:          "#63cdcf",
		TypeColors: typeColors(
			"#738091", "#f4a261", "#719cd6", "#81b29a", "#dbc074", "#63cdcf",
			"#c94f6d", "#9d79d6", "#d67ad2", "#86abdc", "#d16983", "#8ebaa4",
			"#c3a767", "#8e6fbf", "#5a93aa", "#39506d", "#aeafb0", "#e0c989",
		),
	},
	// https://github.com/rebelot/kanagawa.nvim
	"Kanagawa": {
		Name:          "Kanagawa",
		Background:    "#16161D",
		Surface:       "#1F1F28",
		SelectionBg:   "#2D4F67",
		SelectionText: "#DCD7BA",
		Text:          "#DCD7BA",
		Muted:         "#C8C093",
		Faint:         "#727169",
		Accent:        "#7E9CD8",
		Success:       "#98BB6C",
		Warning:       "#E6C384",
		Danger:        "#E46876",
		Info:          "#7FB4CA",
		TypeColors: typeColors(
			"#727169", "#FFA066", "#7E9CD8", "#98BB6C", "#E6C384", "#7FB4CA",
			"#E46876", "#957FB8", "#C0A36E", "#A3D4D5", "#D27E99", "#76946A",
			"#DCA561", "#938AA9", "#658594", "#54546D", "#C8C093", "#D27E99",
		),
	},
	// Tailwind slate and sky scales.
	"Slate": {
		Name:          "Slate",
		Background:    "#020617",
		Surface:       "#0f172a",
		SelectionBg:   "#0284c7",
		SelectionText: "#f8fafc",
		Text:          "#f1f5f9",
		Muted:         "#94a3b8",
		Faint:         "#64748b",
		Accent:        "#38bdf8",
		Success:       "#22c55e",
		Warning:       "#f59e0b",
		Danger:        "#ef4444",
		Info:          "#06b6d4",
		TypeColors: typeColors(
			"#64748b", "#f97316", "#0ea5e9", "#22c55e", "#eab308", "#22d3ee",
			"#dc2626", "#a855f7", "#d97706", "#818cf8", "#ec4899", "#84cc16",
			"#a16207", "#7c3aed", "#4f46e5", "#334155", "#94a3b8", "#f472b6",
		),
	},
}

// GetTheme returns the named theme, or the first theme for unknown names.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns the available theme names in cycle order.
func ThemeNames() []string {
	return themeOrder
}
