package ui

import "testing"

func TestTypeStyle_FallsBackToMuted(t *testing.T) {
	th := GetTheme("Nightfox")
	styles := th.Styles()

	if got := styles.TypeStyle(" Grass ").GetBackground(); got != styles.TypeStyle("grass").GetBackground() {
		t.Fatalf("TypeStyle not case-insensitive: %v", got)
	}
	if got, want := styles.TypeStyle("shadow").GetBackground(), styles.TypeStyle("").GetBackground(); got != want {
		t.Fatalf("TypeStyle(unknown) = %v, want muted %v", got, want)
	}
}

func TestThemesCoverEveryType(t *testing.T) {
	types := []string{"normal", "fire", "water", "grass", "electric", "ice", "fighting", "poison", "ground",
		"flying", "psychic", "bug", "rock", "ghost", "dragon", "dark", "steel", "fairy"}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, typ := range types {
			if th.TypeColors[typ] == "" {
				t.Fatalf("theme %s has no color for %s", name, typ)
			}
		}
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" {
		t.Fatalf("ThemeNames()[0] = %q, want Nightfox", names[0])
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Nightfox", got)
	}
}
