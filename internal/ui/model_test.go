package ui

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"go.uber.org/zap/zaptest"

	"github.com/five82/pokedex/internal/listfmt"
	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/query"
	"github.com/five82/pokedex/internal/state"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

const listingBody = `{"count":1302,"results":[
{"name":"bulbasaur","url":"https://pokeapi.co/api/v2/pokemon/1/"},
{"name":"ivysaur","url":"https://pokeapi.co/api/v2/pokemon/2/"},
{"name":"venusaur","url":"https://pokeapi.co/api/v2/pokemon/3/"},
{"name":"charmander","url":"https://pokeapi.co/api/v2/pokemon/4/"},
{"name":"charmeleon","url":"https://pokeapi.co/api/v2/pokemon/5/"},
{"name":"charizard","url":"https://pokeapi.co/api/v2/pokemon/6/"},
{"name":"squirtle","url":"https://pokeapi.co/api/v2/pokemon/7/"},
{"name":"wartortle","url":"https://pokeapi.co/api/v2/pokemon/8/"},
{"name":"blastoise","url":"https://pokeapi.co/api/v2/pokemon/9/"}]}`

const bulbasaurBody = `{"id":1,"name":"bulbasaur","height":7,"weight":69,
"sprites":{"front_default":"https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/1.png"},
"types":[{"slot":1,"type":{"name":"grass"}},{"slot":2,"type":{"name":"poison"}}]}`

// stubAPI serves the listing and bulbasaur. Every other path is a 404.
type stubAPI struct {
	mu    sync.Mutex
	calls map[string]int
	down  bool
}

func (s *stubAPI) Get(_ context.Context, path string, _ url.Values) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[path]++
	if s.down {
		return nil, fmt.Errorf("%w: dial tcp: connection refused", pokeapi.ErrTransport)
	}
	switch path {
	case "pokemon":
		return []byte(listingBody), nil
	case "pokemon/bulbasaur/":
		return []byte(bulbasaurBody), nil
	}
	return nil, fmt.Errorf("%w: api %s returned status 404", pokeapi.ErrTransport, path)
}

func (s *stubAPI) count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func newTestModel(t *testing.T, api *stubAPI) Model {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cache := query.New(api, pokeapi.Endpoints())
	m := New(Options{
		Context:   ctx,
		Cache:     cache,
		Selection: &state.Selection{},
		Lists:     listfmt.New("en-GB"),
		Log:       zaptest.NewLogger(t).Sugar(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	t.Cleanup(m.Close)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	next, _ = next.(Model).Update(mountMsg{})
	return next.(Model)
}

// settle feeds status messages of the mounted subscription until it reaches a
// terminal phase.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	for !m.status.Terminal() {
		done := make(chan tea.Msg, 1)
		sub := m.sub
		go func() { done <- listenForStatus(sub)() }()
		select {
		case msg := <-done:
			next, _ := m.Update(msg)
			m = next.(Model)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", sub.Key())
		}
	}
	return m
}

// followSelection delivers the pending selection signal.
func followSelection(t *testing.T, m Model) Model {
	t.Helper()
	select {
	case <-m.selectionCh:
	case <-time.After(time.Second):
		t.Fatal("selection change was not observed")
	}
	next, _ := m.Update(selectionMsg{})
	return next.(Model)
}

func press(m Model, keys string) Model {
	var msg tea.KeyMsg
	switch keys {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_ListingShowsNineEntries(t *testing.T) {
	m := settle(t, newTestModel(t, &stubAPI{}))

	if m.Screen() != ScreenListing {
		t.Fatalf("Screen() = %v, want listing", m.Screen())
	}
	view := m.View()
	if !strings.Contains(view, OverviewTitle) {
		t.Fatalf("view missing %q:\n%s", OverviewTitle, view)
	}
	names := []string{"bulbasaur", "ivysaur", "venusaur", "charmander", "charmeleon", "charizard", "squirtle", "wartortle", "blastoise"}
	last := -1
	for i, name := range names {
		entry := fmt.Sprintf("%d. %s", i+1, name)
		idx := strings.Index(view, entry)
		if idx < 0 {
			t.Fatalf("view missing %q:\n%s", entry, view)
		}
		if idx < last {
			t.Fatalf("entry %q out of order", entry)
		}
		last = idx
	}
}

func TestModel_LoadingIndicatorBeforeData(t *testing.T) {
	m := newTestModel(t, &stubAPI{})
	m.status = state.Status{Phase: state.Loading}
	if view := m.View(); !strings.Contains(view, LoadingText) {
		t.Fatalf("view missing %q:\n%s", LoadingText, view)
	}
}

func TestModel_UninitializedRendersAsLoading(t *testing.T) {
	m := newTestModel(t, &stubAPI{})
	m.status = state.Status{}
	view := m.View()
	if !strings.Contains(view, LoadingText) {
		t.Fatalf("view missing %q:\n%s", LoadingText, view)
	}
	if strings.Contains(view, GenericError) {
		t.Fatalf("uninitialized query rendered as failed:\n%s", view)
	}
}

func TestModel_SelectShowsDetail(t *testing.T) {
	m := settle(t, newTestModel(t, &stubAPI{}))

	m = press(m, "1")
	if name, ok := m.selection.Current(); !ok || name != "bulbasaur" {
		t.Fatalf("selection = %q/%v, want bulbasaur", name, ok)
	}
	m = settle(t, followSelection(t, m))

	if m.Screen() != ScreenDetail {
		t.Fatalf("Screen() = %v, want detail", m.Screen())
	}
	view := m.View()
	for _, want := range []string{"bulbasaur", "id: 1", "height: 7", "weight: 69", "types: grass and poison", "sprites/pokemon/1.png"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_EnterSelectsCursorEntry(t *testing.T) {
	m := settle(t, newTestModel(t, &stubAPI{}))

	m = press(m, "j")
	m = press(m, "j")
	m = press(m, "k")
	m = press(m, "enter")
	if name, _ := m.selection.Current(); name != "ivysaur" {
		t.Fatalf("selection = %q, want ivysaur", name)
	}
}

func TestModel_BackReturnsToCachedListing(t *testing.T) {
	api := &stubAPI{}
	m := settle(t, newTestModel(t, api))
	m = settle(t, followSelection(t, press(m, "1")))

	m = press(m, "esc")
	if _, ok := m.selection.Current(); ok {
		t.Fatal("selection still set after back")
	}
	m = followSelection(t, m)
	if m.Screen() != ScreenListing {
		t.Fatalf("Screen() = %v, want listing", m.Screen())
	}
	if m.status.Phase != state.Success {
		t.Fatalf("phase = %v, want cached Success", m.status.Phase)
	}
	if got := api.count("pokemon"); got != 1 {
		t.Fatalf("listing fetched %d times, want 1", got)
	}
}

func TestModel_IgnoresStatusFromTornDownSubscription(t *testing.T) {
	m := settle(t, newTestModel(t, &stubAPI{}))
	oldID := m.sub.ID()

	m = settle(t, followSelection(t, press(m, "1")))

	next, cmd := m.Update(statusMsg{subID: oldID, status: state.Status{Phase: state.Error}})
	m = next.(Model)
	if cmd != nil {
		t.Fatal("stale status re-armed a listener")
	}
	if m.status.Phase != state.Success {
		t.Fatalf("phase = %v, want Success", m.status.Phase)
	}
}

func TestModel_FailureShowsGenericError(t *testing.T) {
	m := settle(t, newTestModel(t, &stubAPI{down: true}))

	view := m.View()
	if !strings.Contains(view, GenericError) {
		t.Fatalf("view missing %q:\n%s", GenericError, view)
	}
	if strings.Contains(view, "connection refused") {
		t.Fatalf("view leaks the cause:\n%s", view)
	}
}

func TestModel_UnknownPokemonShowsGenericError(t *testing.T) {
	m := newTestModel(t, &stubAPI{})
	m.selection.Select("missingno")
	m = settle(t, followSelection(t, m))

	if !strings.Contains(m.View(), GenericError) {
		t.Fatalf("view missing %q:\n%s", GenericError, m.View())
	}
	m = press(m, "b")
	m = followSelection(t, m)
	if m.Screen() != ScreenListing {
		t.Fatalf("Screen() = %v, want listing", m.Screen())
	}
}

func TestModel_ReloadRefetches(t *testing.T) {
	api := &stubAPI{down: true}
	m := settle(t, newTestModel(t, api))

	api.mu.Lock()
	api.down = false
	api.mu.Unlock()

	m = press(m, "r")
	for m.status.Phase != state.Success {
		m.status = state.Status{}
		m = settle(t, m)
	}
	if got := api.count("pokemon"); got != 2 {
		t.Fatalf("listing fetched %d times, want 2", got)
	}
}

func TestModel_CycleThemePersists(t *testing.T) {
	m := newTestModel(t, &stubAPI{})
	start := m.theme.Name

	m = press(m, "T")
	if m.theme.Name == start {
		t.Fatalf("theme did not change from %q", start)
	}
	data, err := os.ReadFile(m.prefsPath)
	if err != nil {
		t.Fatalf("read prefs: %v", err)
	}
	if !strings.Contains(string(data), m.theme.Name) {
		t.Fatalf("prefs = %q, want theme %q", data, m.theme.Name)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newTestModel(t, &stubAPI{})
	m = press(m, "?")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help not shown:\n%s", m.View())
	}
	m = press(m, "x")
	if m.showHelp {
		t.Fatal("help still shown after key press")
	}
}

func TestModel_LogOverlay(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "pokedex.log")
	line := "2026-10-19T09:12:01.123Z\tWARN\tquery/cache.go:221\tquery failed\t{\"query\": \"pokemonList\"}\n"
	if err := os.WriteFile(logPath, []byte(line), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m := newTestModel(t, &stubAPI{})
	m.logPath = logPath

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")})
	m = next.(Model)
	if !m.showLogs || cmd == nil {
		t.Fatal("log overlay not opened")
	}
	next, _ = m.Update(cmd())
	m = next.(Model)
	if !strings.Contains(m.View(), "query failed") {
		t.Fatalf("log line missing:\n%s", m.View())
	}

	m = press(m, "esc")
	if m.showLogs {
		t.Fatal("log overlay still open after esc")
	}
}

func TestModel_Teatest_SelectAndQuit(t *testing.T) {
	api := &stubAPI{}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := New(Options{
		Context:   ctx,
		Cache:     query.New(api, pokeapi.Endpoints()),
		Selection: &state.Selection{},
		Lists:     listfmt.New(""),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("9. blastoise"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("weight: 69"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if final.Screen() != ScreenDetail {
		t.Fatalf("Screen() = %v, want detail", final.Screen())
	}
	if got := api.count("pokemon/bulbasaur/"); got != 1 {
		t.Fatalf("detail fetched %d times, want 1", got)
	}
}
