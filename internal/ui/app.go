package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/pokedex/internal/listfmt"
	"github.com/five82/pokedex/internal/logtail"
	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/prefs"
	"github.com/five82/pokedex/internal/query"
	"github.com/five82/pokedex/internal/state"
)

// Screen is the mounted view. Exactly one is mounted at a time.
type Screen int

const (
	ScreenListing Screen = iota
	ScreenDetail
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Cache     *query.Cache
	Selection *state.Selection
	Lists     listfmt.Formatter
	Log       *zap.SugaredLogger
	ThemeName string
	PrefsPath string
	LogPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	cache     *query.Cache
	store     *state.Store
	selection *state.Selection
	lists     listfmt.Formatter
	log       *zap.SugaredLogger
	prefsPath string
	logPath   string
	keys      keyMap

	// Selection changes arrive here from the observer; the channel only
	// signals, the current selection is read on receipt.
	selectionCh chan struct{}
	unobserve   func()

	// UI state
	theme   Theme
	spinner spinner.Model
	width   int
	height  int
	ready   bool

	// Mounted screen
	screen Screen
	name   string
	sub    *query.Subscription
	status state.Status
	cursor int

	// Header data
	snapshot state.Snapshot

	// Overlays
	showHelp   bool
	showLogs   bool
	logView    viewport.Model
	logEntries []logtail.Entry
	logErr     error
}

// New creates a new Bubble Tea model. It registers a selection observer;
// call Close when the program ends.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	selection := opts.Selection
	if selection == nil {
		selection = &state.Selection{}
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:         ctx,
		cache:       opts.Cache,
		store:       opts.Cache.Store(),
		selection:   selection,
		lists:       opts.Lists,
		log:         log,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		keys:        DefaultKeyMap(),
		selectionCh: make(chan struct{}, 1),
		theme:       GetTheme(themeName),
		spinner:     sp,
	}
	ch := m.selectionCh
	m.unobserve = selection.Observe(func(string, bool) {
		select {
		case ch <- struct{}{}:
		default:
			// A signal is already pending; the receiver reads the latest selection.
		}
	})
	return m
}

// Close releases the mounted subscription and the selection observer.
func (m Model) Close() {
	if m.sub != nil {
		m.sub.Unsubscribe()
	}
	if m.unobserve != nil {
		m.unobserve()
	}
}

// Screen reports the mounted screen.
func (m Model) Screen() Screen {
	return m.screen
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(DefaultUIInterval),
		listenForSelection(m.ctx, m.selectionCh),
		func() tea.Msg { return mountMsg{} },
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logView = viewport.New(msg.Width, m.logViewHeight())
		}
		m.ready = true
		m.resizeLogView()
		return m, nil

	case mountMsg:
		return m.syncScreen()

	case selectionMsg:
		next, cmd := m.syncScreen()
		return next, tea.Batch(cmd, listenForSelection(m.ctx, m.selectionCh))

	case statusMsg:
		if m.sub == nil || msg.subID != m.sub.ID() {
			// Delivered by a subscription that has since been torn down.
			return m, nil
		}
		m.status = msg.status
		m.snapshot = m.store.Snapshot()
		m.clampCursor()
		return m, listenForStatus(m.sub)

	case tickMsg:
		m.snapshot = m.store.Snapshot()
		return m, tickCmd(DefaultUIInterval)

	case logsMsg:
		m.logEntries = msg.entries
		m.logErr = msg.err
		m.refreshLogView()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return LoadingText
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n\n")
	if m.showLogs {
		b.WriteString(m.renderLogs())
	} else {
		b.WriteString(m.renderContent())
	}
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.log.Warnw("save preferences failed", "path", m.prefsPath, "error", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
		if m.showLogs {
			return m, loadLogsCmd(m.logPath)
		}
		return m, nil
	}

	if m.showLogs {
		return m.handleLogsKey(msg)
	}

	if key.Matches(msg, m.keys.Reload) {
		if m.sub != nil {
			m.log.Infow("reload requested", "query", m.sub.Key().String())
			m.cache.Invalidate(m.sub.Key())
		}
		return m, nil
	}

	switch m.screen {
	case ScreenDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListingKey(msg)
	}
}

// syncScreen mounts the screen matching the current selection. Nothing
// happens when it is already mounted.
func (m Model) syncScreen() (Model, tea.Cmd) {
	name, selected := m.selection.Current()
	want := ScreenListing
	if selected {
		want = ScreenDetail
	} else {
		name = ""
	}
	if m.sub != nil && m.screen == want && m.name == name {
		return m, nil
	}
	return m.mount(want, name)
}

// mount unsubscribes the previous screen and subscribes the new one.
func (m Model) mount(screen Screen, name string) (Model, tea.Cmd) {
	if m.sub != nil {
		m.sub.Unsubscribe()
		m.sub = nil
	}
	m.screen = screen
	m.name = name

	k := pokeapi.ListKey()
	if screen == ScreenDetail {
		k = pokeapi.DetailKey(name)
	}
	sub, err := m.cache.Subscribe(k)
	if err != nil {
		m.log.Errorw("subscribe failed", "query", k.String(), "error", err)
		m.status = state.Status{Phase: state.Error, Err: err}
		return m, nil
	}
	m.sub = sub
	m.status = m.cache.Status(k)
	m.clampCursor()
	return m, listenForStatus(sub)
}

// renderContent renders the mounted screen.
func (m Model) renderContent() string {
	switch m.screen {
	case ScreenDetail:
		return m.renderDetail()
	default:
		return m.renderListing()
	}
}

// renderPending renders the shared loading and error states. It reports
// false once the status carries data.
func (m Model) renderPending() (string, bool) {
	styles := m.theme.Styles()
	switch {
	case m.status.Pending():
		return m.spinner.View() + " " + styles.MutedText.Render(LoadingText), true
	case m.status.Phase == state.Error:
		return styles.DangerText.Render(GenericError), true
	default:
		return "", false
	}
}

// Messages

type tickMsg time.Time

type mountMsg struct{}

type selectionMsg struct{}

type statusMsg struct {
	subID  uint64
	status state.Status
}

type logsMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// listenForStatus waits for the next status of sub. A closed subscription
// yields no message, which ends the listen loop.
func listenForStatus(sub *query.Subscription) tea.Cmd {
	return func() tea.Msg {
		status, ok := <-sub.C()
		if !ok {
			return nil
		}
		return statusMsg{subID: sub.ID(), status: status}
	}
}

func listenForSelection(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ch:
			return selectionMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logsMsg{}
		}
		entries, err := logtail.Tail(path, LogOverlayLines)
		return logsMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	return err
}
