package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/pokedex/internal/config"
	"github.com/five82/pokedex/internal/listfmt"
	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/prefs"
	"github.com/five82/pokedex/internal/query"
	"github.com/five82/pokedex/internal/state"
	"github.com/five82/pokedex/internal/ui"
)

// Options configure the application. Non-empty overrides win over the config
// file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/pokedex/prefs.toml
	Version    string

	BaseURL  string
	Locale   string
	LogFile  string
	LogLevel string
}

// Runtime holds the wired components shared by the TUI and the CLI commands.
type Runtime struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Log       *zap.SugaredLogger
	Client    *pokeapi.Client
	Store     *state.Store
	Cache     *query.Cache
	Selection *state.Selection
	Lists     listfmt.Formatter

	closeLog func() error
}

// Setup loads configuration and wires logger, client, store and cache.
func Setup(ctx context.Context, opts Options) (*Runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	log, closeLog, err := newLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Warnw("preferences unreadable, using defaults", "error", err)
	}

	userAgent := "pokedex/dev"
	if v := strings.TrimSpace(opts.Version); v != "" {
		userAgent = "pokedex/" + v
	}
	client, err := pokeapi.NewClient(cfg.BaseURL,
		pokeapi.WithTimeout(cfg.RequestTimeout),
		pokeapi.WithUserAgent(userAgent),
		pokeapi.WithLogger(log),
	)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("init pokeapi client: %w", err)
	}

	store := &state.Store{}
	cache := query.New(client, pokeapi.Endpoints(),
		query.WithStore(store),
		query.WithContext(ctx),
		query.WithLogger(log),
	)

	lists := listfmt.New(cfg.Locale)
	log.Infow("pokedex starting",
		"version", opts.Version,
		"base_url", client.BaseURL(),
		"locale", lists.Locale(),
		"timeout", cfg.RequestTimeout,
	)

	return &Runtime{
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Log:       log,
		Client:    client,
		Store:     store,
		Cache:     cache,
		Selection: &state.Selection{},
		Lists:     lists,
		closeLog:  closeLog,
	}, nil
}

// Close flushes and closes the log file.
func (r *Runtime) Close() error {
	if r == nil || r.closeLog == nil {
		return nil
	}
	return r.closeLog()
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := Setup(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	// Start the listing request before the first frame is drawn.
	Prefetch(rt.Cache, pokeapi.ListKey())

	err = ui.Run(ui.Options{
		Context:   ctx,
		Cache:     rt.Cache,
		Selection: rt.Selection,
		Lists:     rt.Lists,
		Log:       rt.Log,
		ThemeName: rt.Prefs.Theme,
		PrefsPath: rt.PrefsPath,
		LogPath:   rt.Config.LogFile,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func applyOverrides(cfg *config.Config, opts Options) {
	if v := strings.TrimSpace(opts.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(opts.Locale); v != "" {
		cfg.Locale = v
	}
	if v := strings.TrimSpace(opts.LogFile); v != "" {
		if expanded, err := config.ExpandPath(v); err == nil {
			v = expanded
		}
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

// newLogger writes console-encoded entries to path. The TUI owns the
// terminal, so nothing is logged to stderr. An empty path or "-" disables
// logging.
func newLogger(path, level string) (*zap.SugaredLogger, func() error, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		return zap.NewNop().Sugar(), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(file), lvl)
	logger := zap.New(core, zap.AddCaller())

	closeFn := func() error {
		_ = logger.Sync()
		return file.Close()
	}
	return logger.Sugar(), closeFn, nil
}
