package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/five82/pokedex/internal/app"
	"github.com/five82/pokedex/internal/listfmt"
	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/query"
	"github.com/five82/pokedex/internal/ui"
)

var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string           `help:"Config file path (default ~/.config/pokedex/config.toml)." placeholder:"PATH"`
	Prefs    string           `help:"Preferences file path (default ~/.config/pokedex/prefs.toml)." placeholder:"PATH"`
	BaseURL  string           `help:"PokeAPI root URL." name:"base-url" placeholder:"URL"`
	Locale   string           `help:"Locale used to join type names, e.g. en-GB or de."`
	LogFile  string           `help:"Log file path; - disables logging." name:"log-file" placeholder:"PATH"`
	LogLevel string           `help:"Log level: debug, info, warn or error." name:"log-level"`
	Version  kong.VersionFlag `help:"Show version." short:"V"`
}

func (g *Globals) options() app.Options {
	return app.Options{
		ConfigPath: g.Config,
		PrefsPath:  g.Prefs,
		Version:    version,
		BaseURL:    g.BaseURL,
		Locale:     g.Locale,
		LogFile:    g.LogFile,
		LogLevel:   g.LogLevel,
	}
}

// CLI is the top-level command structure for pokedex.
type CLI struct {
	Globals

	Browse BrowseCmd `cmd:"" default:"1" help:"Browse Pokémon interactively (default)."`
	List   ListCmd   `cmd:"" help:"Print the first page of Pokémon."`
	Show   ShowCmd   `cmd:"" help:"Print the details of one Pokémon."`
}

// environment carries process-level dependencies into command Run methods.
type environment struct {
	ctx        context.Context
	stdout     io.Writer
	isTerminal func() bool
}

// BrowseCmd starts the TUI.
type BrowseCmd struct{}

// Run executes the browse command.
func (b *BrowseCmd) Run(g *Globals, env *environment) error {
	if !env.isTerminal() {
		return errors.New("browse: requires a terminal (TTY); use list or show for plain output")
	}
	return app.Run(env.ctx, g.options())
}

// ListCmd prints the listing.
type ListCmd struct {
	Output string `short:"o" enum:"text,json,yaml" default:"text" help:"Output format: text, json or yaml."`
}

// Run executes the list command.
func (l *ListCmd) Run(g *Globals, env *environment) error {
	data, _, err := fetch(env, g, pokeapi.ListKey(), l.Output)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	listing := data.(pokeapi.Listing)
	if l.Output != "text" {
		return encode(env.stdout, l.Output, listing)
	}
	return writeLines(env.stdout, append([]string{ui.OverviewTitle, ""}, ui.ListingLines(listing)...))
}

// ShowCmd prints one detail record.
type ShowCmd struct {
	Name   string `arg:"" help:"Pokémon name, e.g. bulbasaur."`
	Output string `short:"o" enum:"text,json,yaml" default:"text" help:"Output format: text, json or yaml."`
}

// Run executes the show command.
func (s *ShowCmd) Run(g *Globals, env *environment) error {
	data, lists, err := fetch(env, g, pokeapi.DetailKey(s.Name), s.Output)
	if err != nil {
		return fmt.Errorf("show %s: %w", s.Name, err)
	}
	record := data.(pokeapi.DetailRecord)
	if s.Output != "text" {
		return encode(env.stdout, s.Output, record)
	}
	return writeLines(env.stdout, append([]string{record.Name, ""}, ui.DetailLines(record, lists)...))
}

// fetch runs one query through a fresh runtime and waits for its terminal
// status. In text mode a failure also prints the generic error line.
func fetch(env *environment, g *Globals, key query.Key, output string) (any, listfmt.Formatter, error) {
	rt, err := app.Setup(env.ctx, g.options())
	if err != nil {
		return nil, listfmt.Formatter{}, err
	}
	defer func() { _ = rt.Close() }()

	data, err := rt.Cache.Fetch(env.ctx, key)
	if err != nil {
		rt.Log.Errorw("query failed", "query", key.String(), "error", err)
		if output == "text" {
			_ = writeLines(env.stdout, []string{ui.GenericError})
		}
		return nil, rt.Lists, err
	}
	return data, rt.Lists, nil
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeLines(w io.Writer, lines []string) error {
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newParser(cli *CLI, stdout, stderr io.Writer, extra ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("pokedex"),
		kong.Description("A terminal Pokédex backed by PokeAPI."),
		kong.Vars{"version": version},
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	}
	return kong.New(cli, append(opts, extra...)...)
}

// run parses args and executes the selected command. It returns the process
// exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, isTerminal func() bool, extra ...kong.Option) int {
	var cli CLI
	parser, err := newParser(&cli, stdout, stderr, extra...)
	if err != nil {
		fmt.Fprintf(stderr, "pokedex: %v\n", err)
		return 1
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "pokedex: %v\n", err)
		return 1
	}
	env := &environment{ctx: ctx, stdout: stdout, isTerminal: isTerminal}
	if err := kctx.Run(&cli.Globals, env); err != nil {
		fmt.Fprintf(stderr, "pokedex: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, stdoutIsTerminal)
	cancel()
	os.Exit(code)
}
