// Package app is the composition root of pokedex.
//
// # Architecture
//
// Setup wires the components shared by the TUI and the CLI commands:
//
//  1. Load ~/.config/pokedex/config.toml and apply command-line overrides
//  2. Open the zap log file (the TUI owns the terminal, so logs never go to
//     stderr)
//  3. Load UI preferences, falling back to defaults
//  4. Build the PokeAPI client, the state store and the query cache
//  5. Pick the list formatter for the configured locale
//
// Run additionally prefetches the listing query and hands everything to
// ui.Run, blocking until the user quits or the context is cancelled.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> Setup()          config, logger, client, store, cache
//	       ├─────> Prefetch()       start pokemonList before the first frame
//	       └─────> ui.Run()         Bubble Tea program (blocks)
//
// # Error Handling
//
// Everything that can fail does so in Setup: unreadable or invalid config,
// an unknown log level, an unwritable log file or a malformed base URL.
// Request failures after start-up are not errors of the application; they
// become Error statuses of the affected query and are logged.
package app
