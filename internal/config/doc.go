// Package config loads the pokedex configuration file.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pokedex/config.toml
//  3. If the file doesn't exist, use the defaults
//  4. If the file exists but a field is missing or blank, use its default
//
// # TOML Format
//
//	base_url = "https://pokeapi.co/api/v2/"
//	request_timeout = "10s"
//	locale = "en-GB"
//	log_file = "~/.local/state/pokedex/pokedex.log"
//	log_level = "info"
//
// Every field is optional. Values are trimmed, and a leading "~" in log_file
// expands to the home directory.
//
// # Error Handling
//
// A missing file is not an error. Invalid TOML and an unparsable or
// non-positive request_timeout are reported with a "parse config" prefix.
// Unknown locales and log levels are accepted here and resolved by the
// packages that consume them.
package config
