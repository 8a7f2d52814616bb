// Package ui implements the pokedex terminal interface with Bubble Tea.
//
// # Screens
//
// Two mutually exclusive screens are mounted one at a time:
//
//   - Listing: the first page of Pokémon (query pokemonList) as a numbered
//     list under an "Overview" heading. enter or a digit selects an entry.
//   - Detail: the record of the selected Pokémon (query pokemonDetail) with
//     id, height, weight, sprite URL and the joined type names. esc, b or
//     backspace goes back.
//
// Both show a spinner while loading and a single generic message on failure.
//
// # Mounting
//
// Keys never switch screens directly. They change state.Selection; the
// model's selection observer signals a channel, and a listening command turns
// the signal into a message that remounts the screen matching the current
// selection. Remounting unsubscribes the previous screen's query
// subscription before subscribing the new one.
//
// Query statuses reach Update through a command that blocks on the
// subscription channel and is re-armed after every message. Each message
// carries its subscription ID so statuses from an unmounted screen are
// dropped.
//
// # Extras
//
// The header shows query counters from the state store and how long ago the
// last status changed. ? opens the help overlay, T cycles and saves the theme,
// r invalidates the mounted query, L shows the tail of the log file.
package ui
