// Package logtail reads the end of the pokedex log file for the in-app log
// overlay.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// proportional to the window rather than the file. ParseLine splits lines
// written by zap's console encoder into their columns so the view can colour
// the level and dim the time and structured fields. Lines that do not parse
// are shown verbatim.
//
// The overlay reloads on demand, so several Tail calls for the same file can
// overlap; they are coalesced into one read with singleflight.
//
// A missing log file is not an error: Read returns nil, nil.
package logtail
