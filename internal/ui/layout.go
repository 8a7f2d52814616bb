package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops its
	// query counters.
	LayoutCompactWidth = 60
)

// Log overlay limits.
const (
	// LogOverlayLines is the number of trailing log lines loaded into the overlay.
	LogOverlayLines = 400
)

const helpModalWidth = 40

// Timing constants.
const (
	// DefaultUIInterval is how often the header re-reads the state store.
	DefaultUIInterval = time.Second
)
