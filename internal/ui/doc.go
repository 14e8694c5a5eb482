// Package ui provides styled plain-text output for sentinel's non-TUI
// commands (watch, snapshot, config show).
//
// Colors are 16-color ANSI codes so output stays readable when piped into
// log collectors that pass escapes through. Call DisableColors for
// --no-color.
//
// # Symbols
//
//	SymbolSuccess  (checkmark)  - Cycle committed
//	SymbolFail     (X)          - Cycle failed
//	SymbolPending  (circle)     - No data yet
//	SymbolProgress (half-fill)  - Cycle in flight
//	SymbolLive     (filled)     - Connected
//	SymbolSkipped  (slashed)    - Tick skipped or result dropped
package ui
