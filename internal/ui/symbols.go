package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Cycle committed
	SymbolFail     = "✗" // Cycle failed
	SymbolPending  = "○" // No data yet
	SymbolProgress = "◐" // Cycle in flight
	SymbolLive     = "●" // Connected
	SymbolSkipped  = "⊘" // Tick skipped or result dropped
)
