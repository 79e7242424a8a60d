package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Reading succeeded
	SymbolFail     = "✗" // Reading failed
	SymbolComplete = "●" // Row bullet
	SymbolUnknown  = "○" // Value not available
)
