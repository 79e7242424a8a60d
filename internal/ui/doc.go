// Package ui provides styled terminal output for envpanel's CLI.
//
// Colors are ANSI codes rendered through Lip Gloss, so they degrade to
// plain text when the output is not a terminal:
//
//	ColorSuccess   (green)  - Readings that succeeded
//	ColorError     (red)    - Failures
//	ColorWarning   (yellow) - Values that could not be determined
//	ColorInfo      (cyan)   - Values
//	ColorMuted     (gray)   - Labels and units
//
// RenderReadings draws the status report; RenderReadingsPlain is the same
// content without styling for scripts.
package ui
