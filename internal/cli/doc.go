// Package cli implements the envpanel command-line interface.
//
// The root command runs the panel in the foreground until SIGINT or
// SIGTERM. Subcommands cover everything around it:
//
//	envpanel                 - Drive the SSD1306 panel
//	envpanel status [--json] - Take one reading and print it
//	envpanel watch           - Mirror the panel in the terminal
//	envpanel init [--force]  - Write a default config file
//	envpanel service ...     - Install or control the system service
//	envpanel version         - Print build information
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color) are defined on the root
// command and available to all subcommands.
//
// # Configuration
//
// Every command that samples hardware loads its config through loadConfig,
// which applies the search order and environment overrides of the config
// package and validates the result before anything is opened.
package cli
