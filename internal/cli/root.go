package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/envpanel/internal/errors"
	"github.com/rileyhilliard/envpanel/internal/logger"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "envpanel",
	Short: "Show BME280 readings and host load on an SSD1306 display",
	Long: `envpanel samples a BME280 sensor through sysfs, reads the host's load
averages and local address, and draws them on a 128x64 SSD1306 OLED.

It runs in the foreground until interrupted (Ctrl+C or SIGTERM), then shows
a goodbye banner and clears the display.

Examples:
  envpanel
  envpanel --config /etc/envpanel/config.yaml
  ENVPANEL_LOOP_RENDER_INTERVAL=1s envpanel`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
		if noColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPanel()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./envpanel.yaml, ~/.config/envpanel/config.yaml, /etc/envpanel/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every render cycle")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

// Execute runs the root command. Any error is printed to stderr and the
// process exits with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if isUnknownCommandError(err) {
			err = errors.New(errors.ErrGeneric,
				fmt.Sprintf("Unknown command or flag: %s", describeUnknown(err)),
				"Run 'envpanel --help' to see what's available.")
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// isUnknownCommandError reports whether cobra rejected the command line.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the quoted command name out of cobra's
// `unknown command "foo" for "envpanel"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

func describeUnknown(err error) string {
	if name := extractUnknownCommand(err); name != "" {
		return name
	}
	if _, flag, ok := strings.Cut(err.Error(), ": "); ok {
		return flag
	}
	return err.Error()
}
