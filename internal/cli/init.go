package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/envpanel/internal/config"
	"github.com/rileyhilliard/envpanel/internal/errors"
	"github.com/rileyhilliard/envpanel/internal/ui"
	"github.com/spf13/cobra"
)

var (
	initForce bool
	initPath  string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write envpanel.yaml with every setting at its default value.

Examples:
  envpanel init
  envpanel init --path /etc/envpanel/config.yaml
  envpanel init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), InitOptions{
			Path:           initPath,
			Overwrite:      initForce,
			NonInteractive: !ui.IsTerminal(os.Stdin),
		})
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	initCmd.Flags().StringVar(&initPath, "path", config.ConfigFileName, "where to write the config")
	rootCmd.AddCommand(initCmd)
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Destination, defaults to ./envpanel.yaml
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Fail instead of asking before overwriting
}

// confirmOverwrite asks whether to replace an existing file.
var confirmOverwrite = func(path string) (bool, error) {
	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return overwrite, nil
}

// Init writes a default config file.
func Init(w io.Writer, opts InitOptions) error {
	path := opts.Path
	if path == "" {
		path = config.ConfigFileName
	}

	if _, err := os.Stat(path); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}

		overwrite, err := confirmOverwrite(path)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	if err := config.Write(path, config.DefaultConfig(), true); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s Wrote %s\n", ui.SymbolSuccess, path)
	return nil
}
