package cli

import (
	"fmt"
	"io"

	"github.com/rileyhilliard/envpanel/internal/config"
	"github.com/rileyhilliard/envpanel/internal/errors"
	"github.com/spf13/cobra"
	"github.com/takama/daemon"
)

const (
	serviceName        = "envpanel"
	serviceDescription = "SBC environment status panel"
)

// newService creates the system service handle. Tests replace it.
var newService = func() (daemon.Daemon, error) {
	return daemon.New(serviceName, serviceDescription, daemon.SystemDaemon)
}

// serviceAction is one subcommand of "envpanel service".
type serviceAction struct {
	name  string
	short string
	run   func(daemon.Daemon) (string, error)
}

var serviceActions = []serviceAction{
	{
		name:  "install",
		short: "Install envpanel as a system service reading " + config.SystemConfigPath,
		run: func(d daemon.Daemon) (string, error) {
			return d.Install("--config", config.SystemConfigPath)
		},
	},
	{name: "remove", short: "Remove the system service", run: daemon.Daemon.Remove},
	{name: "start", short: "Start the system service", run: daemon.Daemon.Start},
	{name: "stop", short: "Stop the system service", run: daemon.Daemon.Stop},
	{name: "status", short: "Show whether the system service is running", run: daemon.Daemon.Status},
}

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the envpanel system service",
	Long: `Install, remove, start, stop or query envpanel as a system service.

The installed service runs 'envpanel --config /etc/envpanel/config.yaml'.
Run 'envpanel init --path /etc/envpanel/config.yaml' first. Most actions
need root.

Examples:
  sudo envpanel service install
  sudo envpanel service start
  envpanel service status`,
}

func init() {
	for _, action := range serviceActions {
		action := action
		serviceCmd.AddCommand(&cobra.Command{
			Use:   action.name,
			Short: action.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return serviceCommand(cmd.OutOrStdout(), action)
			},
		})
	}
	rootCmd.AddCommand(serviceCmd)
}

func serviceCommand(w io.Writer, action serviceAction) error {
	srv, err := newService()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrGeneric,
			"System services aren't supported here",
			"envpanel services need systemd, upstart or SysV init.")
	}

	status, err := action.run(srv)
	if err != nil {
		msg := fmt.Sprintf("Service %s failed", action.name)
		if status != "" {
			msg += ": " + status
		}
		return errors.WrapWithCode(err, errors.ErrGeneric, msg,
			"Check that you're running as root (try sudo).")
	}

	fmt.Fprintln(w, status)
	return nil
}
