package cli

import (
	stderrors "errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/envpanel/internal/config"
	"github.com/rileyhilliard/envpanel/internal/display"
	"github.com/rileyhilliard/envpanel/internal/errors"
	"github.com/rileyhilliard/envpanel/internal/logger"
	"github.com/rileyhilliard/envpanel/internal/panel"
	"github.com/rileyhilliard/envpanel/internal/ui"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Mirror the panel in the terminal",
	Long: `Render the main screen exactly as the display would, into the terminal.

Useful for checking wiring and layout without an OLED attached. Sampling
errors are shown under the last good frame and sampling continues.

Examples:
  envpanel watch
  envpanel watch --interval 1s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand()
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "time between frames (default: loop.render_interval)")
	rootCmd.AddCommand(watchCmd)
}

func watchCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	render, err := previewRenderer(cfg, newSampler(cfg, logger.Noop()))
	if err != nil {
		return err
	}

	interval := watchInterval
	if interval <= 0 {
		interval = cfg.Loop.RenderInterval
	}

	if _, err := tea.NewProgram(ui.NewPanelModel(render, interval)).Run(); err != nil {
		return errors.Wrap(err, "Terminal preview failed")
	}
	return nil
}

// previewRenderer returns a function that samples once and draws the result
// onto an in-memory surface the size of the configured display.
func previewRenderer(cfg *config.Config, sampler panel.Sampler) (ui.FrameFunc, error) {
	preview, err := display.NewPreview(displaySize(cfg))
	if err != nil {
		return nil, errors.FromDisplay(err)
	}
	return func() (ui.Frame, error) {
		snap, err := sampler.Snapshot()
		if err != nil {
			return ui.Frame{}, stderrors.New(errors.FromError(err).Message)
		}
		if err := panel.DrawLines(preview, snap.Lines()); err != nil {
			return ui.Frame{}, stderrors.New(errors.FromError(err).Message)
		}
		return ui.Frame{
			Image:        preview.Frame(),
			TemperatureC: float64(snap.Reading.TemperatureC),
		}, nil
	}, nil
}
