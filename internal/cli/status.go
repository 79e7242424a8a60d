package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/envpanel/internal/lock"
	"github.com/rileyhilliard/envpanel/internal/logger"
	"github.com/rileyhilliard/envpanel/internal/panel"
	"github.com/rileyhilliard/envpanel/internal/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Take one reading and print it",
	Long: `Sample the sensor, load averages and local address once and print them.

Nothing is drawn on the display, so this works while the panel is running.
It fails on the same errors that would stop the panel.

Examples:
  envpanel status
  envpanel status --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand(cmd.OutOrStdout())
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(statusCmd)
}

// StatusOutput represents the JSON output for status command.
type StatusOutput struct {
	Time          string     `json:"time"`
	Address       string     `json:"address"`
	TemperatureC  float32    `json:"temperature_c"`
	HumidityPct   float32    `json:"humidity_pct"`
	PressureHPa   float32    `json:"pressure_hpa"`
	Load          [3]float32 `json:"load"`
	DisplayHolder string     `json:"display_holder,omitempty"`
}

// statusCommand implements the status command logic.
func statusCommand(w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return statusFailure(w, err)
	}

	snap, err := newSampler(cfg, logger.Default()).Snapshot()
	if err != nil {
		return statusFailure(w, err)
	}

	holder, held := lock.Holder(afero.NewOsFs(), lock.Path(os.TempDir(), lock.DisplayName(cfg.Display.Bus)))

	if statusJSON {
		out := toStatusOutput(snap)
		if held {
			out.DisplayHolder = holder
		}
		return WriteJSONSuccess(w, out)
	}

	rows := append(statusRows(snap), displayRow(holder, held))
	if isTerminal(w) {
		_, err = fmt.Fprint(w, ui.RenderReadings("envpanel status", rows))
		return err
	}
	_, err = fmt.Fprint(w, ui.RenderReadingsPlain(rows))
	return err
}

// isTerminal reports whether w is a terminal; only *os.File can be.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTerminal(f)
}

func displayRow(holder string, held bool) ui.ReadingRow {
	if !held {
		return ui.ReadingRow{Label: "Display", Value: "free"}
	}
	return ui.ReadingRow{Label: "Display", Value: "in use by " + holder}
}

func statusFailure(w io.Writer, err error) error {
	if statusJSON {
		_ = WriteJSONFromError(w, err)
	}
	return err
}

func toStatusOutput(snap panel.Snapshot) StatusOutput {
	return StatusOutput{
		Time:         snap.Time.Format(panel.TimeLayout),
		Address:      snap.Address,
		TemperatureC: snap.Reading.TemperatureC,
		HumidityPct:  snap.Reading.HumidityPct,
		PressureHPa:  snap.Reading.PressureHPa,
		Load:         [3]float32{snap.Load.One, snap.Load.Five, snap.Load.Fifteen},
	}
}

// statusRows lays a snapshot out for the terminal. The values match what
// the panel would show.
func statusRows(snap panel.Snapshot) []ui.ReadingRow {
	return []ui.ReadingRow{
		{Label: "Time", Value: snap.Time.Format(panel.TimeLayout)},
		{Label: "Address", Value: snap.Address, Missing: snap.Address == panel.UnknownAddress},
		{Label: "Temperature", Value: fmt.Sprintf("%.2f", snap.Reading.TemperatureC), Unit: "°C"},
		{Label: "Humidity", Value: fmt.Sprintf("%.2f", snap.Reading.HumidityPct), Unit: "%RH"},
		{Label: "Pressure", Value: humanize.FormatFloat("#,###.##", float64(snap.Reading.PressureHPa)), Unit: "hPa"},
		{Label: "Load", Value: fmt.Sprintf("%.2f %.2f %.2f", snap.Load.One, snap.Load.Five, snap.Load.Fifteen)},
	}
}
