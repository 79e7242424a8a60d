package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames defines the animation shown while the first frame is sampled.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

// TrendWidth is how many temperature samples the sparkline shows.
const TrendWidth = 32

// Frame is one rendered panel image plus the temperature it shows.
type Frame struct {
	Image        string
	TemperatureC float64
}

// FrameFunc produces one rendered panel frame.
type FrameFunc func() (Frame, error)

type frameMsg struct {
	frame Frame
	err   error
	at    time.Time
}

type refreshMsg struct{}

// PanelModel is a Bubble Tea model that mirrors the panel in the terminal,
// re-sampling every interval until the user quits. It also keeps a short
// temperature history drawn as a sparkline under the frame.
type PanelModel struct {
	render   FrameFunc
	interval time.Duration
	spinner  spinner.Model
	trend    *Trend

	frame   string
	err     error
	updated time.Time
	frames  int
}

// NewPanelModel creates a model that calls render every interval.
func NewPanelModel(render FrameFunc, interval time.Duration) PanelModel {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	return PanelModel{
		render:   render,
		interval: interval,
		spinner:  sp,
		trend:    NewTrend(DefaultTrendSize),
	}
}

// Init starts the spinner and takes the first sample.
func (m PanelModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.sample())
}

func (m PanelModel) sample() tea.Cmd {
	render := m.render
	return func() tea.Msg {
		frame, err := render()
		return frameMsg{frame: frame, err: err, at: time.Now()}
	}
}

// Update handles key presses, finished samples and refresh ticks.
func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case frameMsg:
		m.err = msg.err
		if msg.err == nil {
			m.frame = msg.frame.Image
			m.trend.Push(msg.frame.TemperatureC)
			m.updated = msg.at
			m.frames++
		}
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return refreshMsg{} })
	case refreshMsg:
		return m, m.sample()
	case spinner.TickMsg:
		if m.waiting() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m PanelModel) waiting() bool {
	return m.frame == "" && m.err == nil
}

// Frames returns how many frames have been shown.
func (m PanelModel) Frames() int {
	return m.frames
}

// View renders the last frame inside a border, with any sampling error below.
func (m PanelModel) View() string {
	if m.waiting() {
		return m.spinner.View() + " Sampling...\n"
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var out string
	if m.frame != "" {
		out = boxStyle.Render(trimNewline(m.frame)) + "\n"
	}
	if m.trend.Len() > 0 {
		last := m.trend.Last(1)[0]
		out += fmt.Sprintf("%s %s %.2fC\n",
			mutedStyle.Render("temp"), RenderSparkline(m.trend.Last(TrendWidth), TrendWidth), last)
	}
	if m.err != nil {
		out += RenderFailure("sample", m.err.Error()) + "\n"
	}
	if !m.updated.IsZero() {
		out += mutedStyle.Render("updated "+m.updated.Format("15:04:05")+" · q to quit") + "\n"
	}
	return out
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}
