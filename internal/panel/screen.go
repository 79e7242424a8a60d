package panel

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/envpanel/internal/sensor"
	"github.com/rileyhilliard/envpanel/internal/sysload"
)

// TimeLayout is how the clock line is formatted (YYYY/MM/DD HH:MM:SS).
const TimeLayout = "2006/01/02 15:04:05"

// UnknownAddress is shown when the local address cannot be determined.
const UnknownAddress = "???"

const (
	lineX     = 1
	lineTop   = 1
	linePitch = 10
)

// Snapshot is everything shown on the main screen.
type Snapshot struct {
	Time    time.Time
	Address string
	Reading sensor.Reading
	Load    sysload.LoadAverage
}

// Lines lays the snapshot out as six rows.
func (s Snapshot) Lines() []Line {
	addr := s.Address
	if addr == "" {
		addr = UnknownAddress
	}
	texts := []string{
		s.Time.Format(TimeLayout),
		"IP: " + addr,
		fmt.Sprintf("Temperature: %.2fC", s.Reading.TemperatureC),
		fmt.Sprintf("Humidity: %.2f%%RH", s.Reading.HumidityPct),
		fmt.Sprintf("Pressure: %.2fhPa", s.Reading.PressureHPa),
		fmt.Sprintf("Load: %.2f %.2f %.2f", s.Load.One, s.Load.Five, s.Load.Fifteen),
	}
	lines := make([]Line, len(texts))
	for i, text := range texts {
		lines[i] = Line{Text: text, X: lineX, Y: lineTop + i*linePitch}
	}
	return lines
}
