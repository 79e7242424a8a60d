package panel

import (
	"time"

	"github.com/rileyhilliard/envpanel/internal/errors"
	"github.com/rileyhilliard/envpanel/internal/logger"
	"github.com/rileyhilliard/envpanel/internal/sensor"
)

// Sampler gathers one Snapshot from its collaborators. It is used by the
// loop on every render and by one-shot callers that have no display.
type Sampler struct {
	Sensor sensor.Reader
	Load   LoadReader

	// Address looks up the local address. Nil or failing lookups show
	// UnknownAddress.
	Address func() (string, error)

	// Now defaults to time.Now.
	Now func() time.Time

	// Log defaults to logger.Noop.
	Log logger.Logger
}

// Snapshot reads the clock, address, sensor and load, in that order.
// Only the address lookup is allowed to fail.
func (s Sampler) Snapshot() (Snapshot, error) {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	log := s.Log
	if log == nil {
		log = logger.Noop()
	}

	snap := Snapshot{Time: now(), Address: UnknownAddress}

	if s.Address != nil {
		if addr, err := s.Address(); err != nil {
			log.Debug("address lookup failed: %v", err)
		} else if addr != "" {
			snap.Address = addr
		}
	}

	reading, err := sensor.Sample(s.Sensor)
	if err != nil {
		return Snapshot{}, errors.FromError(err)
	}
	load, err := s.Load.LoadAverage()
	if err != nil {
		return Snapshot{}, errors.FromProc(err)
	}

	snap.Reading = reading
	snap.Load = load
	return snap, nil
}
