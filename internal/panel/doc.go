// Package panel runs the status panel: it samples the sensor and host load,
// renders them to the display, and shuts down cleanly on SIGINT/SIGTERM.
//
// # Lifecycle
//
// Loop.Run walks through four phases:
//
//	Startup   - initialize the display and show the welcome banner
//	Running   - render the main screen every RenderInterval while polling
//	            the shutdown channel every Tick
//	Draining  - show the goodbye banner, then clear the display
//	Stopped   - Run returns nil
//
// Any sensor, load or display failure while Running ends Run with an
// *errors.Error. Only the network address lookup is allowed to fail; it
// renders as "???".
//
// # Timing
//
// The tick and the render period are tracked with two separate timestamps.
// The tick keeps shutdown latency low while the render period bounds how
// often the (slow) sensor reads and display flushes happen.
package panel
