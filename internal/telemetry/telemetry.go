// Package telemetry exposes the panel's latest sample as Prometheus metrics.
package telemetry

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rileyhilliard/envpanel/internal/sensor"
	"github.com/rileyhilliard/envpanel/internal/sysload"
)

// Collector holds the panel gauges on a private registry.
type Collector struct {
	registry *prometheus.Registry

	temperature prometheus.Gauge
	humidity    prometheus.Gauge
	pressure    prometheus.Gauge
	load        *prometheus.GaugeVec
	renders     prometheus.Counter
	lastRender  prometheus.Gauge
}

// New creates a Collector with all metrics registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "envpanel_temperature_celsius",
			Help: "Last sampled temperature.",
		}),
		humidity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "envpanel_humidity_percent",
			Help: "Last sampled relative humidity.",
		}),
		pressure: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "envpanel_pressure_hpa",
			Help: "Last sampled barometric pressure.",
		}),
		load: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "envpanel_load_average",
			Help: "Host load average as shown on the panel.",
		}, []string{"window"}),
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "envpanel_renders_total",
			Help: "Completed render cycles.",
		}),
		lastRender: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "envpanel_last_render_timestamp_seconds",
			Help: "Unix time of the last completed render cycle.",
		}),
	}
	c.registry.MustRegister(c.temperature, c.humidity, c.pressure, c.load, c.renders, c.lastRender)
	return c
}

// ObserveSample records one sensor reading and load average.
func (c *Collector) ObserveSample(r sensor.Reading, l sysload.LoadAverage) {
	c.temperature.Set(float64(r.TemperatureC))
	c.humidity.Set(float64(r.HumidityPct))
	c.pressure.Set(float64(r.PressureHPa))
	c.load.WithLabelValues("1m").Set(float64(l.One))
	c.load.WithLabelValues("5m").Set(float64(l.Five))
	c.load.WithLabelValues("15m").Set(float64(l.Fifteen))
}

// ObserveRender records a completed render cycle.
func (c *Collector) ObserveRender(at time.Time) {
	c.renders.Inc()
	c.lastRender.Set(float64(at.Unix()))
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Server is a running metrics endpoint.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Serve starts serving /metrics on addr in the background.
func Serve(addr string, c *Collector) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	s := &Server{
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
	}
	go func() { _ = s.srv.Serve(ln) }()
	return s, nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown stops the server, waiting for in-flight scrapes.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
