package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts relay traffic and tracks the client set size.
type Metrics struct {
	PacketRx prometheus.Counter
	PacketTx prometheus.Counter
	CmdRx    prometheus.Counter
	Clients  prometheus.Gauge
}

// NewMetrics registers relay metrics on reg. A nil reg uses the
// default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		PacketRx: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "router", Subsystem: "packet", Name: "rx",
			Help: "Incoming telemetry packets.",
		}),
		PacketTx: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "router", Subsystem: "packet", Name: "tx",
			Help: "Forwarded telemetry packets.",
		}),
		CmdRx: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "router", Subsystem: "cmd", Name: "rx",
			Help: "Commands received.",
		}),
		Clients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "router", Subsystem: "clients", Name: "count",
			Help: "Registered clients.",
		}),
	}
}
