package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts link traffic on both directions of the bridge.
type Metrics struct {
	RxCount     prometheus.Counter
	RxValid     prometheus.Counter
	RxCRCErrors prometheus.Counter
	RxFrameSize prometheus.Histogram
	TxCount     prometheus.Counter
	TxFrameSize prometheus.Histogram
}

// NewMetrics registers bridge metrics on reg. A nil reg uses the
// default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	sizeBuckets := prometheus.LinearBuckets(4, 8, 8)
	return &Metrics{
		RxCount: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "crsf", Subsystem: "rx", Name: "count",
			Help: "Received frame count.",
		}),
		RxValid: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "crsf", Subsystem: "rx", Name: "valid",
			Help: "Received frames with valid checksum.",
		}),
		RxCRCErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "crsf", Subsystem: "rx", Name: "crc_errors",
			Help: "Received frames with checksum mismatch.",
		}),
		RxFrameSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crsf", Subsystem: "rx", Name: "frame_size_bytes",
			Help: "Received frame size.", Buckets: sizeBuckets,
		}),
		TxCount: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "crsf", Subsystem: "tx", Name: "count",
			Help: "Frames written to the port.",
		}),
		TxFrameSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crsf", Subsystem: "tx", Name: "frame_size_bytes",
			Help: "Written frame size.", Buckets: sizeBuckets,
		}),
	}
}
