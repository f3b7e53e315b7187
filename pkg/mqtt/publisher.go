package mqtt

import (
	"encoding/json"
	"strings"

	"github.com/golang/glog"

	"github.com/simlink/simlink.go/pkg/crsf"
	"github.com/simlink/simlink.go/pkg/telemetry"
)

// TelemetryTopicPrefix is prepended to the lower-cased packet type name
// to form the publish topic, e.g. telemetry/gps.
const TelemetryTopicPrefix = "telemetry/"

// Publisher re-publishes decoded telemetry packets as JSON so tools
// outside the link (dashboards, the CLI watch command) can observe
// them without speaking the binary protocol.
type Publisher struct {
	Queue *Queue
}

// NewPublisher creates a Publisher on top of a connected Queue.
func NewPublisher(q *Queue) *Publisher {
	return &Publisher{Queue: q}
}

// Publish encodes pkt as JSON and publishes it. Packets with no known
// layout are skipped.
func (p *Publisher) Publish(pkt crsf.Packet) {
	if _, ok := pkt.(crsf.Unknown); ok {
		return
	}
	data, err := json.Marshal(pkt)
	if err != nil {
		glog.Warningf("marshal %s: %v", pkt.Type(), err)
		return
	}
	p.Queue.Pub(TelemetryTopicPrefix+strings.ToLower(pkt.Type().String()), data)
}

// PublishRecord parses a simulator record and publishes every
// telemetry packet derivable from it. Parse failures are logged and
// dropped.
func (p *Publisher) PublishRecord(data []byte) {
	rec, err := telemetry.Parse(data, nil)
	if err != nil {
		glog.V(2).Infof("parse for publish: %v", err)
		return
	}
	for _, pkt := range telemetry.GenerateCRSF(rec) {
		p.Publish(pkt)
	}
}
