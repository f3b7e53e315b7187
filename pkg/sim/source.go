package sim

import (
	"context"
	"encoding/json"
	"math"
	"net"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/simlink/simlink.go/pkg/telemetry"
)

const (
	fullVoltage  = 16.8 // 4S full charge
	emptyVoltage = 13.2
	drainPerSec  = 0.02

	cruiseAltitude = 20.0
	hoverRPM       = 12000
)

// Source emits one telemetry record per tick describing a circular
// flight path.
type Source struct {
	Rate   int
	Radius float64
	Speed  float64

	conn *net.UDPConn
}

// NewSource opens the destination socket.
func (c *Config) NewSource() (*Source, error) {
	addr, err := net.ResolveUDPAddr("udp", c.DestAddr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, err
	}
	return &Source{
		Rate:   c.Rate,
		Radius: c.Radius,
		Speed:  c.Speed,
		conn:   conn,
	}, nil
}

// WriteDescriptor writes the telemetry configuration matching this
// source, for pointing the real simulator at the same consumer.
func (c *Config) WriteDescriptor(path string) error {
	desc := telemetry.Descriptor{
		EndPoint:     c.DestAddr,
		StreamFormat: telemetry.DefaultStreamFormat,
	}
	data, err := json.MarshalIndent(&desc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Name implements framework.Named.
func (s *Source) Name() string {
	return "source"
}

// Run implements framework.Runnable.
func (s *Source) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.Rate))
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			rec := s.At(now.Sub(start).Seconds())
			data, err := telemetry.Append(nil, rec, nil)
			if err != nil {
				return err
			}
			if _, err := s.conn.Write(data); err != nil {
				glog.Warningf("send record: %v", err)
			}
		}
	}
}

// At computes the record t seconds into the flight.
func (s *Source) At(t float64) *telemetry.Packet {
	omega := s.Speed / s.Radius
	angle := omega * t

	ts := float32(t)
	pos := [3]float32{
		float32(s.Radius * math.Cos(angle)),
		float32(cruiseAltitude + 2*math.Sin(t/3)),
		float32(s.Radius * math.Sin(angle)),
	}
	vel := [3]float32{
		float32(-s.Speed * math.Sin(angle)),
		float32(2.0 / 3.0 * math.Cos(t/3)),
		float32(s.Speed * math.Cos(angle)),
	}

	// Yaw follows the flight direction, rotation about the up axis.
	yaw := angle + math.Pi/2
	att := [4]float32{0, float32(math.Sin(yaw / 2)), 0, float32(math.Cos(yaw / 2))}
	gyro := [3]float32{0, float32(omega), 0}
	input := [4]float32{0.5, 0, 0, 0}

	voltage := fullVoltage - drainPerSec*t
	if voltage < emptyVoltage {
		voltage = emptyVoltage
	}
	remaining := (voltage - emptyVoltage) / (fullVoltage - emptyVoltage)
	batt := [2]float32{float32(remaining), float32(voltage)}

	rpm := float32(hoverRPM + 500*math.Sin(t))
	return &telemetry.Packet{
		Timestamp: &ts,
		Position:  &pos,
		Attitude:  &att,
		Velocity:  &vel,
		Gyro:      &gyro,
		Input:     &input,
		Battery:   &batt,
		MotorRPM:  []float32{rpm, rpm, rpm, rpm},
	}
}

// Close releases the socket.
func (s *Source) Close() error {
	return s.conn.Close()
}
