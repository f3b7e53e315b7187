package gpsd

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simlink/simlink.go/pkg/telemetry"
)

func TestWatchRequested(t *testing.T) {
	for _, c := range []struct {
		cmd   string
		valid bool
	}{
		{`?WATCH={"enable":true,"nmea":true,"raw":true};`, true},
		{`?WATCH={"enable":true,"nmea":true};`, false},
		{`?WATCH={"enable":false,"nmea":true,"raw":true};`, false},
		{`?WATCH={"enable":true,"json":true};`, false},
		{`?WATCH={broken};`, false},
		{`?POLL;`, false},
		{`?WATCH={"enable":true,"nmea":true,"raw":true}`, false},
	} {
		require.Equal(t, c.valid, watchRequested(c.cmd), "command %q", c.cmd)
	}
}

func fullRecord() *telemetry.Packet {
	pos := [3]float32{100, 50, 200}
	att := [4]float32{0, 0, 0, 1}
	vel := [3]float32{3, 0, 4}
	return &telemetry.Packet{Position: &pos, Attitude: &att, Velocity: &vel}
}

func TestSentencesWithFix(t *testing.T) {
	s := &Server{Fresh: Freshness}
	s.rec, s.received = fullRecord(), time.Now()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	out := s.sentences(now)
	require.Len(t, out, 2)
	require.True(t, strings.HasPrefix(out[0], "$GPGGA,120000.000,"), out[0])
	require.True(t, strings.HasPrefix(out[1], "$GPRMC,120000.000,A,"), out[1])
	// Altitude comes straight from the vertical coordinate.
	require.Contains(t, out[0], ",50.0,M,")
	// 3 m/s east and 4 m/s north is 5 m/s over ground.
	require.Contains(t, out[1], ",9.7,")
}

func TestSentencesNoTelemetry(t *testing.T) {
	s := &Server{Fresh: Freshness}
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	out := s.sentences(now)
	require.Len(t, out, 2)
	require.True(t, strings.HasPrefix(out[0], "$GPGGA,120000.000,,,,,0,00,99.99,"), out[0])
	require.True(t, strings.HasPrefix(out[1], "$GPRMC,120000.000,V,"), out[1])
}

func TestSentencesStaleTelemetry(t *testing.T) {
	s := &Server{Fresh: Freshness}
	s.rec, s.received = fullRecord(), time.Now().Add(-time.Minute)

	out := s.sentences(time.Now().UTC())
	require.True(t, strings.HasPrefix(out[1], "$GPRMC,"))
	require.Contains(t, out[1], ",V,")
}

func TestSentencesIncompleteRecord(t *testing.T) {
	s := &Server{Fresh: Freshness}
	pos := [3]float32{1, 2, 3}
	s.rec, s.received = &telemetry.Packet{Position: &pos}, time.Now()

	out := s.sentences(time.Now().UTC())
	require.Contains(t, out[1], ",V,")
}
