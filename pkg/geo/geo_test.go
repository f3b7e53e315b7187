package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func headingDeg(q0, q1, q2, q3 float64) float64 {
	return math.Round(QuatHeading(q0, q1, q2, q3) * 180 / math.Pi)
}

func TestQuatHeadingCardinals(t *testing.T) {
	require.Equal(t, 0.0, headingDeg(0, 0, 0, 1))
	require.Equal(t, -90.0, headingDeg(0, -0.70710678, 0, 0.70710678))
	require.Equal(t, 180.0, headingDeg(0, -1, 0, 0))
	require.Equal(t, 90.0, headingDeg(0, -0.70710678, 0, -0.70710678))
}

func TestGPSFromCoord(t *testing.T) {
	baseLon, baseLat := 10.0, 50.0
	lon, lat, alt := GPSFromCoord([3]float64{100, 100, 100}, baseLon, baseLat)

	require.Equal(t, 100.0, alt)
	require.Greater(t, lat, baseLat) // north of base
	require.Greater(t, lon, baseLon) // east of base

	// 100m is roughly 0.0009 degrees.
	require.InDelta(t, baseLat, lat, 0.01)
	require.InDelta(t, baseLon, lon, 0.01)
}

func TestCoordFromGPSInverse(t *testing.T) {
	baseLon, baseLat := 10.0, 50.0
	coord := [3]float64{120, 35, -80}
	lon, lat, alt := GPSFromCoord(coord, baseLon, baseLat)
	back := CoordFromGPS(lon, lat, alt, baseLon, baseLat)
	require.InDelta(t, coord[0], back[0], 0.01)
	require.InDelta(t, coord[1], back[1], 1e-9)
	require.InDelta(t, coord[2], back[2], 0.01)
}

func TestQuatEulersIdentity(t *testing.T) {
	pitch, roll, yaw := QuatEulers(0, 0, 0, 1)
	require.InDelta(t, 0, pitch, 1e-12)
	require.InDelta(t, 0, roll, 1e-12)
	require.InDelta(t, 0, yaw, 1e-12)
}
