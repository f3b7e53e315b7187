// Package nmea formats the NMEA 0183 sentences served to gpsd clients.
package nmea

import (
	"fmt"
	"time"
)

const (
	timeFormat = "150405.000"
	dateFormat = "020106"
)

// Checksum computes the XOR checksum of a sentence body (the characters
// between '$' and '*').
func Checksum(body string) byte {
	var sum byte
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}
	return sum
}

// Sentence wraps a body into a framed sentence with checksum and CRLF.
func Sentence(body string) string {
	return fmt.Sprintf("$%s*%02X\r\n", body, Checksum(body))
}

// formatCoord renders a coordinate as (d)ddmm.mmmm with its hemisphere
// letter.
func formatCoord(val float64, isLat bool) (string, byte) {
	abs := val
	if abs < 0 {
		abs = -abs
	}
	deg := int(abs)
	min := (abs - float64(deg)) * 60

	var str string
	if isLat {
		str = fmt.Sprintf("%02d%07.4f", deg, min)
	} else {
		str = fmt.Sprintf("%03d%07.4f", deg, min)
	}

	var dir byte
	switch {
	case isLat && val >= 0:
		dir = 'N'
	case isLat:
		dir = 'S'
	case val >= 0:
		dir = 'E'
	default:
		dir = 'W'
	}
	return str, dir
}

// GGA builds a GPGGA fix sentence.
func GGA(t time.Time, lat, lon, alt float64, sats int) string {
	latStr, latDir := formatCoord(lat, true)
	lonStr, lonDir := formatCoord(lon, false)
	body := fmt.Sprintf("GPGGA,%s,%s,%c,%s,%c,1,%02d,0.9,%.1f,M,46.9,M,,",
		t.Format(timeFormat), latStr, latDir, lonStr, lonDir, sats, alt)
	return Sentence(body)
}

// GGANoFix builds a GPGGA sentence reporting no fix.
func GGANoFix(t time.Time) string {
	body := fmt.Sprintf("GPGGA,%s,,,,,0,00,99.99,,,,,,", t.Format(timeFormat))
	return Sentence(body)
}

// RMC builds a GPRMC sentence with speed in knots and course in degrees.
func RMC(t time.Time, lat, lon, speedKnots, course float64) string {
	latStr, latDir := formatCoord(lat, true)
	lonStr, lonDir := formatCoord(lon, false)
	body := fmt.Sprintf("GPRMC,%s,A,%s,%c,%s,%c,%.1f,%.1f,%s,,,A",
		t.Format(timeFormat), latStr, latDir, lonStr, lonDir,
		speedKnots, course, t.Format(dateFormat))
	return Sentence(body)
}

// RMCNoFix builds a GPRMC sentence reporting no fix.
func RMCNoFix(t time.Time) string {
	body := fmt.Sprintf("GPRMC,%s,V,,,,,,,%s,,", t.Format(timeFormat), t.Format(dateFormat))
	return Sentence(body)
}
