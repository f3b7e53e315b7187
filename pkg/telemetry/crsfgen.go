package telemetry

import (
	"math"

	"github.com/simlink/simlink.go/pkg/crsf"
	"github.com/simlink/simlink.go/pkg/geo"
)

// GenerateCRSF converts one simulator record into the CRSF telemetry
// packets it can populate. Records missing the needed fields simply
// yield fewer packets.
func GenerateCRSF(rec *Packet) []crsf.Packet {
	var packets []crsf.Packet

	if rec.Position != nil && rec.Attitude != nil && rec.Velocity != nil {
		pos, att, vel := rec.Position, rec.Attitude, rec.Velocity
		lon, lat, alt := geo.GPSFromCoord(
			[3]float64{float64(pos[0]), float64(pos[1]), float64(pos[2])}, 0, 0)
		hdg := geo.QuatHeading(float64(att[0]), float64(att[1]), float64(att[2]), float64(att[3]))
		hdgDeg := hdg * 180 / math.Pi
		if hdgDeg < 0 {
			hdgDeg += 360
		}
		vel2D := math.Sqrt(float64(vel[0]*vel[0] + vel[2]*vel[2]))

		packets = append(packets, crsf.GPS{
			Latitude:    int32(lat * 1e7),
			Longitude:   int32(lon * 1e7),
			GroundSpeed: uint16(vel2D * 3.6 * 10),
			Heading:     uint16(hdgDeg * 100),
			Altitude:    uint16(alt + 1000),
			Satellites:  1,
		})
	}

	if rec.Battery != nil {
		packets = append(packets, crsf.BatterySensor{
			Voltage:   uint16(rec.Battery[1] * 10),
			Remaining: uint8(rec.Battery[0] * 100),
		})
	}

	if rec.Velocity != nil {
		packets = append(packets, crsf.Vario{
			VerticalSpeed: int16(rec.Velocity[1] * 100),
		})
	}

	if rec.Attitude != nil {
		att := rec.Attitude
		pitch, roll, yaw := geo.QuatEulers(
			float64(att[0]), float64(att[1]), float64(att[2]), float64(att[3]))
		packets = append(packets, crsf.Attitude{
			Pitch: int16(pitch * 10000),
			Roll:  int16(roll * 10000),
			Yaw:   int16(yaw * 10000),
		})
	}

	if rec.Position != nil {
		pos := rec.Position
		_, _, alt := geo.GPSFromCoord(
			[3]float64{float64(pos[0]), float64(pos[1]), float64(pos[2])}, 0, 0)
		packets = append(packets, crsf.BaroAlt{
			Altitude: crsf.PackBaroAltitude(alt),
		})
	}

	if rec.Velocity != nil {
		vel := rec.Velocity
		vel3D := math.Sqrt(float64(vel[0]*vel[0] + vel[1]*vel[1] + vel[2]*vel[2]))
		packets = append(packets, crsf.Airspeed{
			Speed: uint16(vel3D * 3.6 * 10),
		})
	}

	if rec.MotorRPM != nil {
		rpm := crsf.Rpm{SourceID: 0, Values: make([]uint32, len(rec.MotorRPM))}
		for i, v := range rec.MotorRPM {
			rpm.Values[i] = uint32(v) & 0xFFFFFF
		}
		packets = append(packets, rpm)
	}

	return packets
}
