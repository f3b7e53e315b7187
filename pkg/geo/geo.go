// Package geo converts between simulator coordinates and GPS positions,
// and derives heading/attitude angles from simulator quaternions.
//
// The simulator uses a flat, y-up coordinate frame; GPS conversion uses
// the small-area approximation of 1/111111 degrees per meter around a
// base position.
package geo

import "math"

const metersPerDegree = 111111.0

// GPSFromCoord maps a simulator coordinate (x east-ish, y up, z
// north-ish) to longitude, latitude and altitude around the base
// position.
func GPSFromCoord(coord [3]float64, baseLon, baseLat float64) (lon, lat, alt float64) {
	x := coord[0]
	y := coord[2]

	lat = baseLat + y/metersPerDegree
	lon = baseLon + x/(metersPerDegree*math.Cos(lat*math.Pi/180))
	alt = coord[1]
	return lon, lat, alt
}

// CoordFromGPS is the inverse of GPSFromCoord.
func CoordFromGPS(lon, lat, alt, baseLon, baseLat float64) [3]float64 {
	y := (lat - baseLat) * metersPerDegree
	x := (lon - baseLon) * metersPerDegree * math.Cos(lat*math.Pi/180)
	return [3]float64{x, alt, y}
}

// QuatHeading derives the heading angle in radians from a simulator
// attitude quaternion.
func QuatHeading(q0, q1, q2, q3 float64) float64 {
	y := 2 * (q2*q0 + q3*q1)
	x := q3*q3 + q2*q2 - q0*q0 - q1*q1
	return math.Atan2(y, x)
}

// QuatEulers derives pitch, roll and yaw in radians from a simulator
// attitude quaternion, converting from the simulator's y-up frame to a
// z-up body frame.
func QuatEulers(qx, qy, qz, qw float64) (pitch, roll, yaw float64) {
	qy, qz, qw = qz, qy, -qw

	m00 := 1 - 2*qy*qy - 2*qz*qz
	m10 := 2 * (qx*qy + qw*qz)
	m20 := 2 * (qx*qz - qw*qy)
	m21 := 2 * (qy*qz + qw*qx)
	m22 := 1 - 2*qx*qx - 2*qy*qy

	pitch = math.Atan2(m21, m22)
	roll = 0.5*math.Pi - math.Acos(-m20)
	yaw = -math.Atan2(m10, m00)
	return pitch, roll, yaw
}
