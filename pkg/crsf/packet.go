package crsf

import "fmt"

// PacketType is the 1-byte frame type code.
type PacketType byte

// Known packet type codes.
const (
	TypeGPS              PacketType = 0x02
	TypeVario            PacketType = 0x07
	TypeBatterySensor    PacketType = 0x08
	TypeBaroAlt          PacketType = 0x09
	TypeAirspeed         PacketType = 0x0A
	TypeHeartbeat        PacketType = 0x0B
	TypeRpm              PacketType = 0x0C
	TypeTemp             PacketType = 0x0D
	TypeVoltages         PacketType = 0x0E
	TypeVideoTransmitter PacketType = 0x0F
	TypeLinkStatistics   PacketType = 0x14
	TypeRcChannelsPacked PacketType = 0x16
	TypeLinkStatisticsRx PacketType = 0x1C
	TypeLinkStatisticsTx PacketType = 0x1D
	TypeAttitude         PacketType = 0x1E
	TypeFlightMode       PacketType = 0x21
	TypeDeviceInfo       PacketType = 0x29
	TypeConfigRead       PacketType = 0x2C
	TypeConfigWrite      PacketType = 0x2D
	TypeRadioID          PacketType = 0x3A
)

var packetTypeNames = map[PacketType]string{
	TypeGPS:              "GPS",
	TypeVario:            "Vario",
	TypeBatterySensor:    "BatterySensor",
	TypeBaroAlt:          "BaroAlt",
	TypeAirspeed:         "Airspeed",
	TypeHeartbeat:        "Heartbeat",
	TypeRpm:              "Rpm",
	TypeTemp:             "Temp",
	TypeVoltages:         "Voltages",
	TypeVideoTransmitter: "VideoTransmitter",
	TypeLinkStatistics:   "LinkStatistics",
	TypeRcChannelsPacked: "RcChannelsPacked",
	TypeLinkStatisticsRx: "LinkStatisticsRx",
	TypeLinkStatisticsTx: "LinkStatisticsTx",
	TypeAttitude:         "Attitude",
	TypeFlightMode:       "FlightMode",
	TypeDeviceInfo:       "DeviceInfo",
	TypeConfigRead:       "ConfigRead",
	TypeConfigWrite:      "ConfigWrite",
	TypeRadioID:          "RadioId",
}

func (t PacketType) String() string {
	if name, ok := packetTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("PacketType(0x%02x)", byte(t))
}

// Packet is one decoded frame payload. Exactly one concrete type exists
// per handled PacketType, plus Unknown for structurally valid frames
// whose type has no field layout here.
type Packet interface {
	Type() PacketType
}

// GPS is the position/speed telemetry packet.
type GPS struct {
	Latitude    int32  // degrees * 1e7
	Longitude   int32  // degrees * 1e7
	GroundSpeed uint16 // km/h * 10
	Heading     uint16 // degrees * 100
	Altitude    uint16 // meters + 1000
	Satellites  uint8
}

// Type implements Packet.
func (GPS) Type() PacketType { return TypeGPS }

// Vario carries vertical speed in cm/s.
type Vario struct {
	VerticalSpeed int16
}

// Type implements Packet.
func (Vario) Type() PacketType { return TypeVario }

// BatterySensor is the battery telemetry packet. Capacity is transmitted
// as a 24-bit unsigned value; encoding rejects sources above 0xFFFFFF.
type BatterySensor struct {
	Voltage   uint16 // volts * 10
	Current   uint16 // amps * 10
	Capacity  uint32 // mAh, 24-bit on the wire
	Remaining uint8  // percent
}

// Type implements Packet.
func (BatterySensor) Type() PacketType { return TypeBatterySensor }

// BaroAlt carries barometric altitude in the packed wire representation
// (decimeters + 10000, or meters with the high bit set above 0x7FFF; see
// PackBaroAltitude) and a packed vertical speed byte.
type BaroAlt struct {
	Altitude      uint16
	VerticalSpeed uint8
}

// Type implements Packet.
func (BaroAlt) Type() PacketType { return TypeBaroAlt }

// Airspeed carries speed in km/h * 10.
type Airspeed struct {
	Speed uint16
}

// Type implements Packet.
func (Airspeed) Type() PacketType { return TypeAirspeed }

// Rpm carries a list of rotation speeds keyed by a source id. Each value
// is a 24-bit unsigned integer on the wire; encoding rejects sources
// above 0xFFFFFF.
type Rpm struct {
	SourceID uint8
	Values   []uint32
}

// Type implements Packet.
func (Rpm) Type() PacketType { return TypeRpm }

// Attitude carries Euler angles in radians * 10000.
type Attitude struct {
	Pitch int16
	Roll  int16
	Yaw   int16
}

// Type implements Packet.
func (Attitude) Type() PacketType { return TypeAttitude }

// FlightMode carries an ASCII mode string, NUL-terminated on the wire.
type FlightMode struct {
	Mode string
}

// Type implements Packet.
func (FlightMode) Type() PacketType { return TypeFlightMode }

// RcChannels carries the 16 RC channel values of an RcChannelsPacked
// frame. Values above ChannelMax cannot be encoded.
type RcChannels struct {
	Channels [NumChannels]uint16
}

// Type implements Packet.
func (RcChannels) Type() PacketType { return TypeRcChannelsPacked }

// Unknown is the pass-through for structurally valid frames whose type
// code has no field layout in this package. It is not encodable.
type Unknown struct {
	Code byte
}

// Type implements Packet.
func (u Unknown) Type() PacketType { return PacketType(u.Code) }

// PackBaroAltitude converts altitude in meters to the packed BaroAlt wire
// value: decimeters offset by 10000, clamped at zero, and switching to a
// high-bit-tagged whole-meter representation above 0x7FFF.
func PackBaroAltitude(meters float64) uint16 {
	packed := int32(meters*10) + 10000
	if packed < 0 {
		return 0
	}
	if packed > 0x7FFF {
		m := int32(meters)
		if m > 0x7FFF {
			m = 0x7FFF
		}
		return uint16(0x8000 | m)
	}
	return uint16(packed)
}
