package crsf

import (
	"bytes"
	"encoding/binary"
	"errors"
)

var (
	// ErrFrameTooShort indicates a frame below the 4-byte minimum or a
	// payload below the minimum size for its declared type.
	ErrFrameTooShort = errors.New("crsf: frame too short")
	// ErrBadLength indicates a length byte inconsistent with the frame size.
	ErrBadLength = errors.New("crsf: length byte mismatch")
	// ErrFrameTooLarge indicates an encoded frame would exceed MaxFrameSize.
	ErrFrameTooLarge = errors.New("crsf: frame exceeds maximum size")
	// ErrValueRange indicates a field value that does not fit its wire
	// representation, such as a 24-bit field source above 0xFFFFFF.
	ErrValueRange = errors.New("crsf: field value out of range")
	// ErrNotEncodable indicates an attempt to encode an Unknown packet.
	ErrNotEncodable = errors.New("crsf: packet type not encodable")
	// ErrCRCMismatch indicates a frame whose CRC byte does not match.
	ErrCRCMismatch = errors.New("crsf: crc mismatch")
)

// maxPayload is the largest type-specific payload: MaxFrameSize minus
// address, length, type and CRC bytes.
const maxPayload = MaxFrameSize - 4

// AppendPayload appends the type byte and type-specific payload of p to
// dst. This is the datagram form of a packet: the UDP side of the bridge
// exchanges exactly these bytes, without address/length/CRC.
func AppendPayload(dst []byte, p Packet) ([]byte, error) {
	switch pkt := p.(type) {
	case GPS:
		dst = append(dst, byte(TypeGPS))
		dst = binary.BigEndian.AppendUint32(dst, uint32(pkt.Latitude))
		dst = binary.BigEndian.AppendUint32(dst, uint32(pkt.Longitude))
		dst = binary.BigEndian.AppendUint16(dst, pkt.GroundSpeed)
		dst = binary.BigEndian.AppendUint16(dst, pkt.Heading)
		dst = binary.BigEndian.AppendUint16(dst, pkt.Altitude)
		dst = append(dst, pkt.Satellites)
	case Vario:
		dst = append(dst, byte(TypeVario))
		dst = binary.BigEndian.AppendUint16(dst, uint16(pkt.VerticalSpeed))
	case BatterySensor:
		if pkt.Capacity > 0xFFFFFF {
			return nil, ErrValueRange
		}
		dst = append(dst, byte(TypeBatterySensor))
		dst = binary.BigEndian.AppendUint16(dst, pkt.Voltage)
		dst = binary.BigEndian.AppendUint16(dst, pkt.Current)
		dst = appendUint24(dst, pkt.Capacity)
		dst = append(dst, pkt.Remaining)
	case BaroAlt:
		dst = append(dst, byte(TypeBaroAlt))
		dst = binary.BigEndian.AppendUint16(dst, pkt.Altitude)
		dst = append(dst, pkt.VerticalSpeed)
	case Airspeed:
		dst = append(dst, byte(TypeAirspeed))
		dst = binary.BigEndian.AppendUint16(dst, pkt.Speed)
	case Rpm:
		for _, v := range pkt.Values {
			if v > 0xFFFFFF {
				return nil, ErrValueRange
			}
		}
		dst = append(dst, byte(TypeRpm), pkt.SourceID)
		for _, v := range pkt.Values {
			dst = appendUint24(dst, v)
		}
	case Attitude:
		dst = append(dst, byte(TypeAttitude))
		dst = binary.BigEndian.AppendUint16(dst, uint16(pkt.Pitch))
		dst = binary.BigEndian.AppendUint16(dst, uint16(pkt.Roll))
		dst = binary.BigEndian.AppendUint16(dst, uint16(pkt.Yaw))
	case FlightMode:
		dst = append(dst, byte(TypeFlightMode))
		dst = append(dst, pkt.Mode...)
		dst = append(dst, 0x00)
	case RcChannels:
		packed, err := PackChannels(pkt.Channels)
		if err != nil {
			return nil, err
		}
		dst = append(dst, byte(TypeRcChannelsPacked))
		dst = append(dst, packed[:]...)
	default:
		return nil, ErrNotEncodable
	}
	return dst, nil
}

// Encode serializes p into a complete frame addressed to addr, including
// the length byte and trailing CRC.
func Encode(addr byte, p Packet) ([]byte, error) {
	frame := make([]byte, 2, MaxFrameSize)
	frame[0] = addr
	frame, err := AppendPayload(frame, p)
	if err != nil {
		return nil, err
	}
	if len(frame)+1 > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	// Length counts type+payload plus the CRC byte about to be appended.
	frame[1] = byte(len(frame) - 2 + 1)
	frame = append(frame, CRC8(frame[2:]))
	return frame, nil
}

// WrapFrame wraps a bare type+payload datagram into a complete frame
// without interpreting it. Used when bridging UDP datagrams onto the
// serial link.
func WrapFrame(addr byte, payload []byte) ([]byte, error) {
	if len(payload)+3 > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	frame := make([]byte, 0, len(payload)+3)
	frame = append(frame, addr, byte(len(payload)+1))
	frame = append(frame, payload...)
	return append(frame, CRC8(payload)), nil
}

// DecodePayload decodes a bare type+payload datagram. Type codes without
// a field layout decode to Unknown rather than failing.
func DecodePayload(data []byte) (Packet, error) {
	if len(data) < 1 {
		return nil, ErrFrameTooShort
	}
	typ, payload := PacketType(data[0]), data[1:]
	switch typ {
	case TypeGPS:
		if len(payload) < 15 {
			return nil, ErrFrameTooShort
		}
		return GPS{
			Latitude:    int32(binary.BigEndian.Uint32(payload[0:4])),
			Longitude:   int32(binary.BigEndian.Uint32(payload[4:8])),
			GroundSpeed: binary.BigEndian.Uint16(payload[8:10]),
			Heading:     binary.BigEndian.Uint16(payload[10:12]),
			Altitude:    binary.BigEndian.Uint16(payload[12:14]),
			Satellites:  payload[14],
		}, nil
	case TypeVario:
		if len(payload) < 2 {
			return nil, ErrFrameTooShort
		}
		return Vario{VerticalSpeed: int16(binary.BigEndian.Uint16(payload[0:2]))}, nil
	case TypeBatterySensor:
		if len(payload) < 8 {
			return nil, ErrFrameTooShort
		}
		return BatterySensor{
			Voltage:   binary.BigEndian.Uint16(payload[0:2]),
			Current:   binary.BigEndian.Uint16(payload[2:4]),
			Capacity:  uint24(payload[4:7]),
			Remaining: payload[7],
		}, nil
	case TypeBaroAlt:
		if len(payload) < 3 {
			return nil, ErrFrameTooShort
		}
		return BaroAlt{
			Altitude:      binary.BigEndian.Uint16(payload[0:2]),
			VerticalSpeed: payload[2],
		}, nil
	case TypeAirspeed:
		if len(payload) < 2 {
			return nil, ErrFrameTooShort
		}
		return Airspeed{Speed: binary.BigEndian.Uint16(payload[0:2])}, nil
	case TypeRpm:
		if len(payload) < 1 {
			return nil, ErrFrameTooShort
		}
		// Trailing bytes that do not form a whole 24-bit value are ignored.
		count := (len(payload) - 1) / 3
		pkt := Rpm{SourceID: payload[0]}
		if count > 0 {
			pkt.Values = make([]uint32, count)
			for i := 0; i < count; i++ {
				pkt.Values[i] = uint24(payload[1+i*3:])
			}
		}
		return pkt, nil
	case TypeAttitude:
		if len(payload) < 6 {
			return nil, ErrFrameTooShort
		}
		return Attitude{
			Pitch: int16(binary.BigEndian.Uint16(payload[0:2])),
			Roll:  int16(binary.BigEndian.Uint16(payload[2:4])),
			Yaw:   int16(binary.BigEndian.Uint16(payload[4:6])),
		}, nil
	case TypeFlightMode:
		mode := payload
		if i := bytes.IndexByte(payload, 0x00); i >= 0 {
			mode = payload[:i]
		}
		return FlightMode{Mode: string(mode)}, nil
	case TypeRcChannelsPacked:
		channels, err := UnpackChannels(payload)
		if err != nil {
			return nil, ErrFrameTooShort
		}
		return RcChannels{Channels: channels}, nil
	}
	return Unknown{Code: byte(typ)}, nil
}

// Decode decodes a complete frame. It checks the generic frame shape
// (length byte consistency, 4-byte minimum) but not the CRC; use
// DecodeChecked for untrusted input.
func Decode(frame []byte) (Packet, error) {
	if len(frame) < 4 {
		return nil, ErrFrameTooShort
	}
	if int(frame[1]) != len(frame)-2 {
		return nil, ErrBadLength
	}
	return DecodePayload(frame[2 : len(frame)-1])
}

// DecodeChecked verifies the frame CRC and then decodes it.
func DecodeChecked(frame []byte) (Packet, error) {
	if len(frame) < 4 {
		return nil, ErrFrameTooShort
	}
	if CRC8(frame[2:len(frame)-1]) != frame[len(frame)-1] {
		return nil, ErrCRCMismatch
	}
	return Decode(frame)
}

func appendUint24(dst []byte, v uint32) []byte {
	return append(dst, byte(v>>16), byte(v>>8), byte(v))
}

func uint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}
