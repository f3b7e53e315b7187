package crsf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		packet Packet
	}{
		{"gps", GPS{
			Latitude:    512345678,
			Longitude:   -41234567,
			GroundSpeed: 360,
			Heading:     27015,
			Altitude:    1042,
			Satellites:  12,
		}},
		{"vario", Vario{VerticalSpeed: -153}},
		{"battery", BatterySensor{
			Voltage:   168,
			Current:   253,
			Capacity:  1500,
			Remaining: 74,
		}},
		{"baro alt", BaroAlt{Altitude: 10420, VerticalSpeed: 3}},
		{"airspeed", Airspeed{Speed: 812}},
		{"rpm", Rpm{SourceID: 0, Values: []uint32{12000, 11874, 0xFFFFFF}}},
		{"rpm empty", Rpm{SourceID: 2}},
		{"attitude", Attitude{Pitch: -3141, Roll: 3141, Yaw: 15707}},
		{"flight mode", FlightMode{Mode: "ACRO"}},
		{"rc channels", RcChannels{Channels: [NumChannels]uint16{
			992, 992, 172, 992, 1811, 172, 992, 992,
			992, 992, 992, 992, 0, 2047, 992, 992,
		}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			frame, err := Encode(AddrFlightController, tc.packet)
			require.NoError(t, err)
			require.Equal(t, AddrFlightController, frame[0])
			require.Equal(t, len(frame)-2, int(frame[1]))
			require.LessOrEqual(t, len(frame), MaxFrameSize)

			decoded, err := DecodeChecked(frame)
			require.NoError(t, err)
			require.Equal(t, tc.packet, decoded)
		})
	}
}

func TestEncodeFailures(t *testing.T) {
	testCases := []struct {
		name   string
		packet Packet
		err    error
	}{
		{"unknown", Unknown{Code: 0x7F}, ErrNotEncodable},
		{"capacity overflow", BatterySensor{Capacity: 0x1000000}, ErrValueRange},
		{"rpm overflow", Rpm{Values: []uint32{0x1000000}}, ErrValueRange},
		{"channel overflow", RcChannels{Channels: [NumChannels]uint16{2048}}, ErrChannelRange},
		{"oversize flight mode", FlightMode{Mode: string(make([]byte, maxPayload))}, ErrFrameTooLarge},
		{"oversize rpm", Rpm{Values: make([]uint32, 21)}, ErrFrameTooLarge},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(AddrFlightController, tc.packet)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestRcChannelsFrameShape(t *testing.T) {
	frame, err := Encode(AddrFlightController, RcChannels{})
	require.NoError(t, err)
	require.Len(t, frame, 26) // addr + len + type + 22 + crc
	require.Equal(t, byte(TypeRcChannelsPacked), frame[2])
}

func TestDecodeShapeErrors(t *testing.T) {
	testCases := []struct {
		name  string
		frame []byte
		err   error
	}{
		{"too short", []byte{0xC8, 0x02, 0x0B}, ErrFrameTooShort},
		{"length mismatch", []byte{0xC8, 0x07, 0x1E, 0, 0, 0, 0, 0, 0, 0}, ErrBadLength},
		{"short payload", []byte{0xC8, 0x04, 0x1E, 0, 0, 0}, ErrFrameTooShort},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.frame)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestDecodeUnknownType(t *testing.T) {
	// Structurally valid frame of a type with no layout here must pass
	// through, not fail.
	payload := []byte{0x0B, 0xAA, 0xBB}
	frame, err := WrapFrame(AddrFlightController, payload)
	require.NoError(t, err)
	pkt, err := DecodeChecked(frame)
	require.NoError(t, err)
	require.Equal(t, Unknown{Code: 0x0B}, pkt)
	require.Equal(t, TypeHeartbeat, pkt.Type())
}

func TestDecodeCheckedCRCMismatch(t *testing.T) {
	frame, err := Encode(AddrFlightController, Vario{VerticalSpeed: 10})
	require.NoError(t, err)
	frame[len(frame)-1] ^= 0xFF
	_, err = DecodeChecked(frame)
	require.ErrorIs(t, err, ErrCRCMismatch)

	// Decode itself does not verify the CRC.
	_, err = Decode(frame)
	require.NoError(t, err)
}

func TestWrapFrame(t *testing.T) {
	payload, err := AppendPayload(nil, Attitude{Pitch: 1, Roll: 2, Yaw: 3})
	require.NoError(t, err)
	frame, err := WrapFrame(AddrFlightController, payload)
	require.NoError(t, err)

	direct, err := Encode(AddrFlightController, Attitude{Pitch: 1, Roll: 2, Yaw: 3})
	require.NoError(t, err)
	require.Equal(t, direct, frame)

	_, err = WrapFrame(AddrFlightController, make([]byte, MaxFrameSize))
	require.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestFlightModeDecodeTerminator(t *testing.T) {
	// NUL terminator is stripped; a missing terminator is tolerated.
	pkt, err := DecodePayload([]byte{byte(TypeFlightMode), 'W', 'A', 'I', 'T', 0x00})
	require.NoError(t, err)
	require.Equal(t, FlightMode{Mode: "WAIT"}, pkt)

	pkt, err = DecodePayload([]byte{byte(TypeFlightMode), 'O', 'K'})
	require.NoError(t, err)
	require.Equal(t, FlightMode{Mode: "OK"}, pkt)
}

func TestRpmDecodeIgnoresTrailing(t *testing.T) {
	pkt, err := DecodePayload([]byte{byte(TypeRpm), 1, 0x00, 0x2E, 0xE0, 0xAB})
	require.NoError(t, err)
	require.Equal(t, Rpm{SourceID: 1, Values: []uint32{12000}}, pkt)
}

func TestPackBaroAltitude(t *testing.T) {
	testCases := []struct {
		name   string
		meters float64
		want   uint16
	}{
		{"ground", 0, 10000},
		{"ten meters", 10.0, 10100},
		{"clamp negative", -2000, 0},
		{"high altitude", 3000, 0x8000 | 3000},
		{"clamp high", 40000, 0x8000 | 0x7FFF},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, PackBaroAltitude(tc.meters))
		})
	}
}
