package crsf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func attitudeFrame(t *testing.T) []byte {
	t.Helper()
	frame, err := Encode(AddrFlightController, Attitude{Pitch: 100, Roll: -100, Yaw: 0})
	require.NoError(t, err)
	return frame
}

func TestFramerSingleFrame(t *testing.T) {
	f := NewFramer(AddrFlightController)
	frame := attitudeFrame(t)
	payloads, crcErrs := f.Feed(frame)
	require.Zero(t, crcErrs)
	require.Len(t, payloads, 1)
	require.Equal(t, frame[2:len(frame)-1], payloads[0])
	require.Zero(t, f.Pending())
}

func TestFramerSplitReadsWithGarbage(t *testing.T) {
	f := NewFramer(AddrFlightController)
	frame := attitudeFrame(t)
	stream := append([]byte{0x13, 0x37}, frame...)

	// Arbitrary read boundaries: 1 byte, 3 bytes, the rest.
	payloads, crcErrs := f.Feed(stream[:1])
	require.Zero(t, crcErrs)
	require.Empty(t, payloads)

	payloads, crcErrs = f.Feed(stream[1:4])
	require.Zero(t, crcErrs)
	require.Empty(t, payloads)

	payloads, crcErrs = f.Feed(stream[4:])
	require.Zero(t, crcErrs)
	require.Len(t, payloads, 1)

	pkt, err := DecodePayload(payloads[0])
	require.NoError(t, err)
	require.Equal(t, Attitude{Pitch: 100, Roll: -100, Yaw: 0}, pkt)
}

func TestFramerByteAtATime(t *testing.T) {
	f := NewFramer(AddrFlightController)
	frame := attitudeFrame(t)
	var got [][]byte
	for _, b := range frame {
		payloads, crcErrs := f.Feed([]byte{b})
		require.Zero(t, crcErrs)
		got = append(got, payloads...)
	}
	require.Len(t, got, 1)
}

func TestFramerMultipleFramesOneChunk(t *testing.T) {
	f := NewFramer(AddrFlightController)
	frame1 := attitudeFrame(t)
	frame2, err := Encode(AddrFlightController, Vario{VerticalSpeed: 42})
	require.NoError(t, err)

	chunk := append(append([]byte{}, frame1...), frame2...)
	payloads, crcErrs := f.Feed(chunk)
	require.Zero(t, crcErrs)
	require.Len(t, payloads, 2)
	require.Equal(t, byte(TypeAttitude), payloads[0][0])
	require.Equal(t, byte(TypeVario), payloads[1][0])
}

func TestFramerOversizeLengthRecovery(t *testing.T) {
	f := NewFramer(AddrFlightController)
	frame := attitudeFrame(t)

	// Sync byte followed by a length declaring a frame above the 64-byte
	// ceiling, then a valid frame in the same buffer. Only the bogus sync
	// byte is dropped; the valid frame must still come out.
	chunk := append([]byte{AddrFlightController, 0xFF}, frame...)
	payloads, crcErrs := f.Feed(chunk)
	require.Zero(t, crcErrs)
	require.Len(t, payloads, 1)
	require.Equal(t, frame[2:len(frame)-1], payloads[0])
}

func TestFramerCRCMismatchDrained(t *testing.T) {
	f := NewFramer(AddrFlightController)
	frame := attitudeFrame(t)
	corrupted := append([]byte(nil), frame...)
	corrupted[len(corrupted)-1] ^= 0x5A

	payloads, crcErrs := f.Feed(corrupted)
	require.Empty(t, payloads)
	require.Equal(t, 1, crcErrs)
	require.Zero(t, f.Pending())

	// The corrupted frame must not be counted again by the next feed.
	payloads, crcErrs = f.Feed(frame)
	require.Zero(t, crcErrs)
	require.Len(t, payloads, 1)
}

func TestFramerNoSyncClearsBuffer(t *testing.T) {
	f := NewFramer(AddrFlightController)
	payloads, crcErrs := f.Feed([]byte{0x01, 0x02, 0x03, 0x04})
	require.Empty(t, payloads)
	require.Zero(t, crcErrs)
	require.Zero(t, f.Pending())
}

func TestFramerPartialFrameWaits(t *testing.T) {
	f := NewFramer(AddrFlightController)
	frame := attitudeFrame(t)
	payloads, _ := f.Feed(frame[:len(frame)-1])
	require.Empty(t, payloads)
	require.Equal(t, len(frame)-1, f.Pending())

	payloads, _ = f.Feed(frame[len(frame)-1:])
	require.Len(t, payloads, 1)
}
