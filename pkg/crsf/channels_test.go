package crsf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	testCases := []struct {
		name     string
		channels [NumChannels]uint16
	}{
		{"all zero", [NumChannels]uint16{}},
		{"all max", [NumChannels]uint16{
			2047, 2047, 2047, 2047, 2047, 2047, 2047, 2047,
			2047, 2047, 2047, 2047, 2047, 2047, 2047, 2047,
		}},
		{"center sticks", [NumChannels]uint16{
			992, 992, 992, 992, 992, 992, 992, 992,
			992, 992, 992, 992, 992, 992, 992, 992,
		}},
		{"mixed", [NumChannels]uint16{
			0, 1, 2, 4, 8, 16, 32, 64,
			128, 256, 512, 1024, 2047, 1000, 3, 7,
		}},
		{"ramp", [NumChannels]uint16{
			100, 200, 300, 400, 500, 600, 700, 800,
			900, 1000, 1100, 1200, 1300, 1400, 1500, 1600,
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			packed, err := PackChannels(tc.channels)
			require.NoError(t, err)
			unpacked, err := UnpackChannels(packed[:])
			require.NoError(t, err)
			require.Equal(t, tc.channels, unpacked)
		})
	}
}

func TestPackChannelsRange(t *testing.T) {
	channels := [NumChannels]uint16{}
	channels[7] = 2048
	_, err := PackChannels(channels)
	require.ErrorIs(t, err, ErrChannelRange)
}

func TestPackChannelsLayout(t *testing.T) {
	// Channel 0 fills bits 0-10: 0x7FF packs to 0xFF, 0x07.
	var channels [NumChannels]uint16
	channels[0] = 0x7FF
	packed, err := PackChannels(channels)
	require.NoError(t, err)
	require.Equal(t, byte(0xFF), packed[0])
	require.Equal(t, byte(0x07), packed[1])
	for _, b := range packed[3:] {
		require.Equal(t, byte(0x00), b)
	}

	allMax := [NumChannels]uint16{}
	for i := range allMax {
		allMax[i] = 2047
	}
	packed, err = PackChannels(allMax)
	require.NoError(t, err)
	for _, b := range packed {
		require.Equal(t, byte(0xFF), b)
	}
}

func TestUnpackChannelsShort(t *testing.T) {
	_, err := UnpackChannels(make([]byte, PackedChannelsSize-1))
	require.ErrorIs(t, err, ErrShortChannels)
}

func TestUnpackChannelsInRange(t *testing.T) {
	data := make([]byte, PackedChannelsSize)
	for i := range data {
		data[i] = 0xFF
	}
	channels, err := UnpackChannels(data)
	require.NoError(t, err)
	for _, ch := range channels {
		require.LessOrEqual(t, ch, uint16(ChannelMax))
	}
}
