package crsf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCRC8(t *testing.T) {
	testCases := []struct {
		name string
		in   []byte
		want byte
	}{
		{"empty", nil, 0x00},
		{"check value", []byte("123456789"), 0xBC},
		{"single zero", []byte{0x00}, 0x00},
		{"single byte", []byte{0x01}, 0xD5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CRC8(tc.in))
		})
	}
}

func TestUsTicksConversion(t *testing.T) {
	require.Equal(t, uint16(992), UsToTicks(1500))
	require.Equal(t, uint16(1500), TicksToUs(992))
	require.Equal(t, uint16(173), UsToTicks(988))
	require.Equal(t, uint16(1811), UsToTicks(2012))
}
