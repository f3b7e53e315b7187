package crsf

import "errors"

// RC channel constants. 16 channels of 11 bits each pack into exactly
// 22 bytes.
const (
	NumChannels        = 16
	ChannelMax         = 0x7FF
	PackedChannelsSize = 22

	channelBits = 11
)

// ErrChannelRange indicates a channel value above the 11-bit maximum.
var ErrChannelRange = errors.New("crsf: channel value out of range")

// ErrShortChannels indicates fewer than 22 bytes of packed channel data.
var ErrShortChannels = errors.New("crsf: packed channel data too short")

// PackChannels packs 16 channel values into the 22-byte wire buffer.
// Channel 0 occupies bits 0-10 starting at byte 0, channel 1 the next
// 11 bits, and so on; bit order is little-endian within each byte.
func PackChannels(channels [NumChannels]uint16) ([PackedChannelsSize]byte, error) {
	var out [PackedChannelsSize]byte
	var acc uint32
	var bits uint
	pos := 0
	for _, ch := range channels {
		if ch > ChannelMax {
			return out, ErrChannelRange
		}
		acc |= uint32(ch) << bits
		bits += channelBits
		for bits >= 8 {
			out[pos] = byte(acc)
			pos++
			acc >>= 8
			bits -= 8
		}
	}
	return out, nil
}

// UnpackChannels is the inverse of PackChannels. It requires at least
// 22 bytes and always produces values in [0, ChannelMax].
func UnpackChannels(data []byte) ([NumChannels]uint16, error) {
	var channels [NumChannels]uint16
	if len(data) < PackedChannelsSize {
		return channels, ErrShortChannels
	}
	var acc uint32
	var bits uint
	pos := 0
	for i := range channels {
		for bits < channelBits {
			acc |= uint32(data[pos]) << bits
			pos++
			bits += 8
		}
		channels[i] = uint16(acc & ChannelMax)
		acc >>= channelBits
		bits -= channelBits
	}
	return channels, nil
}
