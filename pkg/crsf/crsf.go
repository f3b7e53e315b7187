// Package crsf implements the CRSF wire protocol: CRC-8/DVB-S2, 11-bit
// channel packing, the per-type packet codec and the serial frame
// synchronizer.
//
// A frame on the serial link is:
//
//	[address] [length] [type] [payload...] [crc]
//
// where length counts type+payload+crc and crc covers type+payload only.
// On the UDP side only type+payload travels in each datagram; the
// address/length/crc envelope is added or stripped at the serial boundary.
package crsf

// MaxFrameSize is the maximum length of a complete frame including the
// address and CRC bytes.
const MaxFrameSize = 64

// Device addresses. The address byte doubles as the sync marker an
// endpoint scans for in the serial stream.
const (
	AddrBroadcast        byte = 0x00
	AddrFlightController byte = 0xC8
	AddrRadioTransmitter byte = 0xEA
	AddrReceiver         byte = 0xEC
	AddrTransmitter      byte = 0xEE
)

// UsToTicks converts a channel pulse width in microseconds to protocol
// ticks. 1500us maps to the center value 992.
func UsToTicks(us uint16) uint16 {
	return uint16((int32(us)-1500)*8/5 + 992)
}

// TicksToUs is the inverse of UsToTicks.
func TicksToUs(ticks uint16) uint16 {
	return uint16((int32(ticks)-992)*5/8 + 1500)
}
