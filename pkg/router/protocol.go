// Package router implements the telemetry relay protocol: a one-byte
// command opcode on the command socket, a client registry, and the
// keepalive loop clients run against the relay.
package router

import "time"

// KeepaliveInterval is how often a client re-sends Register to stay
// subscribed.
const KeepaliveInterval = 30 * time.Second

// Opcode is a relay command byte.
type Opcode byte

const (
	// OpRegister subscribes the sender; it doubles as keepalive.
	OpRegister Opcode = 0x00
	// OpUnregister removes the sender.
	OpUnregister Opcode = 0x01
)

// ParseOpcode maps a command byte to its Opcode. Unrecognized bytes are
// ignored by the relay, not treated as errors.
func ParseOpcode(b byte) (Opcode, bool) {
	switch Opcode(b) {
	case OpRegister, OpUnregister:
		return Opcode(b), true
	}
	return 0, false
}

func (o Opcode) String() string {
	switch o {
	case OpRegister:
		return "register"
	case OpUnregister:
		return "unregister"
	}
	return "unknown"
}
