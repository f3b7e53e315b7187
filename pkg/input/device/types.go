// Package device creates and drives virtual input devices.
package device

import "io"

// Event types and codes from linux/input-event-codes.h. Only the
// subset the joystick mapping emits is listed.
const (
	EvSyn uint16 = 0x00
	EvKey uint16 = 0x01
	EvAbs uint16 = 0x03
	EvMsc uint16 = 0x04

	SynReport uint16 = 0x00
	MscScan   uint16 = 0x04

	BtnTrigger uint16 = 0x120
	BtnThumb   uint16 = 0x121
	BtnThumb2  uint16 = 0x122
	BtnTop     uint16 = 0x123
	BtnTop2    uint16 = 0x124
	BtnPinkie  uint16 = 0x125
	BtnBase    uint16 = 0x126
	BtnBase2   uint16 = 0x127
	BtnBase3   uint16 = 0x128
	BtnBase4   uint16 = 0x129
	BtnBase5   uint16 = 0x12a
	BtnBase6   uint16 = 0x12b

	AbsX        uint16 = 0x00
	AbsY        uint16 = 0x01
	AbsZ        uint16 = 0x02
	AbsRX       uint16 = 0x03
	AbsThrottle uint16 = 0x06
	AbsRudder   uint16 = 0x07
	AbsWheel    uint16 = 0x08
)

// Event is a single input event to inject.
type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

// Key makes a key press/release event.
func Key(code uint16, pressed bool) Event {
	var v int32
	if pressed {
		v = 1
	}
	return Event{Type: EvKey, Code: code, Value: v}
}

// Abs makes an absolute axis event.
func Abs(code uint16, value int32) Event {
	return Event{Type: EvAbs, Code: code, Value: value}
}

// Device represents a created virtual input device. Emit injects a
// batch of events followed by a sync report, so the batch is applied
// atomically by consumers.
type Device interface {
	io.Closer
	// Name returns the device name.
	Name() string
	// Emit injects events and terminates the batch with SYN_REPORT.
	Emit(events ...Event) error
}
