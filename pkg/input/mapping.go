// Package input turns packed RC channel values into virtual joystick
// events and returns simulator telemetry to the RC link.
package input

import (
	"github.com/simlink/simlink.go/pkg/input/device"
)

// Channel values are ticks in [0, AxisMax]. Two-position switches flip
// around the midpoint; three-position switches use the wider thresholds
// so the center position releases both buttons.
const (
	AxisMax      = 1983
	AxisMid      = 992
	Axis3PosLow  = 592
	Axis3PosHigh = 1392
)

// DeviceName is the name the virtual joystick registers under.
const DeviceName = "CRSF Joystick"

// stickAxes maps channels 0..3 (AIL, ELE, THR, RUD) to axes.
var stickAxes = [4]uint16{device.AbsX, device.AbsY, device.AbsZ, device.AbsRX}

// threePos maps channels 8..11 (RUD, ELE, THR, AIL trim) to low/high
// button pairs.
var threePos = [4][2]uint16{
	{device.BtnTop, device.BtnTop2},
	{device.BtnPinkie, device.BtnBase},
	{device.BtnBase2, device.BtnBase3},
	{device.BtnBase4, device.BtnBase5},
}

// Mapper tracks last seen channel values and emits device events only
// for channels that changed.
type Mapper struct {
	dev device.Device
	old [16]uint16
}

// NewMapper creates a Mapper driving dev. Initial values are out of
// range so the first update emits every channel.
func NewMapper(dev device.Device) *Mapper {
	m := &Mapper{dev: dev}
	for i := range m.old {
		m.old[i] = 0xffff
	}
	return m
}

// Apply emits events for all channels whose value changed since the
// previous call. Each changed channel becomes one event batch.
func (m *Mapper) Apply(channels [16]uint16) error {
	for ch, val := range channels {
		if val == m.old[ch] {
			continue
		}
		events := channelEvents(ch, val)
		if len(events) == 0 {
			continue
		}
		if err := m.dev.Emit(events...); err != nil {
			return err
		}
	}
	m.old = channels
	return nil
}

func channelEvents(ch int, val uint16) []device.Event {
	v := int32(val)
	switch {
	case ch < 4:
		return []device.Event{device.Abs(stickAxes[ch], v)}
	case ch == 4:
		// Arm switch: two buttons plus the raw axis.
		return []device.Event{
			device.Key(device.BtnTrigger, val < AxisMid),
			device.Key(device.BtnThumb, val >= AxisMid),
			device.Abs(device.AbsThrottle, v),
		}
	case ch == 5:
		return []device.Event{device.Key(device.BtnThumb2, val >= AxisMid)}
	case ch == 6:
		return []device.Event{device.Abs(device.AbsRudder, v)}
	case ch == 7:
		return []device.Event{
			device.Key(device.BtnBase6, val < AxisMid),
			device.Key(device.BtnBase6+1, val >= AxisMid),
			device.Abs(device.AbsWheel, v),
		}
	case ch < 12:
		pair := threePos[ch-8]
		return []device.Event{
			device.Key(pair[0], val <= Axis3PosLow),
			device.Key(pair[1], val >= Axis3PosHigh),
		}
	}
	return nil
}
