package input

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simlink/simlink.go/pkg/input/device"
)

type fakeDevice struct {
	batches [][]device.Event
}

func (d *fakeDevice) Close() error { return nil }

func (d *fakeDevice) Name() string { return "fake" }

func (d *fakeDevice) Emit(events ...device.Event) error {
	d.batches = append(d.batches, events)
	return nil
}

func (d *fakeDevice) last() []device.Event {
	return d.batches[len(d.batches)-1]
}

func centered() [16]uint16 {
	var ch [16]uint16
	for i := range ch {
		ch[i] = AxisMid
	}
	return ch
}

func TestMapperFirstUpdateEmitsAll(t *testing.T) {
	dev := &fakeDevice{}
	m := NewMapper(dev)
	require.NoError(t, m.Apply(centered()))
	// Channels 0..11 are mapped, 12..15 are not.
	require.Len(t, dev.batches, 12)
}

func TestMapperSkipsUnchanged(t *testing.T) {
	dev := &fakeDevice{}
	m := NewMapper(dev)
	ch := centered()
	require.NoError(t, m.Apply(ch))
	dev.batches = nil

	require.NoError(t, m.Apply(ch))
	require.Empty(t, dev.batches)

	ch[0] = 100
	require.NoError(t, m.Apply(ch))
	require.Len(t, dev.batches, 1)
	require.Equal(t, []device.Event{device.Abs(device.AbsX, 100)}, dev.last())
}

func TestMapperStickAxes(t *testing.T) {
	dev := &fakeDevice{}
	m := NewMapper(dev)
	ch := centered()
	require.NoError(t, m.Apply(ch))

	axes := []uint16{device.AbsX, device.AbsY, device.AbsZ, device.AbsRX}
	for i, axis := range axes {
		dev.batches = nil
		ch[i] = uint16(200 + i)
		require.NoError(t, m.Apply(ch))
		require.Equal(t, []device.Event{device.Abs(axis, int32(200+i))}, dev.last())
	}
}

func TestMapperArmSwitch(t *testing.T) {
	dev := &fakeDevice{}
	m := NewMapper(dev)
	ch := centered()
	ch[4] = 0 // disarm position
	require.NoError(t, m.Apply(ch))

	dev.batches = nil
	ch[4] = AxisMax // arm
	require.NoError(t, m.Apply(ch))
	require.Equal(t, []device.Event{
		device.Key(device.BtnTrigger, false),
		device.Key(device.BtnThumb, true),
		device.Abs(device.AbsThrottle, AxisMax),
	}, dev.last())
}

func TestMapperThreePositionSwitch(t *testing.T) {
	dev := &fakeDevice{}
	m := NewMapper(dev)
	ch := centered()
	require.NoError(t, m.Apply(ch))

	// Channel 8 uses BtnTop/BtnTop2.
	for _, c := range []struct {
		val       uint16
		low, high bool
	}{
		{0, true, false},
		{Axis3PosLow, true, false},
		{AxisMid, false, false},
		{Axis3PosHigh, false, true},
		{AxisMax, false, true},
	} {
		dev.batches = nil
		ch[8] = c.val
		require.NoError(t, m.Apply(ch))
		if len(dev.batches) == 0 {
			// Value unchanged from previous case.
			continue
		}
		require.Equal(t, []device.Event{
			device.Key(device.BtnTop, c.low),
			device.Key(device.BtnTop2, c.high),
		}, dev.last(), "value %d", c.val)
	}
}

func TestMapperUpperChannelsIgnored(t *testing.T) {
	dev := &fakeDevice{}
	m := NewMapper(dev)
	ch := centered()
	require.NoError(t, m.Apply(ch))

	dev.batches = nil
	ch[15] = 0
	require.NoError(t, m.Apply(ch))
	require.Empty(t, dev.batches)
}
