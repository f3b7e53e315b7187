//go:build linux
// +build linux

package device

import (
	"bytes"
	"encoding/binary"
	"os"
	"syscall"
	"unsafe"
)

// Vendor/product of a Radiomaster Pocket so simulators recognize the
// virtual joystick as an RC transmitter.
const (
	busUSB  uint16 = 0x03
	vendor  uint16 = 0x1209
	product uint16 = 0x4f54
)

const (
	uiSetEvBit   uint = 0x40045564
	uiSetKeyBit  uint = 0x40045565
	uiSetAbsBit  uint = 0x40045567
	uiDevSetup   uint = 0x405c5503
	uiAbsSetup   uint = 0x401c5504
	uiDevCreate  uint = 0x5501
	uiDevDestroy uint = 0x5502
)

var deviceKeys = []uint16{
	BtnTrigger, BtnThumb, BtnThumb2,
	BtnTop, BtnTop2, BtnPinkie,
	BtnBase, BtnBase2, BtnBase3, BtnBase4, BtnBase5, BtnBase6,
	BtnBase6 + 1,
}

var deviceAxes = []uint16{
	AbsX, AbsY, AbsZ, AbsRX,
	AbsThrottle, AbsRudder, AbsWheel,
}

type inputID struct {
	BusType uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

type devSetup struct {
	ID           inputID
	Name         [80]byte
	FFEffectsMax uint32
}

type absInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

type absSetup struct {
	Code uint16
	_    uint16
	Info absInfo
}

type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

type uinputDevice struct {
	file *os.File
	name string
}

// Create opens /dev/uinput and registers a virtual joystick with the
// given name and axis range. All axes share range [0, axisMax].
func Create(name string, axisMax int32) (Device, error) {
	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY|syscall.O_NONBLOCK, 0660)
	if err != nil {
		return nil, err
	}
	d := &uinputDevice{file: f, name: name}
	if err := d.setup(axisMax); err != nil {
		f.Close()
		return nil, err
	}
	return d, nil
}

func (d *uinputDevice) setup(axisMax int32) error {
	for _, ev := range []uint16{EvSyn, EvKey, EvAbs, EvMsc} {
		if errno := d.ioctl(uiSetEvBit, uintptr(ev)); errno != 0 {
			return errno
		}
	}
	for _, key := range deviceKeys {
		if errno := d.ioctl(uiSetKeyBit, uintptr(key)); errno != 0 {
			return errno
		}
	}
	for _, axis := range deviceAxes {
		if errno := d.ioctl(uiSetAbsBit, uintptr(axis)); errno != 0 {
			return errno
		}
		abs := absSetup{
			Code: axis,
			Info: absInfo{Maximum: axisMax, Fuzz: 7, Flat: 127},
		}
		if errno := d.ioctl(uiAbsSetup, uintptr(unsafe.Pointer(&abs))); errno != 0 {
			return errno
		}
	}

	setup := devSetup{
		ID: inputID{BusType: busUSB, Vendor: vendor, Product: product},
	}
	copy(setup.Name[:], d.name)
	if errno := d.ioctl(uiDevSetup, uintptr(unsafe.Pointer(&setup))); errno != 0 {
		return errno
	}
	if errno := d.ioctl(uiDevCreate, 0); errno != 0 {
		return errno
	}
	return nil
}

// Close implements Device.
func (d *uinputDevice) Close() error {
	d.ioctl(uiDevDestroy, 0)
	return d.file.Close()
}

// Name implements Device.
func (d *uinputDevice) Name() string {
	return d.name
}

// Emit implements Device.
func (d *uinputDevice) Emit(events ...Event) error {
	var buf bytes.Buffer
	for _, ev := range events {
		rec := inputEvent{Type: ev.Type, Code: ev.Code, Value: ev.Value}
		if err := binary.Write(&buf, binary.LittleEndian, &rec); err != nil {
			return err
		}
	}
	syn := inputEvent{Type: EvSyn, Code: SynReport}
	if err := binary.Write(&buf, binary.LittleEndian, &syn); err != nil {
		return err
	}
	_, err := d.file.Write(buf.Bytes())
	return err
}

func (d *uinputDevice) ioctl(req uint, arg uintptr) syscall.Errno {
	_, _, err := syscall.Syscall(syscall.SYS_IOCTL, uintptr(d.file.Fd()), uintptr(req), arg)
	return err
}
