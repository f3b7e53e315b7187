// Package telemetry parses and builds the flight simulator's UDP
// telemetry records. A record is a concatenation of little-endian
// float32 fields whose order is announced by the simulator's stream
// format; every field is optional per stream configuration.
package telemetry

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Field names used in a stream format.
const (
	FieldTimestamp = "Timestamp"
	FieldPosition  = "Position"
	FieldAttitude  = "Attitude"
	FieldVelocity  = "Velocity"
	FieldGyro      = "Gyro"
	FieldInput     = "Input"
	FieldBattery   = "Battery"
	FieldMotorRPM  = "MotorRPM"
)

// DefaultStreamFormat is the stream format assumed when the simulator's
// telemetry configuration is not read.
var DefaultStreamFormat = []string{
	FieldTimestamp,
	FieldPosition,
	FieldAttitude,
	FieldVelocity,
	FieldGyro,
	FieldInput,
	FieldBattery,
	FieldMotorRPM,
}

// ErrShortBuffer indicates a record shorter than its stream format
// requires.
var ErrShortBuffer = errors.New("telemetry: buffer too short")

// Descriptor mirrors the simulator's telemetry configuration file.
type Descriptor struct {
	EndPoint     string   `json:"EndPoint"`
	StreamFormat []string `json:"StreamFormat"`
}

// Packet is one decoded telemetry record. Nil fields were absent from
// the stream format.
type Packet struct {
	Timestamp *float32
	Position  *[3]float32 // X, Y(up), Z in simulator coordinates
	Attitude  *[4]float32 // quaternion X, Y, Z, W
	Velocity  *[3]float32
	Gyro      *[3]float32 // pitch, roll, yaw rates
	Input     *[4]float32 // throttle, yaw, pitch, roll
	Battery   *[2]float32 // fraction remaining, voltage
	MotorRPM  []float32
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) f32() (float32, error) {
	if r.pos+4 > len(r.data) {
		return 0, ErrShortBuffer
	}
	v := math.Float32frombits(binary.LittleEndian.Uint32(r.data[r.pos:]))
	r.pos += 4
	return v, nil
}

func (r *reader) vec(n int) ([]float32, error) {
	out := make([]float32, n)
	for i := range out {
		v, err := r.f32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Parse decodes one record according to the given stream format. A nil
// format means DefaultStreamFormat.
func Parse(data []byte, format []string) (*Packet, error) {
	if format == nil {
		format = DefaultStreamFormat
	}
	r := &reader{data: data}
	pkt := &Packet{}
	for _, field := range format {
		switch field {
		case FieldTimestamp:
			v, err := r.f32()
			if err != nil {
				return nil, err
			}
			pkt.Timestamp = &v
		case FieldPosition:
			v, err := r.vec(3)
			if err != nil {
				return nil, err
			}
			pkt.Position = &[3]float32{v[0], v[1], v[2]}
		case FieldAttitude:
			v, err := r.vec(4)
			if err != nil {
				return nil, err
			}
			pkt.Attitude = &[4]float32{v[0], v[1], v[2], v[3]}
		case FieldVelocity:
			v, err := r.vec(3)
			if err != nil {
				return nil, err
			}
			pkt.Velocity = &[3]float32{v[0], v[1], v[2]}
		case FieldGyro:
			v, err := r.vec(3)
			if err != nil {
				return nil, err
			}
			pkt.Gyro = &[3]float32{v[0], v[1], v[2]}
		case FieldInput:
			v, err := r.vec(4)
			if err != nil {
				return nil, err
			}
			pkt.Input = &[4]float32{v[0], v[1], v[2], v[3]}
		case FieldBattery:
			v, err := r.vec(2)
			if err != nil {
				return nil, err
			}
			pkt.Battery = &[2]float32{v[0], v[1]}
		case FieldMotorRPM:
			if r.pos+1 > len(r.data) {
				return nil, ErrShortBuffer
			}
			count := int(r.data[r.pos])
			r.pos++
			if count > 0 {
				rpms, err := r.vec(count)
				if err != nil {
					return nil, err
				}
				pkt.MotorRPM = rpms
			}
		default:
			return nil, fmt.Errorf("telemetry: unknown field %q in stream format", field)
		}
	}
	return pkt, nil
}

func appendF32(dst []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
}

// Append serializes pkt following the given stream format, appending to
// dst. Fields named by the format but nil in pkt are written as zeros.
// A nil format means DefaultStreamFormat.
func Append(dst []byte, pkt *Packet, format []string) ([]byte, error) {
	if format == nil {
		format = DefaultStreamFormat
	}
	for _, field := range format {
		switch field {
		case FieldTimestamp:
			var v float32
			if pkt.Timestamp != nil {
				v = *pkt.Timestamp
			}
			dst = appendF32(dst, v)
		case FieldPosition:
			var v [3]float32
			if pkt.Position != nil {
				v = *pkt.Position
			}
			for _, f := range v {
				dst = appendF32(dst, f)
			}
		case FieldAttitude:
			var v [4]float32
			if pkt.Attitude != nil {
				v = *pkt.Attitude
			}
			for _, f := range v {
				dst = appendF32(dst, f)
			}
		case FieldVelocity:
			var v [3]float32
			if pkt.Velocity != nil {
				v = *pkt.Velocity
			}
			for _, f := range v {
				dst = appendF32(dst, f)
			}
		case FieldGyro:
			var v [3]float32
			if pkt.Gyro != nil {
				v = *pkt.Gyro
			}
			for _, f := range v {
				dst = appendF32(dst, f)
			}
		case FieldInput:
			var v [4]float32
			if pkt.Input != nil {
				v = *pkt.Input
			}
			for _, f := range v {
				dst = appendF32(dst, f)
			}
		case FieldBattery:
			var v [2]float32
			if pkt.Battery != nil {
				v = *pkt.Battery
			}
			for _, f := range v {
				dst = appendF32(dst, f)
			}
		case FieldMotorRPM:
			if len(pkt.MotorRPM) > 255 {
				return nil, fmt.Errorf("telemetry: too many motor RPM values: %d", len(pkt.MotorRPM))
			}
			dst = append(dst, byte(len(pkt.MotorRPM)))
			for _, f := range pkt.MotorRPM {
				dst = appendF32(dst, f)
			}
		default:
			return nil, fmt.Errorf("telemetry: unknown field %q in stream format", field)
		}
	}
	return dst, nil
}
