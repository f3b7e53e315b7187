package bridge

import (
	"context"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/simlink/simlink.go/pkg/crsf"
)

type fakePort struct {
	readCh chan []byte

	mu        sync.Mutex
	wrote     []byte
	closeOnce sync.Once
}

func newFakePort() *fakePort {
	return &fakePort{readCh: make(chan []byte, 16)}
}

func (p *fakePort) Read(buf []byte) (int, error) {
	data, ok := <-p.readCh
	if !ok {
		return 0, io.EOF
	}
	return copy(buf, data), nil
}

func (p *fakePort) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wrote = append(p.wrote, data...)
	return len(data), nil
}

func (p *fakePort) Close() error {
	p.closeOnce.Do(func() { close(p.readCh) })
	return nil
}

func (p *fakePort) written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.wrote...)
}

func testBridge(t *testing.T, port io.ReadWriteCloser, destConn *net.UDPConn) *Bridge {
	t.Helper()
	return &Bridge{
		Metrics:  NewMetrics(prometheus.NewRegistry()),
		port:     port,
		destConn: destConn,
		framer:   crsf.NewFramer(crsf.AddrFlightController),
		sendCh:   make(chan []byte, 32),
	}
}

func TestBridgeSerialToUDP(t *testing.T) {
	listener, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	destConn, err := net.DialUDP("udp", nil, listener.LocalAddr().(*net.UDPAddr))
	require.NoError(t, err)
	defer destConn.Close()

	port := newFakePort()
	b := testBridge(t, port, destConn)

	frame, err := crsf.Encode(crsf.AddrFlightController, crsf.Attitude{Pitch: 100, Roll: -100, Yaw: 0})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.runSerialRx(ctx) }()

	// Garbage before the frame exercises re-synchronization.
	port.readCh <- append([]byte{0x11, 0x22}, frame...)

	buf := make([]byte, crsf.MaxFrameSize)
	require.NoError(t, listener.SetReadDeadline(time.Now().Add(time.Second)))
	n, _, err := listener.ReadFrom(buf)
	require.NoError(t, err)
	require.Equal(t, frame[2:len(frame)-1], buf[:n])

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestBridgeUDPToSerial(t *testing.T) {
	port := newFakePort()
	b := testBridge(t, port, nil)

	payload, err := crsf.AppendPayload(nil, crsf.Vario{VerticalSpeed: 42})
	require.NoError(t, err)
	b.enqueue(payload)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.runSerialTx(ctx) }()

	want, err := crsf.WrapFrame(crsf.AddrFlightController, payload)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return len(port.written()) == len(want)
	}, time.Second, time.Millisecond)
	require.Equal(t, want, port.written())

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestBridgeDropsOversizePayload(t *testing.T) {
	port := newFakePort()
	b := testBridge(t, port, nil)

	b.enqueue(make([]byte, crsf.MaxFrameSize))
	payload, err := crsf.AppendPayload(nil, crsf.Vario{VerticalSpeed: 1})
	require.NoError(t, err)
	b.enqueue(payload)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.runSerialTx(ctx) }()

	want, err := crsf.WrapFrame(crsf.AddrFlightController, payload)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return len(port.written()) == len(want)
	}, time.Second, time.Millisecond)
	// Only the in-range payload made it to the port.
	require.Equal(t, want, port.written())

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
