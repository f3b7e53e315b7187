package router

import (
	"bytes"
	"context"
	"net/netip"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseOpcode(t *testing.T) {
	op, ok := ParseOpcode(0x00)
	require.True(t, ok)
	require.Equal(t, OpRegister, op)

	op, ok = ParseOpcode(0x01)
	require.True(t, ok)
	require.Equal(t, OpUnregister, op)

	_, ok = ParseOpcode(0x02)
	require.False(t, ok)
	_, ok = ParseOpcode(0xFF)
	require.False(t, ok)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	a := netip.MustParseAddrPort("127.0.0.1:9000")
	b := netip.MustParseAddrPort("127.0.0.1:9001")

	require.True(t, reg.Register(a))
	require.False(t, reg.Register(a)) // keepalive path
	require.True(t, reg.Register(b))
	require.Equal(t, 2, reg.Len())
	require.ElementsMatch(t, []netip.AddrPort{a, b}, reg.Snapshot())

	require.True(t, reg.Unregister(a))
	require.False(t, reg.Unregister(a))
	require.Equal(t, 1, reg.Len())
}

type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *lockedWriter) bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]byte(nil), w.buf.Bytes()...)
}

func TestKeepaliveRegistersAndUnregisters(t *testing.T) {
	w := &lockedWriter{}
	k := &Keepalive{Conn: w, Interval: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- k.Run(ctx) }()

	require.Eventually(t, func() bool { return len(w.bytes()) >= 1 }, time.Second, time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	require.Equal(t, []byte{byte(OpRegister), byte(OpUnregister)}, w.bytes())
}
