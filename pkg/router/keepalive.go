package router

import (
	"context"
	"io"
	"time"

	"github.com/golang/glog"
)

// Keepalive registers with the relay on start and periodically
// re-registers. On shutdown it sends a best-effort Unregister so the
// relay drops the client without waiting for a send failure.
type Keepalive struct {
	Conn     io.Writer
	Interval time.Duration
}

// NewKeepalive creates a Keepalive with the default interval writing to
// conn, which is expected to be a connected UDP socket aimed at the
// relay's command port.
func NewKeepalive(conn io.Writer) *Keepalive {
	return &Keepalive{Conn: conn, Interval: KeepaliveInterval}
}

// Name implements framework.Named.
func (k *Keepalive) Name() string {
	return "keepalive"
}

// Run implements framework.Runnable.
func (k *Keepalive) Run(ctx context.Context) error {
	ticker := time.NewTicker(k.Interval)
	defer ticker.Stop()
	k.send(OpRegister)
	for {
		select {
		case <-ctx.Done():
			k.send(OpUnregister)
			return ctx.Err()
		case <-ticker.C:
			k.send(OpRegister)
		}
	}
}

func (k *Keepalive) send(op Opcode) {
	if _, err := k.Conn.Write([]byte{byte(op)}); err != nil {
		glog.Warningf("send %s failed: %v", op, err)
	}
}
