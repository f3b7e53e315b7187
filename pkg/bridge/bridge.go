package bridge

import (
	"context"
	"io"
	"net"

	"github.com/golang/glog"
	"github.com/tarm/serial"

	"github.com/simlink/simlink.go/pkg/crsf"
	fx "github.com/simlink/simlink.go/pkg/framework"
)

// Bridge connects the serial RC link to the UDP side. The handset side
// of the link addresses us as the flight controller, so frames are
// scanned for that sync byte and telemetry written back carries the
// same address.
type Bridge struct {
	Metrics *Metrics

	port     io.ReadWriteCloser
	destConn *net.UDPConn
	telConn  net.PacketConn
	framer   *crsf.Framer
	sendCh   chan []byte
}

// NewBridge opens the serial port and UDP sockets.
func (c *Config) NewBridge(m *Metrics) (*Bridge, error) {
	port, err := serial.OpenPort(&serial.Config{Name: c.Port, Baud: c.Baud})
	if err != nil {
		return nil, err
	}
	destAddr, err := net.ResolveUDPAddr("udp", c.DestAddr)
	if err != nil {
		port.Close()
		return nil, err
	}
	destConn, err := net.DialUDP("udp", nil, destAddr)
	if err != nil {
		port.Close()
		return nil, err
	}
	telConn, err := net.ListenPacket("udp", c.SrcAddr)
	if err != nil {
		port.Close()
		destConn.Close()
		return nil, err
	}
	return &Bridge{
		Metrics:  m,
		port:     port,
		destConn: destConn,
		telConn:  telConn,
		framer:   crsf.NewFramer(crsf.AddrFlightController),
		sendCh:   make(chan []byte, 32),
	}, nil
}

// Runnables returns the background loops to spawn on a Runner.
func (b *Bridge) Runnables() []fx.Runnable {
	return []fx.Runnable{
		fx.NamedRun("serial-rx", fx.RunFunc(b.runSerialRx)),
		fx.NamedRun("serial-tx", fx.RunFunc(b.runSerialTx)),
		fx.NamedRun("udp-dest", fx.RunFunc(b.runDestRx)),
		fx.NamedRun("udp-telemetry", fx.RunFunc(b.runTelemetryRx)),
	}
}

// runSerialRx re-synchronizes the serial byte stream and forwards each
// valid payload as one datagram.
func (b *Bridge) runSerialRx(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, b.port, func() error {
		buf := make([]byte, 1024)
		for {
			n, err := b.port.Read(buf)
			if err != nil {
				return err
			}
			payloads, crcErrs := b.framer.Feed(buf[:n])
			if crcErrs > 0 {
				b.Metrics.RxCount.Add(float64(crcErrs))
				b.Metrics.RxCRCErrors.Add(float64(crcErrs))
			}
			for _, payload := range payloads {
				b.Metrics.RxCount.Inc()
				b.Metrics.RxValid.Inc()
				b.Metrics.RxFrameSize.Observe(float64(len(payload) + 3))
				if _, err := b.destConn.Write(payload); err != nil {
					glog.Warningf("forward payload: %v", err)
				}
			}
		}
	})
}

// runSerialTx wraps queued payloads into frames and writes them to the
// port.
func (b *Bridge) runSerialTx(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload := <-b.sendCh:
			frame, err := crsf.WrapFrame(crsf.AddrFlightController, payload)
			if err != nil {
				glog.Warningf("drop oversize payload (%d bytes): %v", len(payload), err)
				continue
			}
			b.Metrics.TxCount.Inc()
			b.Metrics.TxFrameSize.Observe(float64(len(frame)))
			if _, err := b.port.Write(frame); err != nil {
				return err
			}
		}
	}
}

func (b *Bridge) runDestRx(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, b.destConn, func() error {
		buf := make([]byte, crsf.MaxFrameSize)
		for {
			n, err := b.destConn.Read(buf)
			if err != nil {
				return err
			}
			b.enqueue(buf[:n])
		}
	})
}

func (b *Bridge) runTelemetryRx(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, b.telConn, func() error {
		buf := make([]byte, crsf.MaxFrameSize)
		for {
			n, _, err := b.telConn.ReadFrom(buf)
			if err != nil {
				return err
			}
			b.enqueue(buf[:n])
		}
	})
}

func (b *Bridge) enqueue(payload []byte) {
	data := append([]byte(nil), payload...)
	select {
	case b.sendCh <- data:
	default:
		glog.Warning("serial send queue full, dropping payload")
	}
}

// Close releases the port and sockets.
func (b *Bridge) Close() error {
	var errs fx.AggregatedError
	errs.Add(b.port.Close(), b.destConn.Close(), b.telConn.Close())
	return errs.Aggregate()
}
