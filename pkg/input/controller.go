package input

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/simlink/simlink.go/pkg/crsf"
	fx "github.com/simlink/simlink.go/pkg/framework"
	"github.com/simlink/simlink.go/pkg/input/device"
	"github.com/simlink/simlink.go/pkg/router"
	"github.com/simlink/simlink.go/pkg/telemetry"
)

// TelemetryInterval is the minimum gap between telemetry bursts sent
// back to the handset.
const TelemetryInterval = 100 * time.Millisecond

// Controller receives RC channel datagrams, drives a virtual joystick
// and returns simulator telemetry to the last handset seen.
type Controller struct {
	Mapper   *Mapper
	Interval time.Duration

	rcConn  net.PacketConn
	telConn *net.UDPConn

	peerLock sync.Mutex
	peer     net.Addr
}

// NewController opens the sockets and wires the virtual device.
func (c *Config) NewController(dev device.Device) (*Controller, error) {
	rcConn, err := net.ListenPacket("udp", c.BindAddr)
	if err != nil {
		return nil, err
	}
	routerAddr, err := net.ResolveUDPAddr("udp", c.RouterAddr)
	if err != nil {
		rcConn.Close()
		return nil, err
	}
	telConn, err := net.DialUDP("udp", nil, routerAddr)
	if err != nil {
		rcConn.Close()
		return nil, err
	}
	return &Controller{
		Mapper:   NewMapper(dev),
		Interval: TelemetryInterval,
		rcConn:   rcConn,
		telConn:  telConn,
	}, nil
}

// Runnables returns the background loops to spawn on a Runner.
func (c *Controller) Runnables() []fx.Runnable {
	return []fx.Runnable{
		fx.NamedRun("rc", fx.RunFunc(c.runRC)),
		fx.NamedRun("telemetry", fx.RunFunc(c.runTelemetry)),
		router.NewKeepalive(c.telConn),
	}
}

func (c *Controller) runRC(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, c.rcConn, func() error {
		buf := make([]byte, 4096)
		for {
			n, addr, err := c.rcConn.ReadFrom(buf)
			if err != nil {
				return err
			}
			c.setPeer(addr)
			if n < 1 || crsf.PacketType(buf[0]) != crsf.TypeRcChannelsPacked {
				continue
			}
			channels, err := crsf.UnpackChannels(buf[1:n])
			if err != nil {
				glog.Warningf("channel datagram from %s: %v", addr, err)
				continue
			}
			if !inRange(channels) {
				glog.Warningf("channel out of range: %v", channels)
				continue
			}
			if err := c.Mapper.Apply(channels); err != nil {
				glog.Errorf("device update failed: %v", err)
			}
		}
	})
}

func (c *Controller) runTelemetry(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, c.telConn, func() error {
		buf := make([]byte, 4096)
		var next time.Time
		for {
			n, err := c.telConn.Read(buf)
			if err != nil {
				return err
			}
			now := time.Now()
			if now.Before(next) {
				continue
			}
			rec, err := telemetry.Parse(buf[:n], nil)
			if err != nil {
				glog.V(2).Infof("telemetry record: %v", err)
				continue
			}
			peer := c.Peer()
			if peer == nil {
				continue
			}
			for _, pkt := range telemetry.GenerateCRSF(rec) {
				data, err := crsf.AppendPayload(nil, pkt)
				if err != nil {
					glog.Warningf("encode %s: %v", pkt.Type(), err)
					continue
				}
				if _, err := c.rcConn.WriteTo(data, peer); err != nil {
					glog.Warningf("return telemetry to %s: %v", peer, err)
				}
			}
			next = now.Add(c.Interval)
		}
	})
}

// Peer returns the source address of the most recent RC datagram.
func (c *Controller) Peer() net.Addr {
	c.peerLock.Lock()
	defer c.peerLock.Unlock()
	return c.peer
}

func (c *Controller) setPeer(addr net.Addr) {
	c.peerLock.Lock()
	defer c.peerLock.Unlock()
	if c.peer == nil || c.peer.String() != addr.String() {
		glog.Infof("handset connected: %s", addr)
		c.peer = addr
	}
}

// Close releases sockets. The virtual device is owned by the caller.
func (c *Controller) Close() error {
	var errs fx.AggregatedError
	errs.Add(c.rcConn.Close(), c.telConn.Close())
	return errs.Aggregate()
}

func inRange(channels [crsf.NumChannels]uint16) bool {
	for _, ch := range channels {
		if ch > AxisMax {
			return false
		}
	}
	return true
}
