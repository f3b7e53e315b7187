package router

import (
	"context"
	"net"
	"net/netip"

	"github.com/golang/glog"

	fx "github.com/simlink/simlink.go/pkg/framework"
)

// Relay fans incoming telemetry datagrams out to registered clients.
// Clients register and unregister through single-opcode datagrams on
// the command socket; replies to a client go out from that same
// socket, so its registered address stays reachable behind NAT.
type Relay struct {
	Registry *Registry
	Metrics  *Metrics

	// Publish, when set, also gets every telemetry datagram.
	Publish func(data []byte)

	cmdConn *net.UDPConn
	telConn *net.UDPConn
}

// NewRelay opens the command and telemetry sockets.
func (c *Config) NewRelay(m *Metrics) (*Relay, error) {
	cmdAddr, err := net.ResolveUDPAddr("udp", c.CmdAddr)
	if err != nil {
		return nil, err
	}
	cmdConn, err := net.ListenUDP("udp", cmdAddr)
	if err != nil {
		return nil, err
	}
	telAddr, err := net.ResolveUDPAddr("udp", c.TelAddr)
	if err != nil {
		cmdConn.Close()
		return nil, err
	}
	telConn, err := net.ListenUDP("udp", telAddr)
	if err != nil {
		cmdConn.Close()
		return nil, err
	}
	return &Relay{
		Registry: NewRegistry(),
		Metrics:  m,
		cmdConn:  cmdConn,
		telConn:  telConn,
	}, nil
}

// Runnables returns the background loops to spawn on a Runner.
func (r *Relay) Runnables() []fx.Runnable {
	return []fx.Runnable{
		fx.NamedRun("cmd", fx.RunFunc(r.runCmd)),
		fx.NamedRun("telemetry", fx.RunFunc(r.runTelemetry)),
	}
}

func (r *Relay) runCmd(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, r.cmdConn, func() error {
		buf := make([]byte, 1024)
		for {
			n, addr, err := r.cmdConn.ReadFromUDPAddrPort(buf)
			if err != nil {
				return err
			}
			r.Metrics.CmdRx.Inc()
			if n < 1 {
				continue
			}
			op, ok := ParseOpcode(buf[0])
			if !ok {
				glog.V(2).Infof("unknown command %#02x from %s", buf[0], addr)
				continue
			}
			r.handleCommand(op, addr)
		}
	})
}

func (r *Relay) handleCommand(op Opcode, addr netip.AddrPort) {
	switch op {
	case OpRegister:
		if r.Registry.Register(addr) {
			glog.Infof("registered client: %s", addr)
			glog.Infof("clients: %v", r.Registry.Snapshot())
		}
	case OpUnregister:
		if r.Registry.Unregister(addr) {
			glog.Infof("unregistered client: %s", addr)
			glog.Infof("clients: %v", r.Registry.Snapshot())
		}
	}
	r.Metrics.Clients.Set(float64(r.Registry.Len()))
}

func (r *Relay) runTelemetry(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, r.telConn, func() error {
		buf := make([]byte, 4096)
		for {
			n, _, err := r.telConn.ReadFrom(buf)
			if err != nil {
				return err
			}
			r.Metrics.PacketRx.Inc()
			r.forward(buf[:n])
		}
	})
}

// forward sends one datagram to every registered client. Clients whose
// send fails are dropped so a gone client does not accumulate errors.
func (r *Relay) forward(data []byte) {
	for _, client := range r.Registry.Snapshot() {
		if _, err := r.cmdConn.WriteToUDPAddrPort(data, client); err != nil {
			glog.Warningf("send to %s failed, removing: %v", client, err)
			r.Registry.Unregister(client)
		} else {
			r.Metrics.PacketTx.Inc()
		}
	}
	r.Metrics.Clients.Set(float64(r.Registry.Len()))
	if r.Publish != nil {
		r.Publish(data)
	}
}

// CmdAddr returns the bound command socket address.
func (r *Relay) CmdAddr() net.Addr {
	return r.cmdConn.LocalAddr()
}

// TelAddr returns the bound telemetry socket address.
func (r *Relay) TelAddr() net.Addr {
	return r.telConn.LocalAddr()
}

// Close releases both sockets.
func (r *Relay) Close() error {
	var errs fx.AggregatedError
	errs.Add(r.cmdConn.Close(), r.telConn.Close())
	return errs.Aggregate()
}
