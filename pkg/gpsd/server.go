package gpsd

import (
	"bufio"
	"context"
	"encoding/json"
	"math"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"

	fx "github.com/simlink/simlink.go/pkg/framework"
	"github.com/simlink/simlink.go/pkg/geo"
	"github.com/simlink/simlink.go/pkg/nmea"
	"github.com/simlink/simlink.go/pkg/router"
	"github.com/simlink/simlink.go/pkg/telemetry"
)

// banner mimics a classic gpsd version line so unmodified clients
// accept the stream.
const banner = `{"class":"VERSION","release":"2.93","rev":"2010-03-30T12:18:17", "proto_major":3,"proto_minor":2}` + "\n"

// Freshness bounds how old the last telemetry record may be before
// clients get a no-fix report again.
const Freshness = 10 * time.Second

const metersPerSecToKnots = 1.94384

// Server accepts gpsd clients and streams NMEA sentences derived from
// the latest telemetry record.
type Server struct {
	Frequency int
	Fresh     time.Duration

	listener net.Listener
	telConn  *net.UDPConn

	mu       sync.RWMutex
	rec      *telemetry.Packet
	received time.Time
}

// NewServer opens the listening socket and the relay connection.
func (c *Config) NewServer() (*Server, error) {
	listener, err := net.Listen("tcp", c.BindAddr)
	if err != nil {
		return nil, err
	}
	routerAddr, err := net.ResolveUDPAddr("udp", c.RouterAddr)
	if err != nil {
		listener.Close()
		return nil, err
	}
	telConn, err := net.DialUDP("udp", nil, routerAddr)
	if err != nil {
		listener.Close()
		return nil, err
	}
	return &Server{
		Frequency: c.Frequency,
		Fresh:     Freshness,
		listener:  listener,
		telConn:   telConn,
	}, nil
}

// Runnables returns the background loops to spawn on a Runner.
func (s *Server) Runnables() []fx.Runnable {
	return []fx.Runnable{
		fx.NamedRun("gpsd", fx.RunFunc(s.runAccept)),
		fx.NamedRun("telemetry", fx.RunFunc(s.runTelemetry)),
		router.NewKeepalive(s.telConn),
	}
}

func (s *Server) runAccept(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, s.listener, func() error {
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				return err
			}
			glog.Infof("client connected: %s", conn.RemoteAddr())
			go s.serve(ctx, conn)
		}
	})
}

func (s *Server) runTelemetry(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, s.telConn, func() error {
		buf := make([]byte, 4096)
		for {
			n, err := s.telConn.Read(buf)
			if err != nil {
				return err
			}
			rec, err := telemetry.Parse(buf[:n], nil)
			if err != nil {
				glog.V(2).Infof("telemetry record: %v", err)
				continue
			}
			s.mu.Lock()
			s.rec, s.received = rec, time.Now()
			s.mu.Unlock()
		}
	})
}

func (s *Server) serve(ctx context.Context, conn net.Conn) {
	err := fx.RunWithContextCloser(ctx, conn, func() error {
		if _, err := conn.Write([]byte(banner)); err != nil {
			return err
		}
		cmd, err := bufio.NewReader(conn).ReadString(';')
		if err != nil {
			return err
		}
		if !watchRequested(strings.TrimSpace(cmd)) {
			glog.Warningf("unsupported command from %s: %q", conn.RemoteAddr(), cmd)
			return nil
		}
		ticker := time.NewTicker(time.Second / time.Duration(s.Frequency))
		defer ticker.Stop()
		for range ticker.C {
			for _, sentence := range s.sentences(time.Now().UTC()) {
				if _, err := conn.Write([]byte(sentence)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil && err != context.Canceled {
		glog.V(1).Infof("client %s: %v", conn.RemoteAddr(), err)
	}
}

// watchRequested accepts only a full raw NMEA watch, the mode GPS
// consumers of the stream ask for.
func watchRequested(cmd string) bool {
	if !strings.HasPrefix(cmd, "?WATCH=") || !strings.HasSuffix(cmd, ";") {
		return false
	}
	var watch struct {
		Enable bool `json:"enable"`
		NMEA   bool `json:"nmea"`
		Raw    bool `json:"raw"`
	}
	if err := json.Unmarshal([]byte(cmd[7:len(cmd)-1]), &watch); err != nil {
		return false
	}
	return watch.Enable && watch.NMEA && watch.Raw
}

// sentences derives the NMEA output for one tick. Stale or incomplete
// telemetry degrades to a no-fix report instead of going silent.
func (s *Server) sentences(now time.Time) []string {
	s.mu.RLock()
	rec, received := s.rec, s.received
	s.mu.RUnlock()

	if rec != nil && time.Since(received) < s.Fresh &&
		rec.Position != nil && rec.Attitude != nil && rec.Velocity != nil {
		pos, att, vel := *rec.Position, *rec.Attitude, *rec.Velocity
		lon, lat, alt := geo.GPSFromCoord([3]float64{
			float64(pos[0]), float64(pos[1]), float64(pos[2]),
		}, 0, 0)
		vel2d := math.Hypot(float64(vel[0]), float64(vel[2]))
		knots := vel2d * metersPerSecToKnots
		course := geo.QuatHeading(
			float64(att[0]), float64(att[1]), float64(att[2]), float64(att[3]),
		) * 180 / math.Pi
		if course < 0 {
			course += 360
		}
		return []string{
			nmea.GGA(now, lat, lon, alt, 8),
			nmea.RMC(now, lat, lon, knots, course),
		}
	}
	return []string{nmea.GGANoFix(now), nmea.RMCNoFix(now)}
}

// Close releases the listener and the relay connection.
func (s *Server) Close() error {
	var errs fx.AggregatedError
	errs.Add(s.listener.Close(), s.telConn.Close())
	return errs.Aggregate()
}
