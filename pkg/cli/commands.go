package cli

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/simlink/simlink.go/pkg/crsf"
	"github.com/simlink/simlink.go/pkg/router"
)

var (
	// ChannelsCmd sends one packed channels datagram to the input
	// daemon.
	ChannelsCmd = ishell.Cmd{
		Name:    "channels",
		Aliases: []string{"ch"},
		Help:    "TICKS... (up to 16 values, 0-2047, missing channels centered)",
		Func: func(c *ishell.Context) {
			channels, err := parseChannels(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			s := ShellFrom(c)
			conn, err := s.InputConn()
			if err != nil {
				c.Err(err)
				return
			}
			data, err := crsf.AppendPayload(nil, crsf.RcChannels{Channels: channels})
			if err != nil {
				c.Err(err)
				return
			}
			if _, err := conn.Write(data); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}

	// RegisterCmd registers with the telemetry relay.
	RegisterCmd = ishell.Cmd{
		Name: "register",
		Help: "",
		Func: sendOpcode(router.OpRegister),
	}

	// UnregisterCmd unregisters from the telemetry relay.
	UnregisterCmd = ishell.Cmd{
		Name: "unregister",
		Help: "",
		Func: sendOpcode(router.OpUnregister),
	}

	// WatchCmd subscribes re-published telemetry and prints it.
	WatchCmd = ishell.Cmd{
		Name: "watch",
		Help: "[TOPIC] (default telemetry/#)",
		Func: func(c *ishell.Context) {
			topic := "telemetry/#"
			if len(c.Args) > 0 {
				topic = c.Args[0]
			}
			s := ShellFrom(c)
			q, err := s.Queue()
			if err != nil {
				c.Err(err)
				return
			}
			sub := q.Sub(topic, func(topic string, payload []byte) {
				c.Printf("%s %s\n", topic, payload)
			})
			defer sub.Close()
			c.Println("watching, press enter to stop")
			c.ReadLine()
		},
	}
)

func sendOpcode(op router.Opcode) func(*ishell.Context) {
	return func(c *ishell.Context) {
		conn, err := ShellFrom(c).RouterConn()
		if err != nil {
			c.Err(err)
			return
		}
		if _, err := conn.Write([]byte{byte(op)}); err != nil {
			c.Err(err)
			return
		}
		c.Println("OK")
	}
}

func parseChannels(args []string) ([crsf.NumChannels]uint16, error) {
	var channels [crsf.NumChannels]uint16
	for i := range channels {
		channels[i] = crsf.UsToTicks(1500)
	}
	if len(args) > crsf.NumChannels {
		return channels, fmt.Errorf("at most %d channels", crsf.NumChannels)
	}
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 16)
		if err != nil {
			return channels, fmt.Errorf("channel %d: %w", i, err)
		}
		if v > crsf.ChannelMax {
			return channels, fmt.Errorf("channel %d out of range: %d", i, v)
		}
		channels[i] = uint16(v)
	}
	return channels, nil
}
