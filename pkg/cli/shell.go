package cli

import (
	"flag"
	"log"
	"net"

	"github.com/abiosoft/ishell"

	"github.com/simlink/simlink.go/pkg/mqtt"
)

const shellKey = "$shell"

var commands = []*ishell.Cmd{
	&ChannelsCmd,
	&RegisterCmd,
	&UnregisterCmd,
	&WatchCmd,
}

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool

	Shell  *ishell.Shell
	Config *Config

	inputConn  *net.UDPConn
	routerConn *net.UDPConn
	queue      *mqtt.Queue
}

// AddCmds is used by other command providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *Config) *Shell {
	s := &Shell{
		Interactive: !conf.EvalOnly,
		Shell:       ishell.New(),
		Config:      conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("link > ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// InputConn returns the socket to the input daemon, dialing on first
// use.
func (s *Shell) InputConn() (*net.UDPConn, error) {
	if s.inputConn == nil {
		conn, err := dialUDP(s.Config.InputAddr)
		if err != nil {
			return nil, err
		}
		s.inputConn = conn
	}
	return s.inputConn, nil
}

// RouterConn returns the socket to the relay, dialing on first use.
func (s *Shell) RouterConn() (*net.UDPConn, error) {
	if s.routerConn == nil {
		conn, err := dialUDP(s.Config.RouterAddr)
		if err != nil {
			return nil, err
		}
		s.routerConn = conn
	}
	return s.routerConn, nil
}

// Queue returns the MQTT queue, connecting on first use.
func (s *Shell) Queue() (*mqtt.Queue, error) {
	if s.queue == nil {
		q, err := mqtt.NewQueueFromURL(s.Config.BrokerURL, "linkcli")
		if err != nil {
			return nil, err
		}
		token := q.Connect()
		token.Wait()
		if err := token.Error(); err != nil {
			return nil, err
		}
		s.queue = q
	}
	return s.queue, nil
}

func dialUDP(addr string) (*net.UDPConn, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	return net.DialUDP("udp", nil, udpAddr)
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.close()
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

func (s *Shell) close() {
	if s.inputConn != nil {
		s.inputConn.Close()
	}
	if s.routerConn != nil {
		s.routerConn.Close()
	}
	if s.queue != nil {
		s.queue.Close()
	}
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(NewConfig()).Run(flag.Args()...)
}
