// Package bridge moves RC link traffic between a serial port and UDP.
// Inbound serial bytes are re-synchronized into frames and forwarded as
// bare type-and-payload datagrams; inbound datagrams are wrapped into
// full frames and written back to the port.
package bridge

import "flag"

// Config defines the configurations for the forwarder.
type Config struct {
	Port        string
	Baud        int
	DestAddr    string
	SrcAddr     string
	MetricsAddr string
}

var defaultConfig = Config{
	Port:     "/dev/ttyUSB0",
	Baud:     420000,
	DestAddr: "127.0.0.1:9005",
	SrcAddr:  "127.0.0.1:9006",
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial port device.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baudrate.")
	flag.StringVar(&defaultConfig.DestAddr, "dest", defaultConfig.DestAddr, "Destination for forwarded datagrams.")
	flag.StringVar(&defaultConfig.SrcAddr, "src", defaultConfig.SrcAddr, "Listening address for telemetry datagrams.")
	flag.StringVar(&defaultConfig.MetricsAddr, "metrics-addr", defaultConfig.MetricsAddr, "Listening address for metrics, empty to disable.")
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
