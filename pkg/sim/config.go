// Package sim generates synthetic simulator telemetry for development
// without the game running: a quad flying a circle with a draining
// battery, emitted as standard telemetry records over UDP.
package sim

import "flag"

// Config defines the configurations for the synthetic source.
type Config struct {
	DestAddr       string
	Rate           int
	Radius         float64
	Speed          float64
	DescriptorPath string
}

var defaultConfig = Config{
	DestAddr: "127.0.0.1:9001",
	Rate:     50,
	Radius:   100,
	Speed:    15,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.DestAddr, "dest", defaultConfig.DestAddr, "Destination for telemetry datagrams.")
	flag.IntVar(&defaultConfig.Rate, "rate", defaultConfig.Rate, "Records per second.")
	flag.Float64Var(&defaultConfig.Radius, "radius", defaultConfig.Radius, "Circle radius in meters.")
	flag.Float64Var(&defaultConfig.Speed, "speed", defaultConfig.Speed, "Ground speed in m/s.")
	flag.StringVar(&defaultConfig.DescriptorPath, "write-descriptor", defaultConfig.DescriptorPath, "Write a matching telemetry descriptor file and exit.")
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
