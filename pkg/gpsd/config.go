// Package gpsd serves simulator positions to gpsd clients over NMEA.
package gpsd

import "flag"

// Config defines the configurations for the gpsd emulation.
type Config struct {
	BindAddr   string
	RouterAddr string
	Frequency  int
}

var defaultConfig = Config{
	BindAddr:   "127.0.0.1:2947",
	RouterAddr: "127.0.0.1:9003",
	Frequency:  10,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.BindAddr, "bind", defaultConfig.BindAddr, "Listening address for gpsd clients.")
	flag.StringVar(&defaultConfig.RouterAddr, "router", defaultConfig.RouterAddr, "Address of the telemetry relay.")
	flag.IntVar(&defaultConfig.Frequency, "frequency", defaultConfig.Frequency, "Position updates per second.")
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
